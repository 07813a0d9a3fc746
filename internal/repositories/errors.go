package repositories

import "errors"

// Repository errors
var (
	ErrFeeScheduleNotFound = errors.New("fee schedule not found")
	ErrTariffRuleNotFound  = errors.New("tariff rule not found")
	ErrRecordNotFound      = errors.New("calculation record not found")
)
