// Package validation provides request validation for the API layer.
package validation

// Validator collects field-level validation errors for a request.
type Validator struct {
	Errors map[string]string
}

func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid reports whether no errors were recorded.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records the first error seen for a field.
func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
	}
}

// Check records an error when the condition is false.
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Required records an error when a string field is empty.
func (v *Validator) Required(field, value string) {
	v.Check(value != "", field, "is required")
}

// Range records an error when value is outside [min, max].
func (v *Validator) Range(field string, value, min, max float64) {
	if value < min || value > max {
		v.AddError(field, "is out of range")
	}
}

// NonNegative records an error when value is below zero.
func (v *Validator) NonNegative(field string, value float64) {
	v.Check(value >= 0, field, "cannot be negative")
}
