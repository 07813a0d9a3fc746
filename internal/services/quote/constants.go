package quote

// Default comparison heuristics
const (
	DefaultExcellentMaxDeltaPercent = 5.0
	DefaultGoodMaxDeltaPercent      = 10.0
	DefaultFairMaxDeltaPercent      = 15.0
	DefaultMaxCouponPercent         = 10.0
)

// DefaultDDUTargetMarkets lists the jurisdictions where DDU listings are
// the competitive baseline a coupon should aim at.
var DefaultDDUTargetMarkets = []string{"US", "AU", "CA"}
