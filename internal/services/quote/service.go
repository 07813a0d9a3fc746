package quote

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"relist/internal/services/exchange"
	"relist/internal/services/feeschedule"
	"relist/internal/services/pricing"
	"relist/internal/services/tariff"
)

type service struct {
	fees    feeschedule.Provider
	tariffs tariff.Provider
	rates   exchange.Provider
	records Recorder
	config  Config
	metrics MetricsCollector
}

// NewService creates the quote service. Records is optional; comparisons
// are only persisted when a recorder is configured and the caller asks.
func NewService(
	fees feeschedule.Provider,
	tariffs tariff.Provider,
	rates exchange.Provider,
	records Recorder,
	config Config,
	metrics MetricsCollector,
) Service {
	if fees == nil {
		panic("fee schedule provider is required")
	}
	if tariffs == nil {
		panic("tariff provider is required")
	}
	if rates == nil {
		panic("exchange rate provider is required")
	}

	if config.ExcellentMaxDeltaPercent == 0 {
		config.ExcellentMaxDeltaPercent = DefaultExcellentMaxDeltaPercent
	}
	if config.GoodMaxDeltaPercent == 0 {
		config.GoodMaxDeltaPercent = DefaultGoodMaxDeltaPercent
	}
	if config.FairMaxDeltaPercent == 0 {
		config.FairMaxDeltaPercent = DefaultFairMaxDeltaPercent
	}
	if config.MaxCouponPercent == 0 {
		config.MaxCouponPercent = DefaultMaxCouponPercent
	}
	if config.DDUTargetMarkets == nil {
		config.DDUTargetMarkets = DefaultDDUTargetMarkets
	}

	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &service{
		fees:    fees,
		tariffs: tariffs,
		rates:   rates,
		records: records,
		config:  config,
		metrics: metrics,
	}
}

// resolved bundles the provider lookups one computation needs.
type resolved struct {
	schedule  feeschedule.Schedule
	effective tariff.Effective
	rate      float64
}

func (s *service) resolve(ctx context.Context, req Request) (*resolved, error) {
	if req.Marketplace == "" {
		return nil, ErrMissingMarketplace
	}
	if req.Jurisdiction == "" {
		return nil, ErrMissingJurisdiction
	}
	if req.Currency == "" {
		return nil, ErrMissingCurrency
	}

	schedule, err := s.fees.GetSchedule(ctx, req.Marketplace, req.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve fee schedule: %w", err)
	}

	rule, err := s.tariffs.GetRule(ctx, req.Jurisdiction, req.Classification)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tariff rule: %w", err)
	}
	effective, err := tariff.Resolve(*rule, req.OriginCountry)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tariff rule: %w", err)
	}

	fx, err := s.rates.GetQuote(ctx, req.Currency)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve exchange rate: %w", err)
	}
	rate, err := fx.Effective()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve exchange rate: %w", err)
	}

	return &resolved{schedule: *schedule, effective: effective, rate: rate}, nil
}

func (s *service) ComputeQuote(ctx context.Context, req QuoteRequest) (*pricing.PriceQuote, error) {
	start := time.Now()

	r, err := s.resolve(ctx, req.Request)
	if err != nil {
		s.metrics.RecordError("quote", "resolve")
		return nil, err
	}

	result, err := pricing.Evaluate(
		req.Economics, req.Price, req.ShippingPrice,
		r.schedule, r.effective, r.rate, req.DutiesIncluded,
	)
	if err != nil {
		s.metrics.RecordError("quote", "evaluate")
		return nil, err
	}

	s.metrics.RecordComputation("quote", time.Since(start))
	return result, nil
}

func (s *service) RecommendPrice(ctx context.Context, req RecommendRequest) (*RecommendResult, error) {
	start := time.Now()

	r, err := s.resolve(ctx, req.Request)
	if err != nil {
		s.metrics.RecordError("recommend", "resolve")
		return nil, err
	}

	price, err := pricing.SolveForTargetMargin(
		req.Economics, req.TargetMarginPercent,
		r.schedule, r.effective, r.rate, req.DutiesIncluded,
	)
	if err != nil {
		s.metrics.RecordError("recommend", "solve")
		return nil, err
	}

	projection, err := pricing.Evaluate(
		req.Economics, price, 0,
		r.schedule, r.effective, r.rate, req.DutiesIncluded,
	)
	if err != nil {
		s.metrics.RecordError("recommend", "evaluate")
		return nil, err
	}

	s.metrics.RecordComputation("recommend", time.Since(start))
	return &RecommendResult{Price: price, Quote: projection}, nil
}

// CompareRegimes prices the same item under both regimes at the target
// margin, applies the declared-shipping cap to the duties-paid listing, and
// classifies the resulting price gap.
func (s *service) CompareRegimes(ctx context.Context, req CompareRequest) (*DualRegimeResult, error) {
	start := time.Now()

	r, err := s.resolve(ctx, req.Request)
	if err != nil {
		s.metrics.RecordError("compare", "resolve")
		return nil, err
	}

	dduPrice, err := pricing.SolveForTargetMargin(
		req.Economics, req.TargetMarginPercent,
		r.schedule, r.effective, r.rate, false,
	)
	if err != nil {
		s.metrics.RecordError("compare", "solve_ddu")
		return nil, err
	}
	dduQuote, err := pricing.Evaluate(
		req.Economics, dduPrice, req.ShippingEstimate,
		r.schedule, r.effective, r.rate, false,
	)
	if err != nil {
		return nil, err
	}

	ddpPrice, err := pricing.SolveForTargetMargin(
		req.Economics, req.TargetMarginPercent,
		r.schedule, r.effective, r.rate, true,
	)
	if err != nil {
		s.metrics.RecordError("compare", "solve_ddp")
		return nil, err
	}
	shipping := req.ShippingEstimate
	if cap := r.effective.ShippingCap; cap > 0 && shipping > cap {
		// The marketplace caps the declared shipping charge; the excess
		// moves into the product price so total revenue is preserved.
		ddpPrice += shipping - cap
		shipping = cap
	}
	ddpQuote, err := pricing.Evaluate(
		req.Economics, ddpPrice, shipping,
		r.schedule, r.effective, r.rate, true,
	)
	if err != nil {
		return nil, err
	}

	delta := ddpPrice - dduPrice
	deltaPercent := 0.0
	if dduPrice > 0 {
		deltaPercent = delta / dduPrice * 100
	}

	result := &DualRegimeResult{
		DDU:             dduQuote,
		DDP:             ddpQuote,
		DDUPrice:        dduPrice,
		DDPPrice:        ddpPrice,
		PriceDelta:      delta,
		DeltaPercent:    deltaPercent,
		Competitiveness: s.classify(deltaPercent),
		Coupon:          s.couponStrategy(deltaPercent),
	}

	if req.Persist && s.records != nil {
		id, err := s.records.SaveComparison(ctx, req, result)
		if err != nil {
			// Persistence failures do not void the computation.
			log.Printf("failed to save comparison record: %v", err)
			s.metrics.RecordError("compare", "save_record")
		} else {
			result.RecordID = id
		}
	}

	s.metrics.RecordComputation("compare", time.Since(start))
	return result, nil
}

func (s *service) classify(deltaPercent float64) Competitiveness {
	switch {
	case deltaPercent <= s.config.ExcellentMaxDeltaPercent:
		return CompetitivenessExcellent
	case deltaPercent <= s.config.GoodMaxDeltaPercent:
		return CompetitivenessGood
	case deltaPercent <= s.config.FairMaxDeltaPercent:
		return CompetitivenessFair
	default:
		return CompetitivenessPoor
	}
}

func (s *service) couponStrategy(deltaPercent float64) CouponStrategy {
	switch {
	case deltaPercent <= s.config.ExcellentMaxDeltaPercent:
		return CouponStrategy{
			Type:   CouponNotRecommended,
			Reason: "duties-paid price is already competitive",
		}
	case deltaPercent <= s.config.FairMaxDeltaPercent:
		discount := math.Min(s.config.MaxCouponPercent, deltaPercent/2)
		discount = math.Round(discount*10) / 10
		return CouponStrategy{
			Type:            CouponPercentage,
			DiscountPercent: discount,
			TargetMarkets:   s.config.DDUTargetMarkets,
			Reason:          "a coupon can close the gap to duties-unpaid listings",
		}
	default:
		return CouponStrategy{
			Type:   CouponReEvaluate,
			Reason: "gap too large for a coupon, review the price strategy",
		}
	}
}
