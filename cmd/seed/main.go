// Command seed loads the default fee schedules and tariff rules into the
// database. It is idempotent: existing keys are overwritten.
package main

import (
	"context"
	"log"
	"math"

	"relist/internal/config"
	"relist/internal/repositories"
	"relist/internal/services/feeschedule"
	"relist/internal/services/tariff"
)

var schedules = []feeschedule.Schedule{
	{
		Marketplace: "ebay", Category: "electronics",
		Tiers: []feeschedule.Tier{
			{UpperBound: 7500, Rate: 0.129},
			{UpperBound: math.Inf(1), Rate: 0.024},
		},
		FixedPerOrder: 0.30, PaymentRate: 0.0349, PaymentFixedFee: 0.49,
	},
	{
		Marketplace: "ebay", Category: "apparel",
		Tiers: []feeschedule.Tier{
			{UpperBound: 2000, Rate: 0.15},
			{UpperBound: math.Inf(1), Rate: 0.09},
		},
		FixedPerOrder: 0.30, PaymentRate: 0.0349, PaymentFixedFee: 0.49,
	},
	{
		Marketplace: "amazon", Category: "electronics",
		Tiers: []feeschedule.Tier{
			{UpperBound: 100, Rate: 0.15},
			{UpperBound: math.Inf(1), Rate: 0.08},
		},
		FixedPerOrder: 0, PaymentRate: 0, PaymentFixedFee: 0,
	},
	{
		Marketplace: "mercari", Category: "default",
		Tiers: []feeschedule.Tier{
			{UpperBound: math.Inf(1), Rate: 0.10},
		},
		FixedPerOrder: 0, PaymentRate: 0.029, PaymentFixedFee: 0.30,
	},
}

var rules = []tariff.Rule{
	{
		Jurisdiction: "US", Classification: "electronics",
		DutyRate: 0.075, TaxRate: 0, DutyFreeThreshold: 800,
		ShippingCap: 50,
	},
	{
		Jurisdiction: "US", Classification: "*",
		DutyRate: 0.05, TaxRate: 0, DutyFreeThreshold: 800,
		ShippingCap: 50,
	},
	{
		Jurisdiction: "EU", Classification: "electronics",
		DutyRate: 0.14, TaxRate: 0.21, DutyFreeThreshold: 0,
		AgreementOrigin: "JP", AgreementReduction: 0.14,
	},
	{
		Jurisdiction: "EU", Classification: "*",
		DutyRate: 0.10, TaxRate: 0.21, DutyFreeThreshold: 0,
	},
	{
		Jurisdiction: "UK", Classification: "*",
		DutyRate: 0.10, TaxRate: 0.20, DutyFreeThreshold: 135,
		AgreementOrigin: "JP", AgreementReduction: 0.10,
	},
	{
		Jurisdiction: "AU", Classification: "*",
		DutyRate: 0.05, TaxRate: 0.10, DutyFreeThreshold: 1000,
	},
}

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer func() {
		if repositories.DB != nil {
			if sqlDB, err := repositories.DB.DB(); err == nil {
				sqlDB.Close()
			}
		}
		if repositories.RedisClient != nil {
			repositories.RedisClient.Close()
		}
	}()

	ctx := context.Background()
	feeRepo := repositories.NewFeeScheduleRepository(repositories.DB)
	tariffRepo := repositories.NewTariffRuleRepository(repositories.DB)

	for _, s := range schedules {
		if err := s.Validate(); err != nil {
			log.Fatalf("Invalid seed schedule %s/%s: %v", s.Marketplace, s.Category, err)
		}
		if err := feeRepo.Upsert(ctx, feeschedule.ToModel(s)); err != nil {
			log.Fatalf("Failed to seed schedule %s/%s: %v", s.Marketplace, s.Category, err)
		}
		log.Printf("Seeded fee schedule %s/%s", s.Marketplace, s.Category)
	}

	for _, r := range rules {
		if err := r.Validate(); err != nil {
			log.Fatalf("Invalid seed rule %s/%s: %v", r.Jurisdiction, r.Classification, err)
		}
		if err := tariffRepo.Upsert(ctx, tariff.ToModel(r)); err != nil {
			log.Fatalf("Failed to seed rule %s/%s: %v", r.Jurisdiction, r.Classification, err)
		}
		log.Printf("Seeded tariff rule %s/%s", r.Jurisdiction, r.Classification)
	}

	log.Println("Seeding complete")
}
