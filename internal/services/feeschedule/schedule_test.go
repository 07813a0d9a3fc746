package feeschedule

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"relist/internal/models"
	"relist/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func flatSchedule(rate float64) Schedule {
	return Schedule{
		Marketplace:     "ebay",
		Category:        "electronics",
		Tiers:           []Tier{{UpperBound: math.Inf(1), Rate: rate}},
		PaymentRate:     0.0349,
		PaymentFixedFee: 0.49,
	}
}

func tieredSchedule() Schedule {
	return Schedule{
		Marketplace: "ebay",
		Category:    "electronics",
		Tiers: []Tier{
			{UpperBound: 1000, Rate: 0.10},
			{UpperBound: 5000, Rate: 0.07},
			{UpperBound: math.Inf(1), Rate: 0.03},
		},
		FixedPerOrder:   0.30,
		PaymentRate:     0.03,
		PaymentFixedFee: 0.30,
	}
}

func TestEvaluateCommission(t *testing.T) {
	tests := []struct {
		name     string
		schedule Schedule
		price    float64
		want     float64
		wantErr  error
	}{
		{
			name:     "flat rate",
			schedule: flatSchedule(0.129),
			price:    825,
			want:     106.425,
		},
		{
			name:     "zero price",
			schedule: tieredSchedule(),
			price:    0,
			want:     0,
		},
		{
			name:     "inside first tier",
			schedule: tieredSchedule(),
			price:    500,
			want:     50,
		},
		{
			name:     "exactly at boundary",
			schedule: tieredSchedule(),
			price:    1000,
			want:     100,
		},
		{
			name:     "spans two tiers",
			schedule: tieredSchedule(),
			price:    3000,
			// 1000*0.10 + 2000*0.07
			want: 240,
		},
		{
			name:     "spans all tiers",
			schedule: tieredSchedule(),
			price:    8000,
			// 1000*0.10 + 4000*0.07 + 3000*0.03
			want: 470,
		},
		{
			name:     "negative price",
			schedule: tieredSchedule(),
			price:    -1,
			wantErr:  ErrNegativePrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvaluateCommission(tt.schedule, tt.price)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEvaluateCommission_MonotonicAndContinuous(t *testing.T) {
	s := tieredSchedule()

	prev := 0.0
	for p := 0.0; p <= 12000; p += 7.3 {
		got, err := EvaluateCommission(s, p)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, prev, "commission decreased at price %.2f", p)
		prev = got
	}

	// No jump at tier boundaries: approach each from both sides.
	for _, boundary := range []float64{1000, 5000} {
		below, err := EvaluateCommission(s, boundary-1e-6)
		require.NoError(t, err)
		above, err := EvaluateCommission(s, boundary+1e-6)
		require.NoError(t, err)
		assert.InDelta(t, below, above, 1e-3)
	}
}

func TestCommissionBelow(t *testing.T) {
	s := tieredSchedule()

	assert.InDelta(t, 0, CommissionBelow(s, 0), 1e-9)
	assert.InDelta(t, 100, CommissionBelow(s, 1), 1e-9)
	assert.InDelta(t, 380, CommissionBelow(s, 2), 1e-9)

	// Matches the marginal evaluation at each lower bound.
	for i := range s.Tiers {
		at, err := EvaluateCommission(s, s.TierLowerBound(i))
		require.NoError(t, err)
		assert.InDelta(t, at, CommissionBelow(s, i), 1e-9)
	}
}

func TestEvaluatePaymentFee(t *testing.T) {
	s := flatSchedule(0.129)

	fee, err := EvaluatePaymentFee(s, 825)
	require.NoError(t, err)
	assert.InDelta(t, 29.2825, fee, 1e-9)

	_, err = EvaluatePaymentFee(s, -10)
	assert.ErrorIs(t, err, ErrNegativePrice)
}

func TestTotalFees(t *testing.T) {
	s := flatSchedule(0.129)

	total, err := TotalFees(s, 825)
	require.NoError(t, err)
	assert.InDelta(t, 135.7075, total, 1e-9)
}

func TestScheduleValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Schedule)
		wantErr bool
	}{
		{name: "valid", mutate: func(s *Schedule) {}},
		{
			name:    "no tiers",
			mutate:  func(s *Schedule) { s.Tiers = nil },
			wantErr: true,
		},
		{
			name:    "last tier not open ended",
			mutate:  func(s *Schedule) { s.Tiers[2].UpperBound = 9000 },
			wantErr: true,
		},
		{
			name:    "thresholds not increasing",
			mutate:  func(s *Schedule) { s.Tiers[1].UpperBound = 500 },
			wantErr: true,
		},
		{
			name:    "negative rate",
			mutate:  func(s *Schedule) { s.Tiers[0].Rate = -0.1 },
			wantErr: true,
		},
		{
			name:    "negative payment fee",
			mutate:  func(s *Schedule) { s.PaymentFixedFee = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tieredSchedule()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSchedule)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTierIndex(t *testing.T) {
	s := tieredSchedule()

	assert.Equal(t, 0, s.TierIndex(0))
	assert.Equal(t, 0, s.TierIndex(999.99))
	assert.Equal(t, 1, s.TierIndex(1000))
	assert.Equal(t, 2, s.TierIndex(5000))
	assert.Equal(t, 2, s.TierIndex(1e12))
}

type MockFeeScheduleRepo struct {
	mock.Mock
}

func (m *MockFeeScheduleRepo) GetByKey(ctx context.Context, marketplace, category string) (*models.FeeSchedule, error) {
	args := m.Called(ctx, marketplace, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeeSchedule), args.Error(1)
}

func (m *MockFeeScheduleRepo) Upsert(ctx context.Context, schedule *models.FeeSchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockFeeScheduleRepo) List(ctx context.Context, marketplace string) ([]models.FeeSchedule, error) {
	args := m.Called(ctx, marketplace)
	return args.Get(0).([]models.FeeSchedule), args.Error(1)
}

func TestProvider_GetSchedule(t *testing.T) {
	t.Run("stored schedule", func(t *testing.T) {
		repo := new(MockFeeScheduleRepo)
		row := ToModel(tieredSchedule())
		repo.On("GetByKey", mock.Anything, "ebay", "electronics").Return(row, nil)

		p := NewProvider(repo, nil)
		s, err := p.GetSchedule(context.Background(), "ebay", "electronics")
		require.NoError(t, err)
		assert.Len(t, s.Tiers, 3)
		assert.True(t, math.IsInf(s.Tiers[2].UpperBound, 1))
		repo.AssertExpectations(t)
	})

	t.Run("missing key falls back to default", func(t *testing.T) {
		repo := new(MockFeeScheduleRepo)
		repo.On("GetByKey", mock.Anything, "etsy", "crafts").
			Return(nil, repositories.ErrFeeScheduleNotFound)

		p := NewProvider(repo, nil)
		s, err := p.GetSchedule(context.Background(), "etsy", "crafts")
		require.NoError(t, err)
		assert.Equal(t, "etsy", s.Marketplace)
		assert.Equal(t, DefaultSchedule.PaymentRate, s.PaymentRate)
		assert.Equal(t, DefaultSchedule.Tiers[0].Rate, s.Tiers[0].Rate)
	})
}

func TestTierJSON_OpenEndedBound(t *testing.T) {
	data, err := json.Marshal(Tier{UpperBound: math.Inf(1), Rate: 0.129})
	require.NoError(t, err)
	assert.JSONEq(t, `{"upper_bound":0,"rate":0.129}`, string(data))

	var tier Tier
	require.NoError(t, json.Unmarshal(data, &tier))
	assert.True(t, math.IsInf(tier.UpperBound, 1))

	data, err = json.Marshal(Tier{UpperBound: 7500, Rate: 0.129})
	require.NoError(t, err)
	assert.JSONEq(t, `{"upper_bound":7500,"rate":0.129}`, string(data))
}

func TestModelRoundTrip(t *testing.T) {
	s := tieredSchedule()
	got := FromModel(ToModel(s))
	assert.Equal(t, s.FixedPerOrder, got.FixedPerOrder)
	require.Len(t, got.Tiers, len(s.Tiers))
	for i := range s.Tiers {
		assert.Equal(t, s.Tiers[i].Rate, got.Tiers[i].Rate)
		if math.IsInf(s.Tiers[i].UpperBound, 1) {
			assert.True(t, math.IsInf(got.Tiers[i].UpperBound, 1))
		} else {
			assert.Equal(t, s.Tiers[i].UpperBound, got.Tiers[i].UpperBound)
		}
	}
}
