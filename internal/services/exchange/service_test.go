package exchange

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEffectiveRate(t *testing.T) {
	tests := []struct {
		name    string
		base    float64
		margin  float64
		want    float64
		wantErr error
	}{
		{name: "five percent safety margin", base: 150, margin: 5, want: 157.5},
		{name: "zero margin", base: 150, margin: 0, want: 150},
		{name: "zero base rate", base: 0, margin: 5, wantErr: ErrInvalidRate},
		{name: "negative base rate", base: -1, margin: 5, wantErr: ErrInvalidRate},
		{name: "negative margin", base: 150, margin: -1, wantErr: ErrInvalidMargin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EffectiveRate(tt.base, tt.margin)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestStaticProvider(t *testing.T) {
	p := NewStaticProvider("USD", 150, 5)

	q, err := p.GetQuote(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, "USD", q.Currency)

	rate, err := q.Effective()
	require.NoError(t, err)
	assert.InDelta(t, 157.5, rate, 1e-9)

	_, err = p.GetQuote(context.Background(), "EUR")
	assert.ErrorIs(t, err, ErrNoQuote)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (interface{}, error) {
	args := m.Called(ctx, key)
	return args.Get(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) SetString(ctx context.Context, key, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) DeleteMany(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func TestCachedProvider_GetQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("published quote wins", func(t *testing.T) {
		published := Quote{Currency: "USD", BaseRate: 152, MarginPercent: 4, QuotedAt: time.Now().UTC()}
		data, err := json.Marshal(published)
		require.NoError(t, err)

		cache := new(MockCache)
		cache.On("GetString", mock.Anything, "fx:quote:USD").Return(string(data), nil)

		p := NewCachedProvider(cache, NewStaticProvider("USD", 150, 5))
		q, err := p.GetQuote(ctx, "USD")
		require.NoError(t, err)
		assert.Equal(t, 152.0, q.BaseRate)
		cache.AssertExpectations(t)
	})

	t.Run("miss falls back to static quote", func(t *testing.T) {
		cache := new(MockCache)
		cache.On("GetString", mock.Anything, "fx:quote:USD").Return("", assert.AnError)

		p := NewCachedProvider(cache, NewStaticProvider("USD", 150, 5))
		q, err := p.GetQuote(ctx, "USD")
		require.NoError(t, err)
		assert.Equal(t, 150.0, q.BaseRate)
	})

	t.Run("miss without fallback", func(t *testing.T) {
		cache := new(MockCache)
		cache.On("GetString", mock.Anything, "fx:quote:USD").Return("", assert.AnError)

		p := NewCachedProvider(cache, nil)
		_, err := p.GetQuote(ctx, "USD")
		assert.ErrorIs(t, err, ErrNoQuote)
	})
}

func TestCachedProvider_PublishQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("stores encoded quote", func(t *testing.T) {
		cache := new(MockCache)
		cache.On("SetString", mock.Anything, "fx:quote:USD", mock.Anything, time.Hour).Return(nil)

		p := NewCachedProvider(cache, nil)
		err := p.PublishQuote(ctx, Quote{Currency: "USD", BaseRate: 151, MarginPercent: 5}, time.Hour)
		require.NoError(t, err)
		cache.AssertExpectations(t)
	})

	t.Run("rejects invalid rate", func(t *testing.T) {
		cache := new(MockCache)
		p := NewCachedProvider(cache, nil)
		err := p.PublishQuote(ctx, Quote{Currency: "USD", BaseRate: 0}, time.Hour)
		assert.ErrorIs(t, err, ErrInvalidRate)
		cache.AssertNotCalled(t, "SetString")
	})
}
