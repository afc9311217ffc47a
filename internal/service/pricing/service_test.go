package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johntint/booking-service/internal/domain"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{}) {}
func (noopLogger) Warn(format string, v ...interface{}) {}

func ceramicService() *domain.Service {
	return &domain.Service{
		ID:   2,
		Name: "Ceramic Tint",
		PriceTable: map[string]int64{
			"Front doors":      6000,
			"Rear doors":       6000,
			"Front windshield": 10000,
			"Rear windshield":  8000,
		},
	}
}

func TestService_Calculate(t *testing.T) {
	tests := []struct {
		name        string
		percent     int64
		items       []string
		wantTotal   int64
		wantDeposit int64
	}{
		{
			name:        "sums listed items and halves for deposit",
			percent:     50,
			items:       []string{"Front doors", "Front windshield"},
			wantTotal:   16000,
			wantDeposit: 8000,
		},
		{
			name:        "unknown item priced at zero",
			percent:     50,
			items:       []string{"Front doors", "Sunroof"},
			wantTotal:   6000,
			wantDeposit: 3000,
		},
		{
			name:        "rounds half up on odd percent",
			percent:     33,
			items:       []string{"Front doors"}, // 6000 * 33% = 1980
			wantTotal:   6000,
			wantDeposit: 1980,
		},
		{
			name:        "rounds half up at midpoint",
			percent:     25,
			items:       []string{"Front doors", "Rear windshield"}, // 14000 * 25% = 3500
			wantTotal:   14000,
			wantDeposit: 3500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.percent, "usd", noopLogger{})

			quote, err := svc.Calculate(ceramicService(), tt.items)

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, quote.TotalAmount)
			assert.Equal(t, tt.wantDeposit, quote.DepositAmount)
			assert.Equal(t, "usd", quote.Currency)
		})
	}
}

func TestService_Calculate_NoItems(t *testing.T) {
	svc := NewService(50, "usd", noopLogger{})

	quote, err := svc.Calculate(ceramicService(), nil)

	require.ErrorIs(t, err, ErrNoItems)
	assert.Nil(t, quote)
}

func TestService_Calculate_HalfCentRoundsUp(t *testing.T) {
	svc := NewService(50, "usd", noopLogger{})
	service := &domain.Service{
		ID:         7,
		Name:       "Odd",
		PriceTable: map[string]int64{"Strip": 101},
	}

	quote, err := svc.Calculate(service, []string{"Strip"})

	require.NoError(t, err)
	// 101 * 50% = 50.5, арифметическое округление даёт 51
	assert.Equal(t, int64(51), quote.DepositAmount)
}
