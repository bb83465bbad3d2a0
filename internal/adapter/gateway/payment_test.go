package gateway_test

import (
	"context"
	"testing"

	"github.com/freshmart/backend/internal/adapter/config"
	"github.com/freshmart/backend/internal/adapter/gateway"
	"github.com/freshmart/backend/internal/core/domain"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func money(t *testing.T, amount string) domain.Money {
	t.Helper()
	m, err := domain.NewMoney(decimal.MustParse(amount), "USD")
	assert.NoError(t, err)
	return m
}

func TestSimulatedGateway_ProcessPayment(t *testing.T) {
	logger, _ := zap.NewProduction()

	g, err := gateway.NewSimulatedGateway(&config.Gateway{MaxAmount: "100"}, logger)
	assert.NoError(t, err)

	tests := []struct {
		name   string
		amount string
		expOK  bool
	}{
		{name: "Under ceiling", amount: "9.00", expOK: true},
		{name: "At ceiling", amount: "100", expOK: true},
		{name: "Over ceiling declined", amount: "100.01", expOK: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ok, err := g.ProcessPayment(context.Background(), "pay1", money(t, test.amount))
			assert.NoError(t, err)
			assert.Equal(t, test.expOK, ok)
		})
	}
}

func TestSimulatedGateway_RefundPayment(t *testing.T) {
	logger, _ := zap.NewProduction()

	g, err := gateway.NewSimulatedGateway(&config.Gateway{MaxAmount: "100"}, logger)
	assert.NoError(t, err)

	ok, err := g.RefundPayment(context.Background(), "pay1")
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestSimulatedGateway_CancelledContext(t *testing.T) {
	logger, _ := zap.NewProduction()

	g, err := gateway.NewSimulatedGateway(&config.Gateway{MaxAmount: "100", LatencyMS: 1000}, logger)
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = g.ProcessPayment(ctx, "pay1", money(t, "9.00"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulatedGateway_BadCeiling(t *testing.T) {
	logger, _ := zap.NewProduction()

	_, err := gateway.NewSimulatedGateway(&config.Gateway{MaxAmount: "not-a-number"}, logger)
	assert.Error(t, err)
}
