package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/freshmart/backend/internal/adapter/config"
	"github.com/freshmart/backend/internal/core/domain"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

// SimulatedGateway stands in for the external payment processor. It sleeps for
// the configured latency (a production implementation is a network call) and
// declines any amount above the configured ceiling. The ceiling is a gateway
// property, not a domain invariant: an over-limit charge is a decline, not a
// validation failure.
type SimulatedGateway struct {
	logger    *zap.Logger
	maxAmount decimal.Decimal
	latency   time.Duration
}

func NewSimulatedGateway(cfg *config.Gateway, log *zap.Logger) (*SimulatedGateway, error) {
	maxAmount, err := decimal.Parse(cfg.MaxAmount)
	if err != nil {
		return nil, fmt.Errorf("parsing gateway max amount %q: %w", cfg.MaxAmount, err)
	}

	return &SimulatedGateway{
		logger:    log,
		maxAmount: maxAmount,
		latency:   time.Duration(cfg.LatencyMS) * time.Millisecond,
	}, nil
}

func (g *SimulatedGateway) ProcessPayment(ctx context.Context, paymentID string, amount domain.Money) (bool, error) {
	if err := g.simulateLatency(ctx); err != nil {
		return false, err
	}

	if amount.Amount().Cmp(g.maxAmount) > 0 {
		g.logger.Info("Declined payment over gateway ceiling",
			zap.String("payment", paymentID),
			zap.String("amount", amount.String()))
		return false, nil
	}

	g.logger.Debug("Processed payment",
		zap.String("payment", paymentID),
		zap.String("amount", amount.String()))
	return true, nil
}

func (g *SimulatedGateway) RefundPayment(ctx context.Context, paymentID string) (bool, error) {
	if err := g.simulateLatency(ctx); err != nil {
		return false, err
	}

	g.logger.Debug("Processed refund", zap.String("payment", paymentID))
	return true, nil
}

func (g *SimulatedGateway) simulateLatency(ctx context.Context) error {
	if g.latency <= 0 {
		return nil
	}
	timer := time.NewTimer(g.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
