package gateway

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"

	"ev-carbon-market/internal/pkg/errs"
	"ev-carbon-market/internal/usecase/shared"
)

// SimulatedPaymentGateway stands in for the real payment provider. It
// sleeps briefly to model network latency and fails a configurable share of
// charges so the compensating-cancellation path stays exercised.
type SimulatedPaymentGateway struct {
	successRate float64
	latency     time.Duration
}

func NewSimulatedPaymentGateway(successRate float64) *SimulatedPaymentGateway {
	if successRate < 0 || successRate > 1 {
		successRate = 1
	}
	return &SimulatedPaymentGateway{
		successRate: successRate,
		latency:     50 * time.Millisecond,
	}
}

func (g *SimulatedPaymentGateway) Charge(ctx context.Context, req shared.ChargeRequest) (*shared.ChargeResult, error) {
	select {
	case <-ctx.Done():
		return nil, errs.Wrap(ctx.Err(), "charge aborted")
	case <-time.After(g.latency):
	}

	if !req.Amount.IsPositive() {
		return nil, errs.Mark(errs.New("charge amount must be positive"), shared.ErrPaymentDeclined)
	}
	if cryptoRandFloat64() >= g.successRate {
		return nil, errs.Mark(errs.New("provider declined the charge"), shared.ErrPaymentDeclined)
	}
	return &shared.ChargeResult{
		ProviderReference: fmt.Sprintf("sim-%s", req.Reference),
	}, nil
}

func cryptoRandFloat64() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// 53 random bits give a uniform float in [0, 1)
	return float64(binary.BigEndian.Uint64(buf[:])>>11) / (1 << 53)
}
