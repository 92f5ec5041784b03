// Package payments holds RefundGateway implementations.
package payments

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/ports"
)

var _ ports.RefundGateway = (*ManualRefundGateway)(nil)

// ManualRefundGateway records refunds for the finance team to pay out by hand.
// It never fails, so the order's payment status is the refund marker of record.
type ManualRefundGateway struct {
	logger *slog.Logger
}

func NewManualRefundGateway(logger *slog.Logger) *ManualRefundGateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &ManualRefundGateway{logger: logger.With("component", "ManualRefundGateway")}
}

func (g *ManualRefundGateway) Refund(ctx context.Context, refund ports.Refund) error {
	attrs := []any{
		slog.String("order_id", refund.OrderID.String()),
		slog.String("user_id", refund.UserID.String()),
		slog.String("amount", refund.Amount.String()),
		slog.String("reason", refund.Reason),
	}
	if refund.RequestID != nil {
		attrs = append(attrs, slog.String("request_id", refund.RequestID.String()))
	}
	g.logger.InfoContext(ctx, "refund recorded for manual payout", attrs...)
	return nil
}
