package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/access"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads an order for its owner or an admin.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	view, err := h.loadOrder(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}
	if err = access.AuthorizeViewOrder(query.Actor(), view.UserID); err != nil {
		return nil, err
	}

	items, err := loadItemsByOrder(ctx, h.db, []uuid.UUID{query.OrderID().Bytes()}, nil)
	if err != nil {
		return nil, err
	}
	view.Items = items[query.OrderID().Bytes()]
	if view.Items == nil {
		view.Items = make([]OrderItemView, 0)
	}
	total := kernel.ZeroMoney()
	for _, item := range view.Items {
		total = total.Add(item.TotalPrice)
	}
	view.Total = total

	if view.Requests, err = h.loadRequests(ctx, query.OrderID()); err != nil {
		return nil, err
	}
	return view, nil
}

func (h GetOrderQueryHandler) loadOrder(ctx context.Context, id kernel.UUID) (*OrderView, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id, user_id, shipping_address_id, status, payment_status,
			confirmed_at, dispatched_at, shipped_at, delivered_at, cancelled_at, rejected_at,
			cancellation_reason, rejection_reason, expected_delivery_date, created_at
		FROM orders
		WHERE id = ?
	`, id.Bytes()).Row()

	var (
		view                           OrderView
		rawID, rawUserID, rawAddressID uuid.UUID
		status, paymentStatus          string
	)
	err := row.Scan(
		&rawID, &rawUserID, &rawAddressID, &status, &paymentStatus,
		&view.ConfirmedAt, &view.DispatchedAt, &view.ShippedAt, &view.DeliveredAt,
		&view.CancelledAt, &view.RejectedAt,
		&view.CancellationReason, &view.RejectionReason, &view.ExpectedDeliveryDate, &view.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	if view.ID, err = kernel.UUIDFromBytes(rawID[:]); err != nil {
		return nil, err
	}
	if view.UserID, err = kernel.UUIDFromBytes(rawUserID[:]); err != nil {
		return nil, err
	}
	if view.ShippingAddressID, err = kernel.UUIDFromBytes(rawAddressID[:]); err != nil {
		return nil, err
	}
	if view.Status, err = order.ParseStatus(status); err != nil {
		return nil, err
	}
	if view.PaymentStatus, err = order.ParsePaymentStatus(paymentStatus); err != nil {
		return nil, err
	}
	return &view, nil
}

func (h GetOrderQueryHandler) loadRequests(ctx context.Context, orderID kernel.UUID) ([]ReturnRequestView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id, order_item_id, vendor_id, kind, status, reason,
			requested_at, approved_at, rejected_at, processed_at, rejected_reason,
			return_amount, return_payment_status
		FROM return_replace_requests
		WHERE order_id = ?
		ORDER BY requested_at, id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]ReturnRequestView, 0)
	for rows.Next() {
		var (
			r                       ReturnRequestView
			rawID, rawItem, rawVend uuid.UUID
			kind, status            string
			amount                  decimal.NullDecimal
			refund                  sql.NullString
		)
		if err = rows.Scan(
			&rawID, &rawItem, &rawVend, &kind, &status, &r.Reason,
			&r.RequestedAt, &r.ApprovedAt, &r.RejectedAt, &r.ProcessedAt, &r.RejectedReason,
			&amount, &refund,
		); err != nil {
			return nil, err
		}
		if r.ID, err = kernel.UUIDFromBytes(rawID[:]); err != nil {
			return nil, err
		}
		if r.OrderItemID, err = kernel.UUIDFromBytes(rawItem[:]); err != nil {
			return nil, err
		}
		if r.VendorID, err = kernel.UUIDFromBytes(rawVend[:]); err != nil {
			return nil, err
		}
		if r.Kind, err = returns.ParseKind(kind); err != nil {
			return nil, err
		}
		if r.Status, err = returns.ParseStatus(status); err != nil {
			return nil, err
		}
		if r.RefundStatus, err = returns.ParseRefundStatus(refund.String); err != nil {
			return nil, err
		}
		if amount.Valid {
			m, moneyErr := kernel.NewMoney(amount.Decimal)
			if moneyErr != nil {
				return nil, moneyErr
			}
			r.ReturnAmount = &m
		}
		requests = append(requests, r)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

// loadItemsByOrder returns the lines of the given orders with their product,
// keyed by order in line order. A non-nil vendorID keeps only that vendor's
// lines.
func loadItemsByOrder(
	ctx context.Context,
	db *gorm.DB,
	orderIDs []uuid.UUID,
	vendorID *kernel.UUID,
) (map[uuid.UUID][]OrderItemView, error) {
	byOrder := make(map[uuid.UUID][]OrderItemView, len(orderIDs))
	if len(orderIDs) == 0 {
		return byOrder, nil
	}

	q := db.WithContext(ctx).
		Table("order_items AS oi").
		Select("oi.order_id, oi.id, oi.product_id, p.name, p.vendor_id, oi.quantity, oi.total_price").
		Joins("JOIN products AS p ON p.id = oi.product_id").
		Where("oi.order_id IN ?", orderIDs)
	if vendorID != nil {
		q = q.Where("p.vendor_id = ?", vendorID.Bytes())
	}
	rows, err := q.Order("oi.order_id, oi.position").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item                                     OrderItemView
			rawOrder, rawID, rawProduct, rawVendorID uuid.UUID
			total                                    decimal.Decimal
		)
		if err = rows.Scan(&rawOrder, &rawID, &rawProduct, &item.ProductName, &rawVendorID, &item.Quantity, &total); err != nil {
			return nil, err
		}
		if item.ID, err = kernel.UUIDFromBytes(rawID[:]); err != nil {
			return nil, err
		}
		if item.ProductID, err = kernel.UUIDFromBytes(rawProduct[:]); err != nil {
			return nil, err
		}
		if item.VendorID, err = kernel.UUIDFromBytes(rawVendorID[:]); err != nil {
			return nil, err
		}
		if item.TotalPrice, err = kernel.NewMoney(total); err != nil {
			return nil, err
		}
		byOrder[rawOrder] = append(byOrder[rawOrder], item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return byOrder, nil
}
