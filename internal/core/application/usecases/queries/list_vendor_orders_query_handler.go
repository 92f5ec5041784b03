package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/access"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const vendorScope = `EXISTS (
	SELECT 1
	FROM order_items AS oi
	JOIN products AS p ON p.id = oi.product_id
	WHERE oi.order_id = o.id AND p.vendor_id = ?
)`

// ListVendorOrdersQueryHandler lists the orders a vendor has items in. Admins
// see every order with all of its items.
type ListVendorOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListVendorOrdersQueryHandler(db *gorm.DB) ListVendorOrdersQueryHandler {
	return ListVendorOrdersQueryHandler{db: db}
}

func (h ListVendorOrdersQueryHandler) Handle(ctx context.Context, query ListVendorOrdersQuery) (*VendorOrdersPage, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := access.AuthorizeListVendorOrders(query.Actor()); err != nil {
		return nil, err
	}

	var vendorID *kernel.UUID
	if !access.IsAdmin(query.Actor()) {
		id := query.Actor().ID()
		vendorID = &id
	}
	scoped := func() *gorm.DB {
		q := h.db.WithContext(ctx).Table("orders AS o")
		if vendorID != nil {
			q = q.Where(vendorScope, vendorID.Bytes())
		}
		return q
	}

	counts, err := h.countByStatus(scoped())
	if err != nil {
		return nil, err
	}

	page := &VendorOrdersPage{
		Orders:       make([]VendorOrderView, 0),
		StatusCounts: counts,
		Limit:        query.Limit(),
		Offset:       query.Offset(),
	}
	if filter := query.Status(); filter != nil {
		page.Total = counts[*filter]
	} else {
		for _, n := range counts {
			page.Total += n
		}
	}

	listing := scoped()
	if filter := query.Status(); filter != nil {
		listing = listing.Where("o.status = ?", filter.String())
	}
	rows, err := listing.
		Select("o.id, o.user_id, o.status, o.payment_status, o.created_at, o.expected_delivery_date").
		Order("o.created_at DESC, o.id").
		Limit(query.Limit()).
		Offset(query.Offset()).
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orderIDs := make([]uuid.UUID, 0, query.Limit())
	for rows.Next() {
		var (
			view                  VendorOrderView
			rawID, rawUserID      uuid.UUID
			status, paymentStatus string
		)
		if err = rows.Scan(&rawID, &rawUserID, &status, &paymentStatus, &view.CreatedAt, &view.ExpectedDeliveryDate); err != nil {
			return nil, err
		}
		if view.ID, err = kernel.UUIDFromBytes(rawID[:]); err != nil {
			return nil, err
		}
		if view.UserID, err = kernel.UUIDFromBytes(rawUserID[:]); err != nil {
			return nil, err
		}
		if view.Status, err = order.ParseStatus(status); err != nil {
			return nil, err
		}
		if view.PaymentStatus, err = order.ParsePaymentStatus(paymentStatus); err != nil {
			return nil, err
		}
		orderIDs = append(orderIDs, rawID)
		page.Orders = append(page.Orders, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	items, err := loadItemsByOrder(ctx, h.db, orderIDs, vendorID)
	if err != nil {
		return nil, err
	}
	for i := range page.Orders {
		view := &page.Orders[i]
		view.Items = items[view.ID.Bytes()]
		if view.Items == nil {
			view.Items = make([]OrderItemView, 0)
		}
		view.ItemsTotal = kernel.ZeroMoney()
		for _, item := range view.Items {
			view.ItemsTotal = view.ItemsTotal.Add(item.TotalPrice)
		}
	}

	return page, nil
}

func (h ListVendorOrdersQueryHandler) countByStatus(q *gorm.DB) (map[order.Status]int64, error) {
	rows, err := q.Select("o.status, COUNT(*)").Group("o.status").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[order.Status]int64)
	for rows.Next() {
		var (
			name string
			n    int64
		)
		if err = rows.Scan(&name, &n); err != nil {
			return nil, err
		}
		status, parseErr := order.ParseStatus(name)
		if parseErr != nil {
			return nil, parseErr
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
