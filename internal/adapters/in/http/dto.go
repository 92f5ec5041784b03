package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/returns"

	"github.com/google/uuid"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code       int      `json:"code"`
	Message    string   `json:"message"`
	Violations []string `json:"violations,omitempty"`
}

type ReasonRequest struct {
	Reason *string `json:"reason" validate:"omitempty,max=500"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,max=32"`
}

type OrderItem struct {
	Id          uuid.UUID  `json:"id"`
	ProductId   uuid.UUID  `json:"productId"`
	ProductName string     `json:"productName,omitempty"`
	VendorId    *uuid.UUID `json:"vendorId,omitempty"`
	Quantity    int        `json:"quantity"`
	TotalPrice  string     `json:"totalPrice"`
}

type ReturnRequest struct {
	Id                  uuid.UUID  `json:"id"`
	OrderId             uuid.UUID  `json:"orderId"`
	OrderItemId         uuid.UUID  `json:"orderItemId"`
	VendorId            uuid.UUID  `json:"vendorId"`
	Kind                string     `json:"kind"`
	Status              string     `json:"status"`
	Reason              *string    `json:"reason,omitempty"`
	RequestedAt         time.Time  `json:"requestedAt"`
	ApprovedAt          *time.Time `json:"approvedAt,omitempty"`
	RejectedAt          *time.Time `json:"rejectedAt,omitempty"`
	ProcessedAt         *time.Time `json:"processedAt,omitempty"`
	RejectedReason      *string    `json:"rejectedReason,omitempty"`
	ReturnAmount        *string    `json:"returnAmount,omitempty"`
	ReturnPaymentStatus *string    `json:"returnPaymentStatus,omitempty"`
}

type Order struct {
	Id                   uuid.UUID       `json:"id"`
	UserId               uuid.UUID       `json:"userId"`
	ShippingAddressId    uuid.UUID       `json:"shippingAddressId"`
	Status               string          `json:"status"`
	PaymentStatus        string          `json:"paymentStatus"`
	ConfirmedAt          *time.Time      `json:"confirmedAt,omitempty"`
	DispatchedAt         *time.Time      `json:"dispatchedAt,omitempty"`
	ShippedAt            *time.Time      `json:"shippedAt,omitempty"`
	DeliveredAt          *time.Time      `json:"deliveredAt,omitempty"`
	CancelledAt          *time.Time      `json:"cancelledAt,omitempty"`
	RejectedAt           *time.Time      `json:"rejectedAt,omitempty"`
	CancellationReason   *string         `json:"cancellationReason,omitempty"`
	RejectionReason      *string         `json:"rejectionReason,omitempty"`
	ExpectedDeliveryDate *time.Time      `json:"expectedDeliveryDate,omitempty"`
	CreatedAt            time.Time       `json:"createdAt"`
	Total                string          `json:"total"`
	Items                []OrderItem     `json:"items"`
	Requests             []ReturnRequest `json:"requests,omitempty"`
}

type VendorOrder struct {
	Id                   uuid.UUID   `json:"id"`
	UserId               uuid.UUID   `json:"userId"`
	Status               string      `json:"status"`
	PaymentStatus        string      `json:"paymentStatus"`
	CreatedAt            time.Time   `json:"createdAt"`
	ExpectedDeliveryDate *time.Time  `json:"expectedDeliveryDate,omitempty"`
	Items                []OrderItem `json:"items"`
	ItemsTotal           string      `json:"itemsTotal"`
}

type VendorOrdersPage struct {
	Orders       []VendorOrder    `json:"orders"`
	Total        int64            `json:"total"`
	StatusCounts map[string]int64 `json:"statusCounts"`
	Limit        int              `json:"limit"`
	Offset       int              `json:"offset"`
}

func orderFromDomain(o *order.Order) Order {
	items := make([]OrderItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItem{
			Id:         item.ID().Bytes(),
			ProductId:  item.ProductID().Bytes(),
			Quantity:   item.Quantity(),
			TotalPrice: item.TotalPrice().String(),
		})
	}
	return Order{
		Id:                   o.ID().Bytes(),
		UserId:               o.UserID().Bytes(),
		ShippingAddressId:    o.ShippingAddressID().Bytes(),
		Status:               o.Status().String(),
		PaymentStatus:        o.PaymentStatus().String(),
		ConfirmedAt:          o.ConfirmedAt(),
		DispatchedAt:         o.DispatchedAt(),
		ShippedAt:            o.ShippedAt(),
		DeliveredAt:          o.DeliveredAt(),
		CancelledAt:          o.CancelledAt(),
		RejectedAt:           o.RejectedAt(),
		CancellationReason:   o.CancellationReason(),
		RejectionReason:      o.RejectionReason(),
		ExpectedDeliveryDate: o.ExpectedDeliveryDate(),
		CreatedAt:            o.CreatedAt(),
		Total:                o.Total().String(),
		Items:                items,
	}
}

func requestFromDomain(r *returns.Request) ReturnRequest {
	response := ReturnRequest{
		Id:             r.ID().Bytes(),
		OrderId:        r.OrderID().Bytes(),
		OrderItemId:    r.OrderItemID().Bytes(),
		VendorId:       r.VendorID().Bytes(),
		Kind:           r.Kind().String(),
		Status:         r.Status().String(),
		Reason:         r.Reason(),
		RequestedAt:    r.RequestedAt(),
		ApprovedAt:     r.ApprovedAt(),
		RejectedAt:     r.RejectedAt(),
		ProcessedAt:    r.ProcessedAt(),
		RejectedReason: r.RejectedReason(),
	}
	if amount := r.ReturnAmount(); amount != nil {
		s := amount.String()
		response.ReturnAmount = &s
	}
	if r.RefundStatus() != returns.RefundNone {
		s := r.RefundStatus().String()
		response.ReturnPaymentStatus = &s
	}
	return response
}

func itemFromView(v queries.OrderItemView) OrderItem {
	vendorID := v.VendorID.Bytes()
	return OrderItem{
		Id:          v.ID.Bytes(),
		ProductId:   v.ProductID.Bytes(),
		ProductName: v.ProductName,
		VendorId:    &vendorID,
		Quantity:    v.Quantity,
		TotalPrice:  v.TotalPrice.String(),
	}
}

func itemsFromView(views []queries.OrderItemView) []OrderItem {
	items := make([]OrderItem, 0, len(views))
	for _, v := range views {
		items = append(items, itemFromView(v))
	}
	return items
}

func requestFromView(v queries.ReturnRequestView, orderID uuid.UUID) ReturnRequest {
	response := ReturnRequest{
		Id:             v.ID.Bytes(),
		OrderId:        orderID,
		OrderItemId:    v.OrderItemID.Bytes(),
		VendorId:       v.VendorID.Bytes(),
		Kind:           v.Kind.String(),
		Status:         v.Status.String(),
		Reason:         v.Reason,
		RequestedAt:    v.RequestedAt,
		ApprovedAt:     v.ApprovedAt,
		RejectedAt:     v.RejectedAt,
		ProcessedAt:    v.ProcessedAt,
		RejectedReason: v.RejectedReason,
	}
	if v.ReturnAmount != nil {
		s := v.ReturnAmount.String()
		response.ReturnAmount = &s
	}
	if v.RefundStatus != returns.RefundNone {
		s := v.RefundStatus.String()
		response.ReturnPaymentStatus = &s
	}
	return response
}

func orderFromView(v *queries.OrderView) Order {
	id := v.ID.Bytes()
	requests := make([]ReturnRequest, 0, len(v.Requests))
	for _, r := range v.Requests {
		requests = append(requests, requestFromView(r, id))
	}
	return Order{
		Id:                   id,
		UserId:               v.UserID.Bytes(),
		ShippingAddressId:    v.ShippingAddressID.Bytes(),
		Status:               v.Status.String(),
		PaymentStatus:        v.PaymentStatus.String(),
		ConfirmedAt:          v.ConfirmedAt,
		DispatchedAt:         v.DispatchedAt,
		ShippedAt:            v.ShippedAt,
		DeliveredAt:          v.DeliveredAt,
		CancelledAt:          v.CancelledAt,
		RejectedAt:           v.RejectedAt,
		CancellationReason:   v.CancellationReason,
		RejectionReason:      v.RejectionReason,
		ExpectedDeliveryDate: v.ExpectedDeliveryDate,
		CreatedAt:            v.CreatedAt,
		Total:                v.Total.String(),
		Items:                itemsFromView(v.Items),
		Requests:             requests,
	}
}

func pageFromView(p *queries.VendorOrdersPage) VendorOrdersPage {
	orders := make([]VendorOrder, 0, len(p.Orders))
	for _, o := range p.Orders {
		orders = append(orders, VendorOrder{
			Id:                   o.ID.Bytes(),
			UserId:               o.UserID.Bytes(),
			Status:               o.Status.String(),
			PaymentStatus:        o.PaymentStatus.String(),
			CreatedAt:            o.CreatedAt,
			ExpectedDeliveryDate: o.ExpectedDeliveryDate,
			Items:                itemsFromView(o.Items),
			ItemsTotal:           o.ItemsTotal.String(),
		})
	}
	counts := make(map[string]int64, len(p.StatusCounts))
	for status, n := range p.StatusCounts {
		counts[status.String()] = n
	}
	return VendorOrdersPage{
		Orders:       orders,
		Total:        p.Total,
		StatusCounts: counts,
		Limit:        p.Limit,
		Offset:       p.Offset,
	}
}
