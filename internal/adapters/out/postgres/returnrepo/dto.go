// Package returnrepo persists return and replace requests.
package returnrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequestDTO is a return_replace_requests row. ReturnAmount and
// ReturnPaymentStatus are NULL for replacements.
type RequestDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID             uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderItemID         uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID              uuid.UUID `gorm:"type:uuid;not null"`
	VendorID            uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind                string    `gorm:"type:varchar(16);not null"`
	Status              string    `gorm:"type:varchar(16);not null"`
	Reason              *string   `gorm:"type:text"`
	RequestedAt         time.Time `gorm:"not null"`
	ApprovedAt          *time.Time
	RejectedAt          *time.Time
	ProcessedAt         *time.Time
	RejectedReason      *string          `gorm:"type:text"`
	ReturnAmount        *decimal.Decimal `gorm:"type:decimal(18,4)"`
	ReturnPaymentStatus *string          `gorm:"type:varchar(16)"`
}

func (RequestDTO) TableName() string {
	return "return_replace_requests"
}

func fromDomain(r *returns.Request) RequestDTO {
	var amount *decimal.Decimal
	if m := r.ReturnAmount(); m != nil {
		a := m.Amount()
		amount = &a
	}
	var refund *string
	if s := r.RefundStatus().String(); s != "" {
		refund = &s
	}

	return RequestDTO{
		ID:                  r.ID().Bytes(),
		OrderID:             r.OrderID().Bytes(),
		OrderItemID:         r.OrderItemID().Bytes(),
		UserID:              r.UserID().Bytes(),
		VendorID:            r.VendorID().Bytes(),
		Kind:                r.Kind().String(),
		Status:              r.Status().String(),
		Reason:              r.Reason(),
		RequestedAt:         r.RequestedAt(),
		ApprovedAt:          r.ApprovedAt(),
		RejectedAt:          r.RejectedAt(),
		ProcessedAt:         r.ProcessedAt(),
		RejectedReason:      r.RejectedReason(),
		ReturnAmount:        amount,
		ReturnPaymentStatus: refund,
	}
}

func toDomain(dto RequestDTO) (*returns.Request, error) {
	ids := make([]kernel.UUID, 0, 5)
	for _, raw := range []uuid.UUID{dto.ID, dto.OrderID, dto.OrderItemID, dto.UserID, dto.VendorID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	kind, err := returns.ParseKind(dto.Kind)
	if err != nil {
		return nil, err
	}
	status, err := returns.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var refund returns.RefundStatus
	if dto.ReturnPaymentStatus != nil {
		if refund, err = returns.ParseRefundStatus(*dto.ReturnPaymentStatus); err != nil {
			return nil, err
		}
	}

	var amount *kernel.Money
	if dto.ReturnAmount != nil {
		m, moneyErr := kernel.NewMoney(*dto.ReturnAmount)
		if moneyErr != nil {
			return nil, moneyErr
		}
		amount = &m
	}

	return returns.RestoreRequest(returns.State{
		ID:             ids[0],
		OrderID:        ids[1],
		OrderItemID:    ids[2],
		UserID:         ids[3],
		VendorID:       ids[4],
		Kind:           kind,
		Status:         status,
		Reason:         dto.Reason,
		RequestedAt:    dto.RequestedAt,
		ApprovedAt:     dto.ApprovedAt,
		RejectedAt:     dto.RejectedAt,
		ProcessedAt:    dto.ProcessedAt,
		RejectedReason: dto.RejectedReason,
		ReturnAmount:   amount,
		RefundStatus:   refund,
	})
}
