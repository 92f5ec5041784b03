package returnrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OpenRequestIndex is the partial unique index allowing one open request per
// order item and kind.
const OpenRequestIndex = "ux_return_replace_requests_open_item_kind"

const uniqueViolation = "23505"

// GormRequestRepository implements ports.ReturnRequestRepository using GORM.
type GormRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormRequestRepository {
	return &GormRequestRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormRequestRepository) Add(ctx context.Context, aggregate *returns.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == OpenRequestIndex {
			return errs.NewPolicyViolationError(services.RuleDuplicateRequest, aggregate.OrderItemID().String())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormRequestRepository) Update(ctx context.Context, aggregate *returns.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&RequestDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("returnRequest", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormRequestRepository) Get(ctx context.Context, id kernel.UUID) (*returns.Request, error) {
	return r.get(ctx, r.db, id)
}

func (r *GormRequestRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*returns.Request, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormRequestRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*returns.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RequestDTO
	if err := db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("returnRequest", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormRequestRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*returns.Request, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []RequestDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("requested_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	requests := make([]*returns.Request, 0, len(dtos))
	for _, dto := range dtos {
		request, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, nil
}

func (r *GormRequestRepository) ExistsOpen(ctx context.Context, orderItemID kernel.UUID, kind returns.Kind) (bool, error) {
	open := make([]string, 0, 2)
	for _, s := range returns.OpenStatuses() {
		open = append(open, s.String())
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&RequestDTO{}).
		Where("order_item_id = ? AND kind = ? AND status IN ?", orderItemID.Bytes(), kind.String(), open).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
