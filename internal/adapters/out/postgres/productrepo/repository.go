package productrepo

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements ports.ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Add(ctx context.Context, p *product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes the stock quantity, the only product field this service changes.
func (r *GormProductRepository) Update(ctx context.Context, p *product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ?", p.ID().Bytes()).
		Update("stock_quantity", p.StockQuantity())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", p.ID().String())
	}
	return nil
}

// Get returns the products ordered by id.
func (r *GormProductRepository) Get(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error) {
	return r.find(ctx, r.db, ids)
}

// GetForUpdate locks the rows in id order so concurrent restocks cannot deadlock.
func (r *GormProductRepository) GetForUpdate(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error) {
	return r.find(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), ids)
}

func (r *GormProductRepository) find(ctx context.Context, db *gorm.DB, ids []kernel.UUID) ([]*product.Product, error) {
	if len(ids) == 0 {
		return []*product.Product{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	wanted := make(map[uuid.UUID]kernel.UUID, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		if _, dup := wanted[id.Bytes()]; dup {
			continue
		}
		wanted[id.Bytes()] = id
		raw = append(raw, id.Bytes())
	}

	var dtos []ProductDTO
	if err := db.WithContext(ctx).Where("id IN ?", raw).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	products := make([]*product.Product, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		delete(wanted, dto.ID)
		products = append(products, p)
	}
	for _, id := range raw {
		if missing, ok := wanted[id]; ok {
			return nil, errs.NewObjectNotFoundError("product", missing.String())
		}
	}
	return products, nil
}
