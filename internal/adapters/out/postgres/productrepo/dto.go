// Package productrepo persists the stock-related view of products.
package productrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO holds the product columns this service reads and writes. The
// catalogue owns the rest of the table.
type ProductDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	VendorID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name          string    `gorm:"type:varchar(255);not null"`
	StockQuantity int       `gorm:"not null;check:stock_quantity >= 0"`
	IsReturnable  bool      `gorm:"not null;default:false"`
	IsReplaceable bool      `gorm:"not null;default:false"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:            p.ID().Bytes(),
		VendorID:      p.VendorID().Bytes(),
		Name:          p.Name(),
		StockQuantity: p.StockQuantity(),
		IsReturnable:  p.IsReturnable(),
		IsReplaceable: p.IsReplaceable(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	vendorID, err := kernel.UUIDFromBytes(dto.VendorID[:])
	if err != nil {
		return nil, err
	}
	return product.RestoreProduct(id, vendorID, dto.Name, dto.StockQuantity, dto.IsReturnable, dto.IsReplaceable), nil
}
