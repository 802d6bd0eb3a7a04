package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	"github.com/viewtouch/settle-api/internal/domain/enum"
)

// DiscountRepository defines the interface for discount definition data access
type DiscountRepository interface {
	Create(ctx context.Context, d *entity.DiscountDefinition) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.DiscountDefinition, error)
	Update(ctx context.Context, d *entity.DiscountDefinition) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, tender *enum.TenderType, activeOnly bool) ([]entity.DiscountDefinition, error)
}
