package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/viewtouch/settle-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves a stored response by key for one employee
	GetByKey(ctx context.Context, key string, employeeID uuid.UUID) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes keys past their expiry
	DeleteExpired(ctx context.Context) error
}
