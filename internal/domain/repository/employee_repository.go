package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	"github.com/viewtouch/settle-api/pkg/pagination"
)

// EmployeeRepository defines the interface for employee data operations
type EmployeeRepository interface {
	Create(ctx context.Context, e *entity.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error)
	GetByCode(ctx context.Context, code string) (*entity.Employee, error)
	Update(ctx context.Context, e *entity.Employee) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Employee, int64, error)
}
