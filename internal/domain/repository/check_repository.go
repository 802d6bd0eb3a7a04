package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	"github.com/viewtouch/settle-api/internal/domain/enum"
	"github.com/viewtouch/settle-api/pkg/pagination"
)

// CheckRepository defines the interface for check and subcheck persistence
type CheckRepository interface {
	// CreateCheck stores a check together with its subchecks
	CreateCheck(ctx context.Context, check *entity.Check) error
	// GetCheck returns the check with its subchecks, orders and payments
	GetCheck(ctx context.Context, id uuid.UUID) (*entity.Check, error)
	List(ctx context.Context, params *CheckFilterParams) ([]entity.Check, int64, error)

	CreateSubCheck(ctx context.Context, sc *entity.SubCheck) error
	// GetSubCheck loads a subcheck with its order tree and payment ledger. A
	// row written by a newer record layout is refused.
	GetSubCheck(ctx context.Context, id uuid.UUID) (*entity.SubCheck, error)
	// SaveSubCheck replaces the subcheck row, its orders and its payments in
	// one transaction
	SaveSubCheck(ctx context.Context, sc *entity.SubCheck) error
	NextSubCheckNumber(ctx context.Context, checkID uuid.UUID) (int, error)
}

// CheckFilterParams contains filtering parameters for check queries
type CheckFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.CheckStatus
	EmployeeID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}
