package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	domainRepo "github.com/viewtouch/settle-api/internal/domain/repository"
	"github.com/viewtouch/settle-api/pkg/pagination"
	"gorm.io/gorm"
)

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) domainRepo.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, e *entity.Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *employeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	var e entity.Employee
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &e, err
}

func (r *employeeRepository) GetByCode(ctx context.Context, code string) (*entity.Employee, error) {
	var e entity.Employee
	err := r.db.WithContext(ctx).First(&e, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &e, err
}

func (r *employeeRepository) Update(ctx context.Context, e *entity.Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *employeeRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Employee, int64, error) {
	var employees []entity.Employee
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Employee{})
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR code LIKE ?", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Scopes(params.Scope()).
		Order("code ASC").
		Find(&employees).Error

	return employees, total, err
}
