package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	domainRepo "github.com/viewtouch/settle-api/internal/domain/repository"
	"github.com/viewtouch/settle-api/internal/domain/settlement"
	"github.com/viewtouch/settle-api/pkg/pagination"
	"gorm.io/gorm"
)

type checkRepository struct {
	db *gorm.DB
}

// NewCheckRepository creates a new check repository
func NewCheckRepository(db *gorm.DB) domainRepo.CheckRepository {
	return &checkRepository{db: db}
}

func (r *checkRepository) CreateCheck(ctx context.Context, check *entity.Check) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("SubChecks").Create(check).Error; err != nil {
			return err
		}
		for i := range check.SubChecks {
			sc := &check.SubChecks[i]
			sc.CheckID = check.ID
			if err := tx.Create(sc).Error; err != nil {
				return err
			}
			if err := replaceLines(tx, sc); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *checkRepository) GetCheck(ctx context.Context, id uuid.UUID) (*entity.Check, error) {
	var check entity.Check
	err := r.db.WithContext(ctx).First(&check, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Where("check_id = ?", id).
		Order("number ASC").
		Find(&check.SubChecks).Error; err != nil {
		return nil, err
	}
	for i := range check.SubChecks {
		if err := loadLines(r.db.WithContext(ctx), &check.SubChecks[i]); err != nil {
			return nil, err
		}
	}
	return &check, nil
}

func (r *checkRepository) List(ctx context.Context, params *domainRepo.CheckFilterParams) ([]entity.Check, int64, error) {
	var checks []entity.Check
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Check{})

	if params.Search != "" {
		like := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(check_no) LIKE ? OR LOWER(table_label) LIKE ?", like, like)
	}

	if params.Status != nil {
		query = query.Where("EXISTS (SELECT 1 FROM sub_checks WHERE sub_checks.check_id = checks.id AND sub_checks.status = ?)", *params.Status)
	}

	if params.EmployeeID != nil {
		query = query.Where("employee_id = ?", *params.EmployeeID)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := params.Pagination
	if page == nil {
		page = pagination.DefaultPagination()
	}
	page.Validate()
	err := query.Scopes(page.Scope()).
		Preload("SubChecks", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		Order("created_at DESC").
		Find(&checks).Error

	return checks, total, err
}

func (r *checkRepository) CreateSubCheck(ctx context.Context, sc *entity.SubCheck) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sc).Error; err != nil {
			return err
		}
		return replaceLines(tx, sc)
	})
}

func (r *checkRepository) GetSubCheck(ctx context.Context, id uuid.UUID) (*entity.SubCheck, error) {
	var sc entity.SubCheck
	err := r.db.WithContext(ctx).First(&sc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := loadLines(r.db.WithContext(ctx), &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (r *checkRepository) SaveSubCheck(ctx context.Context, sc *entity.SubCheck) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(sc).Error; err != nil {
			return err
		}
		return replaceLines(tx, sc)
	})
}

func (r *checkRepository) NextSubCheckNumber(ctx context.Context, checkID uuid.UUID) (int, error) {
	var max int
	err := r.db.WithContext(ctx).Model(&entity.SubCheck{}).
		Where("check_id = ?", checkID).
		Select("COALESCE(MAX(number), 0)").
		Scan(&max).Error
	return max + 1, err
}

// loadLines fills the order tree and payment ledger of a subcheck row
func loadLines(db *gorm.DB, sc *entity.SubCheck) error {
	if err := settlement.CheckVersion(sc.RecordVersion); err != nil {
		return err
	}

	var rows []entity.Order
	if err := db.Where("sub_check_id = ?", sc.ID).
		Order("position ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return err
	}
	sc.Orders = entity.BuildOrderTree(rows)

	sc.Payments = nil
	return db.Where("sub_check_id = ?", sc.ID).
		Order("position ASC").
		Find(&sc.Payments).Error
}

// replaceLines rewrites every order and payment row of a subcheck
func replaceLines(tx *gorm.DB, sc *entity.SubCheck) error {
	if err := tx.Where("sub_check_id = ?", sc.ID).Delete(&entity.Order{}).Error; err != nil {
		return err
	}
	if err := tx.Where("sub_check_id = ?", sc.ID).Delete(&entity.Payment{}).Error; err != nil {
		return err
	}

	for i := range sc.Orders {
		assignIDs(&sc.Orders[i])
	}

	var rows []entity.Order
	for i, o := range sc.Orders {
		o.Position = i
		rows = append(rows, o.Flatten(sc.ID, nil)...)
	}
	if len(rows) > 0 {
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}

	if len(sc.Payments) == 0 {
		return nil
	}
	payments := make([]entity.Payment, len(sc.Payments))
	for i, p := range sc.Payments {
		p.SubCheckID = sc.ID
		p.Position = i
		payments[i] = p
	}
	return tx.Create(&payments).Error
}

func assignIDs(o *entity.Order) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	for i := range o.Modifiers {
		assignIDs(&o.Modifiers[i])
	}
}
