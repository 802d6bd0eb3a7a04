package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	"github.com/viewtouch/settle-api/internal/domain/enum"
	"github.com/viewtouch/settle-api/internal/domain/repository"
	"github.com/viewtouch/settle-api/pkg/apperror"
)

// DiscountService manages discount, coupon, comp, employee meal and gratuity
// definitions
type DiscountService struct {
	discountRepo repository.DiscountRepository
}

// NewDiscountService creates a new discount service
func NewDiscountService(discountRepo repository.DiscountRepository) *DiscountService {
	return &DiscountService{discountRepo: discountRepo}
}

// DiscountInput represents the input for creating or updating a definition
type DiscountInput struct {
	Name           string
	Tender         enum.TenderType
	Amount         int64
	IsPercent      bool
	NoRevenue      bool
	NoTax          bool
	CoverTax       bool
	NoRestrictions bool
	ApplyEach      bool
	ItemMatch      string
	FamilyMatch    string
	Active         bool
}

func (in *DiscountInput) validate() error {
	var fields []apperror.FieldError
	if in.Name == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "is required"})
	}
	if !entity.DefinableTender(in.Tender) {
		fields = append(fields, apperror.FieldError{Field: "tender", Message: "must be a discount, coupon, comp, employee meal or gratuity"})
	}
	if in.Amount < 0 {
		fields = append(fields, apperror.FieldError{Field: "amount", Message: "must not be negative"})
	}
	if in.IsPercent && in.Amount > 10000 {
		fields = append(fields, apperror.FieldError{Field: "amount", Message: "percent is in basis points and may not exceed 10000"})
	}
	if in.ApplyEach && in.Tender != enum.TenderCoupon {
		fields = append(fields, apperror.FieldError{Field: "apply_each", Message: "only coupons apply to each item"})
	}
	if in.ApplyEach && in.ItemMatch == "" && in.FamilyMatch == "" {
		fields = append(fields, apperror.FieldError{Field: "item_match", Message: "an item or family match is required"})
	}
	if in.CoverTax && in.Tender != enum.TenderComp {
		fields = append(fields, apperror.FieldError{Field: "cover_tax", Message: "only comps cover tax"})
	}
	if len(fields) > 0 {
		return apperror.NewValidationError(fields)
	}
	return nil
}

func (in *DiscountInput) apply(d *entity.DiscountDefinition) {
	d.Name = in.Name
	d.Tender = in.Tender
	d.Amount = in.Amount
	d.IsPercent = in.IsPercent
	d.NoRevenue = in.NoRevenue
	d.NoTax = in.NoTax
	d.CoverTax = in.CoverTax
	d.NoRestrictions = in.NoRestrictions
	d.ApplyEach = in.ApplyEach
	d.ItemMatch = in.ItemMatch
	d.FamilyMatch = in.FamilyMatch
	d.Active = in.Active
}

// CreateDiscount stores a new definition
func (s *DiscountService) CreateDiscount(ctx context.Context, input *DiscountInput) (*entity.DiscountDefinition, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	d := &entity.DiscountDefinition{}
	input.apply(d)
	if err := s.discountRepo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// GetDiscount returns a definition by id
func (s *DiscountService) GetDiscount(ctx context.Context, id uuid.UUID) (*entity.DiscountDefinition, error) {
	d, err := s.discountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperror.NewNotFoundError("Discount")
	}
	return d, nil
}

// UpdateDiscount replaces a definition. Payments already applied keep the
// settings they were entered with.
func (s *DiscountService) UpdateDiscount(ctx context.Context, id uuid.UUID, input *DiscountInput) (*entity.DiscountDefinition, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	d, err := s.GetDiscount(ctx, id)
	if err != nil {
		return nil, err
	}
	input.apply(d)
	if err := s.discountRepo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// DeleteDiscount removes a definition
func (s *DiscountService) DeleteDiscount(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetDiscount(ctx, id); err != nil {
		return err
	}
	return s.discountRepo.Delete(ctx, id)
}

// ListDiscounts returns definitions, optionally of one tender and only active
func (s *DiscountService) ListDiscounts(ctx context.Context, tender *enum.TenderType, activeOnly bool) ([]entity.DiscountDefinition, error) {
	defs, err := s.discountRepo.List(ctx, tender, activeOnly)
	if err != nil {
		return nil, err
	}
	if defs == nil {
		defs = []entity.DiscountDefinition{}
	}
	return defs, nil
}
