package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	"github.com/viewtouch/settle-api/internal/domain/enum"
	"github.com/viewtouch/settle-api/internal/domain/repository"
	"github.com/viewtouch/settle-api/internal/domain/settlement"
	"github.com/viewtouch/settle-api/pkg/apperror"
	"github.com/viewtouch/settle-api/pkg/pagination"
	"github.com/viewtouch/settle-api/pkg/utils"
)

// CheckService runs order entry, tender entry and the check lifecycle. Every
// mutation of a subcheck is serialized on that subcheck and followed by a
// full settlement pass before it is stored.
type CheckService struct {
	checkRepo    repository.CheckRepository
	settingsRepo repository.SettingsRepository
	discountRepo repository.DiscountRepository

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewCheckService creates a new check service
func NewCheckService(
	checkRepo repository.CheckRepository,
	settingsRepo repository.SettingsRepository,
	discountRepo repository.DiscountRepository,
) *CheckService {
	return &CheckService{
		checkRepo:    checkRepo,
		settingsRepo: settingsRepo,
		discountRepo: discountRepo,
		locks:        make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *CheckService) lock(id uuid.UUID) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// release drops the lock of a subcheck that has left the open state. A caller
// still waiting on the old mutex finds the subcheck closed once it gets in.
func (s *CheckService) release(id uuid.UUID) {
	s.mu.Lock()
	delete(s.locks, id)
	s.mu.Unlock()
}

// settings loads the tax settings row and the pass configuration built from it
func (s *CheckService) settings(ctx context.Context) (*entity.TaxSettings, *settlement.Config, error) {
	row, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := settlement.ConfigFromSettings(row)
	if err != nil {
		return nil, nil, settleError(err)
	}
	return row, cfg, nil
}

// settleError maps settlement failures to application errors
func settleError(err error) error {
	var verr *settlement.VersionError
	switch {
	case errors.As(err, &verr):
		return apperror.NewUnsupportedVersionError(verr.Version)
	case errors.Is(err, settlement.ErrMissingConfig):
		return apperror.ErrMissingTaxConfig
	case errors.Is(err, settlement.ErrInvalidRate):
		return apperror.NewPreconditionError(err.Error())
	case errors.Is(err, settlement.ErrMissingSubCheck):
		return apperror.NewPreconditionError(err.Error())
	}
	return err
}

func (s *CheckService) loadSubCheck(ctx context.Context, id uuid.UUID) (*entity.SubCheck, error) {
	sc, err := s.checkRepo.GetSubCheck(ctx, id)
	if err != nil {
		return nil, settleError(err)
	}
	if sc == nil {
		return nil, apperror.NewNotFoundError("Subcheck")
	}
	return sc, nil
}

// mutate applies fn to an open subcheck, reconciles and stores the result
func (s *CheckService) mutate(ctx context.Context, id uuid.UUID, fn func(sc *entity.SubCheck) error) (*entity.SubCheck, error) {
	unlock := s.lock(id)
	defer unlock()

	_, cfg, err := s.settings(ctx)
	if err != nil {
		return nil, err
	}

	sc, err := s.loadSubCheck(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sc.IsOpen() {
		s.release(id)
		return nil, apperror.ErrSubCheckClosed
	}

	if err := fn(sc); err != nil {
		return nil, err
	}

	out, err := settlement.Reconcile(sc, cfg)
	if err != nil {
		return nil, settleError(err)
	}
	if err := s.checkRepo.SaveSubCheck(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// OpenCheckInput represents the input for opening a check
type OpenCheckInput struct {
	EmployeeID uuid.UUID
	TableLabel string
	Guests     int
	OrderType  enum.OrderType
}

// OpenCheck opens a check with a single empty subcheck
func (s *CheckService) OpenCheck(ctx context.Context, input *OpenCheckInput) (*entity.Check, error) {
	row, cfg, err := s.settings(ctx)
	if err != nil {
		return nil, err
	}

	guests := input.Guests
	if guests < 1 {
		guests = 1
	}

	check := &entity.Check{
		ID:         uuid.New(),
		CheckNo:    utils.GenerateCheckNo(time.Now()),
		TableLabel: input.TableLabel,
		Guests:     guests,
		OrderType:  input.OrderType,
		EmployeeID: input.EmployeeID,
	}

	sc, err := settlement.Reconcile(s.newSubCheck(check, 1, row), cfg)
	if err != nil {
		return nil, settleError(err)
	}
	check.SubChecks = []entity.SubCheck{*sc}

	if err := s.checkRepo.CreateCheck(ctx, check); err != nil {
		return nil, err
	}
	return check, nil
}

func (s *CheckService) newSubCheck(check *entity.Check, number int, row *entity.TaxSettings) *entity.SubCheck {
	return &entity.SubCheck{
		ID:            uuid.New(),
		CheckID:       check.ID,
		Number:        number,
		Status:        enum.CheckStatusOpen,
		OrderType:     check.OrderType,
		NewQSTMethod:  row.NewQSTMethod,
		RecordVersion: entity.CurrentRecordVersion,
	}
}

// SplitCheck adds another empty subcheck to a check
func (s *CheckService) SplitCheck(ctx context.Context, checkID uuid.UUID) (*entity.SubCheck, error) {
	row, cfg, err := s.settings(ctx)
	if err != nil {
		return nil, err
	}

	check, err := s.GetCheck(ctx, checkID)
	if err != nil {
		return nil, err
	}

	number, err := s.checkRepo.NextSubCheckNumber(ctx, check.ID)
	if err != nil {
		return nil, err
	}

	sc, err := settlement.Reconcile(s.newSubCheck(check, number, row), cfg)
	if err != nil {
		return nil, settleError(err)
	}
	if err := s.checkRepo.CreateSubCheck(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// GetCheck returns a check with every subcheck
func (s *CheckService) GetCheck(ctx context.Context, id uuid.UUID) (*entity.Check, error) {
	check, err := s.checkRepo.GetCheck(ctx, id)
	if err != nil {
		return nil, settleError(err)
	}
	if check == nil {
		return nil, apperror.NewNotFoundError("Check")
	}
	return check, nil
}

// ListChecksInput represents the input for listing checks
type ListChecksInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.CheckStatus
	EmployeeID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// ListChecks returns a page of checks with their subcheck summaries
func (s *CheckService) ListChecks(ctx context.Context, input *ListChecksInput) (*pagination.PaginatedResult[entity.Check], error) {
	params := input.Pagination
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	checks, total, err := s.checkRepo.List(ctx, &repository.CheckFilterParams{
		Pagination: params,
		Search:     input.Search,
		Status:     input.Status,
		EmployeeID: input.EmployeeID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
	})
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(checks, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// GetSubCheck returns a subcheck with its orders and payments
func (s *CheckService) GetSubCheck(ctx context.Context, id uuid.UUID) (*entity.SubCheck, error) {
	return s.loadSubCheck(ctx, id)
}

// OrderInput represents an item or modifier rung in at a terminal
type OrderInput struct {
	Name               string
	Family             string
	Category           enum.SalesCategory
	SalesGroup         enum.SalesGroup
	UnitCost           int64
	Count              int64
	WeightPriced       bool
	Reduced            bool
	ReducedCost        int64
	NoComp             bool
	NoEmployeeDiscount bool
	NoDiscount         bool
	Untaxed            bool
	Qualifier          enum.Qualifier
}

func (in *OrderInput) order() entity.Order {
	count := in.Count
	if count == 0 {
		count = 1
	}
	return entity.Order{
		ID:                 uuid.New(),
		Name:               in.Name,
		Family:             in.Family,
		Category:           in.Category,
		SalesGroup:         in.SalesGroup,
		UnitCost:           in.UnitCost,
		Count:              count,
		WeightPriced:       in.WeightPriced,
		Reduced:            in.Reduced,
		ReducedCost:        in.ReducedCost,
		NoComp:             in.NoComp,
		NoEmployeeDiscount: in.NoEmployeeDiscount,
		NoDiscount:         in.NoDiscount,
		Untaxed:            in.Untaxed,
		Qualifier:          in.Qualifier,
		Status:             enum.OrderStatusPending,
		CreatedAt:          time.Now(),
	}
}

// AddOrder appends an item to a subcheck
func (s *CheckService) AddOrder(ctx context.Context, subCheckID uuid.UUID, input *OrderInput) (*entity.SubCheck, error) {
	return s.mutate(ctx, subCheckID, func(sc *entity.SubCheck) error {
		sc.Orders = append(sc.Orders, input.order())
		return nil
	})
}

// AddModifier attaches a modifier to an item or to another modifier
func (s *CheckService) AddModifier(ctx context.Context, subCheckID, parentID uuid.UUID, input *OrderInput) (*entity.SubCheck, error) {
	return s.mutate(ctx, subCheckID, func(sc *entity.SubCheck) error {
		parent := sc.FindOrder(parentID)
		if parent == nil {
			return apperror.NewNotFoundError("Order")
		}
		if parent.IsVoided() {
			return apperror.NewBadRequestError("Cannot modify a voided item")
		}
		mod := input.order()
		mod.ParentID = &parent.ID
		parent.Modifiers = append(parent.Modifiers, mod)
		return nil
	})
}

// RemoveOrder deletes an item or modifier together with its own modifiers
func (s *CheckService) RemoveOrder(ctx context.Context, subCheckID, orderID uuid.UUID) (*entity.SubCheck, error) {
	return s.mutate(ctx, subCheckID, func(sc *entity.SubCheck) error {
		orders, ok := removeOrder(sc.Orders, orderID)
		if !ok {
			return apperror.NewNotFoundError("Order")
		}
		sc.Orders = orders
		return nil
	})
}

func removeOrder(orders []entity.Order, id uuid.UUID) ([]entity.Order, bool) {
	for i := range orders {
		if orders[i].ID == id {
			return append(orders[:i:i], orders[i+1:]...), true
		}
		if mods, ok := removeOrder(orders[i].Modifiers, id); ok {
			orders[i].Modifiers = mods
			return orders, true
		}
	}
	return orders, false
}

// CompOrder marks an item as comped
func (s *CheckService) CompOrder(ctx context.Context, subCheckID, orderID uuid.UUID) (*entity.SubCheck, error) {
	return s.setComped(ctx, subCheckID, orderID, true)
}

// UncompOrder removes the comp from an item
func (s *CheckService) UncompOrder(ctx context.Context, subCheckID, orderID uuid.UUID) (*entity.SubCheck, error) {
	return s.setComped(ctx, subCheckID, orderID, false)
}

func (s *CheckService) setComped(ctx context.Context, subCheckID, orderID uuid.UUID, comped bool) (*entity.SubCheck, error) {
	return s.mutate(ctx, subCheckID, func(sc *entity.SubCheck) error {
		o := sc.FindOrder(orderID)
		if o == nil {
			return apperror.NewNotFoundError("Order")
		}
		if comped && o.NoComp {
			return apperror.NewBadRequestError("Item cannot be comped")
		}
		o.Comped = comped
		return nil
	})
}

// VoidOrder voids an item; it stays on the check but no longer counts
func (s *CheckService) VoidOrder(ctx context.Context, subCheckID, orderID uuid.UUID) (*entity.SubCheck, error) {
	return s.mutate(ctx, subCheckID, func(sc *entity.SubCheck) error {
		o := sc.FindOrder(orderID)
		if o == nil {
			return apperror.NewNotFoundError("Order")
		}
		o.Status = enum.OrderStatusVoided
		return nil
	})
}

// PaymentInput represents one tender entered at a terminal. When TenderID
// names a discount definition its settings replace the entered ones.
type PaymentInput struct {
	Tender         enum.TenderType
	TenderID       *uuid.UUID
	Amount         int64
	IsPercent      bool
	NoRevenue      bool
	NoTax          bool
	CoverTax       bool
	NoRestrictions bool
	Final          bool
	OpenTab        bool
	DrawerNo       int
	EmployeeID     *uuid.UUID
}

func (s *CheckService) payment(ctx context.Context, input *PaymentInput) (entity.Payment, error) {
	if !input.Tender.Valid() {
		return entity.Payment{}, apperror.NewBadRequestError("Unknown tender")
	}
	if input.Tender == enum.TenderChange || input.Tender == enum.TenderOverage {
		return entity.Payment{}, apperror.NewBadRequestError(input.Tender.String() + " is computed at settlement")
	}
	if input.Amount < 0 {
		return entity.Payment{}, apperror.NewBadRequestError("Amount cannot be negative")
	}

	var p entity.Payment
	if input.TenderID != nil {
		def, err := s.discountRepo.GetByID(ctx, *input.TenderID)
		if err != nil {
			return entity.Payment{}, err
		}
		if def == nil {
			return entity.Payment{}, apperror.NewNotFoundError("Discount")
		}
		if !def.Active {
			return entity.Payment{}, apperror.NewBadRequestError("Discount is not active")
		}
		p = def.NewPayment()
	} else {
		p = entity.Payment{
			Tender:         input.Tender,
			Amount:         input.Amount,
			IsPercent:      input.IsPercent,
			NoRevenue:      input.NoRevenue,
			NoTax:          input.NoTax,
			CoverTax:       input.CoverTax,
			NoRestrictions: input.NoRestrictions,
		}
	}

	p.ID = uuid.New()
	p.Final = input.Final
	p.OpenTab = input.OpenTab
	p.DrawerNo = input.DrawerNo
	p.EmployeeID = input.EmployeeID
	p.CreatedAt = time.Now()
	return p, nil
}

// AddPayment applies a tender to a subcheck
func (s *CheckService) AddPayment(ctx context.Context, subCheckID uuid.UUID, input *PaymentInput) (*entity.SubCheck, error) {
	p, err := s.payment(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, subCheckID, func(sc *entity.SubCheck) error {
		p.SubCheckID = sc.ID
		sc.Payments = settlement.AddPayment(sc.Payments, p)
		return nil
	})
}

// RemovePayment takes a tender off a subcheck
func (s *CheckService) RemovePayment(ctx context.Context, subCheckID, paymentID uuid.UUID) (*entity.SubCheck, error) {
	return s.mutate(ctx, subCheckID, func(sc *entity.SubCheck) error {
		if p := sc.FindPayment(paymentID); p != nil && p.Synthetic {
			return apperror.NewBadRequestError(p.Tender.String() + " is computed at settlement")
		}
		payments, ok := settlement.RemovePayment(sc.Payments, paymentID)
		if !ok {
			return apperror.NewNotFoundError("Payment")
		}
		sc.Payments = payments
		return nil
	})
}

// ConsolidatePayments merges matching tender lines into one
func (s *CheckService) ConsolidatePayments(ctx context.Context, subCheckID uuid.UUID) (*entity.SubCheck, error) {
	return s.mutate(ctx, subCheckID, func(sc *entity.SubCheck) error {
		sc.Payments = settlement.Consolidate(sc.Payments)
		return nil
	})
}

// FinalizeTab settles the open-tab payments of a subcheck. With a nil
// paymentID every open-tab payment is finalized.
func (s *CheckService) FinalizeTab(ctx context.Context, subCheckID uuid.UUID, paymentID *uuid.UUID) (*entity.SubCheck, error) {
	return s.mutate(ctx, subCheckID, func(sc *entity.SubCheck) error {
		found := false
		for i := range sc.Payments {
			p := &sc.Payments[i]
			if !p.OpenTab || p.Final {
				continue
			}
			if paymentID != nil && p.ID != *paymentID {
				continue
			}
			p.Final = true
			found = true
		}
		if !found {
			return apperror.NewNotFoundError("Open tab payment")
		}
		return nil
	})
}

// SetTaxExempt records a tax exemption id; an empty id clears it
func (s *CheckService) SetTaxExempt(ctx context.Context, subCheckID uuid.UUID, exemptID string) (*entity.SubCheck, error) {
	return s.mutate(ctx, subCheckID, func(sc *entity.SubCheck) error {
		sc.TaxExempt = exemptID
		return nil
	})
}

// SetDeliveryCharge sets the delivery charge in cents
func (s *CheckService) SetDeliveryCharge(ctx context.Context, subCheckID uuid.UUID, cents int64) (*entity.SubCheck, error) {
	if cents < 0 {
		return nil, apperror.NewBadRequestError("Delivery charge cannot be negative")
	}
	return s.mutate(ctx, subCheckID, func(sc *entity.SubCheck) error {
		sc.DeliveryCharge = cents
		return nil
	})
}

// Recompute runs a settlement pass without changing anything else
func (s *CheckService) Recompute(ctx context.Context, subCheckID uuid.UUID) (*entity.SubCheck, error) {
	return s.mutate(ctx, subCheckID, func(sc *entity.SubCheck) error {
		return nil
	})
}

// CloseSubCheck closes a subcheck that is fully paid
func (s *CheckService) CloseSubCheck(ctx context.Context, subCheckID uuid.UUID) (*entity.SubCheck, error) {
	return s.transition(ctx, subCheckID, func(sc *entity.SubCheck) error {
		if sc.Balance != 0 || sc.OpenTabRemainder != 0 {
			return apperror.ErrBalanceDue
		}
		sc.Status = enum.CheckStatusClosed
		return nil
	})
}

// VoidSubCheck voids an open subcheck that has no payments entered against it.
// Payments the settlement pass adds itself, such as rounding loss, don't count.
func (s *CheckService) VoidSubCheck(ctx context.Context, subCheckID uuid.UUID) (*entity.SubCheck, error) {
	return s.transition(ctx, subCheckID, func(sc *entity.SubCheck) error {
		for _, p := range sc.Payments {
			if !p.Synthetic {
				return apperror.ErrHasPayments
			}
		}
		sc.Status = enum.CheckStatusVoided
		return nil
	})
}

// transition reconciles an open subcheck and then lets fn move it out of the
// open state, judged on freshly computed totals
func (s *CheckService) transition(ctx context.Context, id uuid.UUID, fn func(sc *entity.SubCheck) error) (*entity.SubCheck, error) {
	unlock := s.lock(id)
	defer unlock()

	_, cfg, err := s.settings(ctx)
	if err != nil {
		return nil, err
	}

	sc, err := s.loadSubCheck(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sc.IsOpen() {
		s.release(id)
		return nil, apperror.ErrSubCheckClosed
	}

	out, err := settlement.Reconcile(sc, cfg)
	if err != nil {
		return nil, settleError(err)
	}
	if err := fn(out); err != nil {
		return nil, err
	}

	now := time.Now()
	out.ClosedAt = &now
	if err := s.checkRepo.SaveSubCheck(ctx, out); err != nil {
		return nil, err
	}
	s.release(id)
	return out, nil
}

// ExportSubCheck serializes the replayable state of a subcheck
func (s *CheckService) ExportSubCheck(ctx context.Context, subCheckID uuid.UUID) ([]byte, error) {
	sc, err := s.loadSubCheck(ctx, subCheckID)
	if err != nil {
		return nil, err
	}
	data, err := settlement.EncodeRecord(sc)
	if err != nil {
		return nil, settleError(err)
	}
	return data, nil
}

// ImportSubCheck adds a subcheck replayed from an exported record to a check.
// Nothing is stored when the record cannot be read.
func (s *CheckService) ImportSubCheck(ctx context.Context, checkID uuid.UUID, data []byte) (*entity.SubCheck, error) {
	_, cfg, err := s.settings(ctx)
	if err != nil {
		return nil, err
	}

	sc, err := settlement.DecodeRecord(data)
	if err != nil {
		if errors.Is(err, settlement.ErrUnsupportedVersion) {
			return nil, settleError(err)
		}
		return nil, apperror.NewBadRequestError(err.Error())
	}

	check, err := s.GetCheck(ctx, checkID)
	if err != nil {
		return nil, err
	}

	number, err := s.checkRepo.NextSubCheckNumber(ctx, check.ID)
	if err != nil {
		return nil, err
	}
	sc.CheckID = check.ID
	sc.Number = number

	out, err := settlement.Reconcile(sc, cfg)
	if err != nil {
		return nil, settleError(err)
	}
	if err := s.checkRepo.CreateSubCheck(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}
