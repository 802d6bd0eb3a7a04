package service

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	"github.com/viewtouch/settle-api/internal/domain/enum"
	"github.com/viewtouch/settle-api/internal/domain/repository"
	"github.com/viewtouch/settle-api/pkg/apperror"
	"github.com/viewtouch/settle-api/pkg/printer"
)

// PrinterService composes guest receipts from reconciled subchecks and
// sends them to the receipt printer.
type PrinterService struct {
	printer      printer.Printer
	checks       *CheckService
	employeeRepo repository.EmployeeRepository
	header       entity.ReceiptHeader
	width        int
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	checks *CheckService,
	employeeRepo repository.EmployeeRepository,
	header entity.ReceiptHeader,
	width int,
) *PrinterService {
	return &PrinterService{
		printer:      p,
		checks:       checks,
		employeeRepo: employeeRepo,
		header:       header,
		width:        width,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Ready      bool   `json:"ready"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// GetStatus returns printer readiness.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printer.Kind() != printer.KindNone,
		Ready:      s.printer.Ready(),
		Type:       s.printer.Kind(),
		Width:      s.width,
	}
}

// TestPrint sends a test page to the printer.
// Returns the receipt so the handler can show it when no printer is attached.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header:   s.header,
		CheckNo:  "TEST",
		SubCheck: 1,
		Date:     time.Now().Format("2006-01-02 15:04"),
		Items: []entity.ReceiptLine{
			{Label: "Test Item", Count: 1, Amount: 1000},
		},
		Subtotal: 1000,
		Total:    1000,
		Balance:  1000,
	}

	if err := s.printer.Print(ctx, FormatReceipt(receipt, s.width)); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}

// PrintSubCheck prints the guest receipt for a subcheck.
func (s *PrinterService) PrintSubCheck(ctx context.Context, subCheckID uuid.UUID) (*entity.Receipt, error) {
	sc, err := s.checks.GetSubCheck(ctx, subCheckID)
	if err != nil {
		return nil, err
	}
	check, err := s.checks.GetCheck(ctx, sc.CheckID)
	if err != nil {
		return nil, err
	}

	server := ""
	employee, err := s.employeeRepo.GetByID(ctx, check.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee != nil {
		server = employee.FullName()
	}

	receipt := BuildReceipt(s.header, check, sc, server)
	if err := s.printer.Print(ctx, FormatReceipt(receipt, s.width)); err != nil {
		log.Printf("Printer error (subcheck %s): %v", subCheckID, err)
		return receipt, apperror.NewAppError(http.StatusServiceUnavailable, fmt.Sprintf("failed to print receipt: %v", err))
	}
	return receipt, nil
}

// BuildReceipt lays out the reconciled totals of a subcheck.
func BuildReceipt(header entity.ReceiptHeader, check *entity.Check, sc *entity.SubCheck, server string) *entity.Receipt {
	r := &entity.Receipt{
		Header:     header,
		CheckNo:    check.CheckNo,
		SubCheck:   sc.Number,
		TableLabel: check.TableLabel,
		Server:     server,
		Date:       sc.UpdatedAt.Format("2006-01-02 15:04"),
		Items:      []entity.ReceiptLine{},
		Taxes:      []entity.ReceiptLine{},
		Payments:   []entity.ReceiptLine{},
		Subtotal:   sc.Sales.Sum(),
		TaxExempt:  sc.IsTaxExempt(),
		Total:      sc.TotalCost + sc.DeliveryCharge,
		Balance:    sc.Balance,
	}

	for _, o := range sc.Orders {
		if o.IsVoided() {
			continue
		}
		count := o.Count
		if o.WeightPriced {
			count = 0
		}
		r.Items = append(r.Items, entity.ReceiptLine{Label: o.Name, Count: count, Amount: o.TotalCost})
		if o.TotalComp > 0 {
			r.Items = append(r.Items, entity.ReceiptLine{Label: "  Comp", Amount: -o.TotalComp})
		}
	}

	for _, j := range enum.Jurisdictions {
		if amt := sc.Tax.Get(j); amt != 0 {
			r.Taxes = append(r.Taxes, entity.ReceiptLine{Label: j.String() + " Tax", Amount: amt})
		}
	}

	if sc.DeliveryCharge > 0 {
		r.Payments = append(r.Payments, entity.ReceiptLine{Label: "Delivery", Amount: sc.DeliveryCharge})
	}
	for _, p := range sc.Payments {
		if p.Value == 0 {
			continue
		}
		r.Payments = append(r.Payments, entity.ReceiptLine{Label: p.Tender.String(), Amount: p.Value})
	}
	return r
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewReceipt(width)

	// Header
	doc.Align(printer.Center).
		Bold(true).
		Large(true).
		Line(r.Header.StoreName).
		Large(false).
		Bold(false)
	if r.Header.Address != "" {
		doc.Line(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Line(r.Header.Phone)
	}

	doc.Align(printer.Left).Rule('-')
	doc.Row("Check:", fmt.Sprintf("%s/%d", r.CheckNo, r.SubCheck)).
		Row("Date:", r.Date)
	if r.TableLabel != "" {
		doc.Row("Table:", r.TableLabel)
	}
	if r.Server != "" {
		doc.Row("Server:", r.Server)
	}
	doc.Rule('-')

	for _, item := range r.Items {
		label := item.Label
		if item.Count > 1 {
			label = fmt.Sprintf("%d %s", item.Count, item.Label)
		}
		doc.Row(label, printer.Money(item.Amount))
	}
	doc.Rule('-')

	doc.Row("Subtotal:", printer.Money(r.Subtotal))
	for _, t := range r.Taxes {
		amount := printer.Money(t.Amount)
		if r.TaxExempt {
			amount = "(" + amount + ")"
		}
		doc.Row(t.Label+":", amount)
	}
	if r.TaxExempt {
		doc.Line("Tax exempt")
	}
	doc.Bold(true).
		Row("TOTAL:", printer.Money(r.Total)).
		Bold(false)

	for _, p := range r.Payments {
		doc.Row(p.Label+":", printer.Money(p.Amount))
	}
	if r.Balance != 0 {
		doc.Bold(true).Row("BALANCE DUE:", printer.Money(r.Balance)).Bold(false)
	}

	doc.Rule('-').
		Align(printer.Center).
		Line("Thank you").
		Cut()
	return doc.Bytes()
}
