package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/viewtouch/settle-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Order is one ordered item or modifier on a subcheck. Orders are stored flat
// (modifiers point at their parent through ParentID) and assembled into a tree
// by the repository; Modifiers is owned by the parent.
type Order struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	SubCheckID uuid.UUID  `gorm:"type:uuid;not null;index" json:"sub_check_id"`
	ParentID   *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Position   int        `gorm:"not null;default:0" json:"position"`

	Name       string             `gorm:"size:255;not null" json:"name"`
	Family     string             `gorm:"size:100" json:"family"`
	Category   enum.SalesCategory `gorm:"default:0" json:"category"`
	SalesGroup enum.SalesGroup    `gorm:"default:0" json:"sales_group"`

	UnitCost     int64 `gorm:"not null;default:0" json:"unit_cost"` // cents
	Count        int64 `gorm:"not null;default:1" json:"count"`     // hundredths of a unit when WeightPriced
	WeightPriced bool  `gorm:"default:false" json:"weight_priced"`

	// Sales restrictions
	NoComp             bool `gorm:"default:false" json:"no_comp"`
	NoEmployeeDiscount bool `gorm:"default:false" json:"no_employee_discount"`
	NoDiscount         bool `gorm:"default:false" json:"no_discount"`
	Untaxed            bool `gorm:"default:false" json:"untaxed"`

	Comped      bool             `gorm:"default:false" json:"comped"`
	Reduced     bool             `gorm:"default:false" json:"reduced"`
	ReducedCost int64            `gorm:"default:0" json:"reduced_cost"`
	Qualifier   enum.Qualifier   `gorm:"default:0" json:"qualifier"`
	Status      enum.OrderStatus `gorm:"default:0" json:"status"`

	// Cached by the order ledger on every settlement pass
	Cost      int64 `gorm:"default:0" json:"cost"`
	TotalCost int64 `gorm:"default:0" json:"total_cost"`
	TotalComp int64 `gorm:"default:0" json:"total_comp"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Modifiers []Order `gorm:"-" json:"modifiers,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// IsVoided reports whether the order was voided and no longer counts
func (o *Order) IsVoided() bool {
	return o.Status == enum.OrderStatusVoided
}

// TaxCategory is the category the order's revenue is taxed under; untaxed
// items are reported in the untaxed bucket whatever their menu category
func (o *Order) TaxCategory() enum.SalesCategory {
	if o.Untaxed {
		return enum.SalesCategoryUntaxed
	}
	return o.Category
}

// Clone returns a deep copy of the order and its modifiers
func (o Order) Clone() Order {
	c := o
	if o.ParentID != nil {
		id := *o.ParentID
		c.ParentID = &id
	}
	if o.Modifiers != nil {
		c.Modifiers = make([]Order, len(o.Modifiers))
		for i := range o.Modifiers {
			c.Modifiers[i] = o.Modifiers[i].Clone()
		}
	}
	return c
}

// Find returns the order or modifier with the given id, searching depth first
func (o *Order) Find(id uuid.UUID) *Order {
	if o.ID == id {
		return o
	}
	for i := range o.Modifiers {
		if found := o.Modifiers[i].Find(id); found != nil {
			return found
		}
	}
	return nil
}

// Flatten returns the order followed by all of its modifiers, with ParentID
// and SubCheckID filled in for storage
func (o Order) Flatten(subCheckID uuid.UUID, parentID *uuid.UUID) []Order {
	self := o
	self.SubCheckID = subCheckID
	self.ParentID = parentID
	self.Modifiers = nil
	out := []Order{self}
	for i, m := range o.Modifiers {
		m.Position = i
		out = append(out, m.Flatten(subCheckID, &self.ID)...)
	}
	return out
}

// BuildOrderTree assembles flat rows into top-level orders with nested
// modifiers, preserving row order within each level
func BuildOrderTree(rows []Order) []Order {
	children := make(map[uuid.UUID][]Order)
	var roots []Order
	for _, row := range rows {
		if row.ParentID == nil {
			roots = append(roots, row)
			continue
		}
		children[*row.ParentID] = append(children[*row.ParentID], row)
	}

	var attach func(o *Order)
	attach = func(o *Order) {
		kids := children[o.ID]
		if len(kids) == 0 {
			return
		}
		o.Modifiers = make([]Order, len(kids))
		copy(o.Modifiers, kids)
		for i := range o.Modifiers {
			attach(&o.Modifiers[i])
		}
	}
	for i := range roots {
		attach(&roots[i])
	}
	return roots
}
