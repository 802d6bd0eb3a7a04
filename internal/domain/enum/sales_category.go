package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SalesCategory is the revenue bucket an ordered item is reported under
type SalesCategory int

const (
	SalesCategoryFood        SalesCategory = 0
	SalesCategoryAlcohol     SalesCategory = 1
	SalesCategoryRoom        SalesCategory = 2
	SalesCategoryMerchandise SalesCategory = 3
	SalesCategoryUntaxed     SalesCategory = 4
)

var salesCategoryNames = []string{"Food", "Alcohol", "Room", "Merchandise", "Untaxed"}

// DiscountOrder is the waterfall priority used when a fixed discount is prorated
var DiscountOrder = []SalesCategory{
	SalesCategoryFood,
	SalesCategoryAlcohol,
	SalesCategoryRoom,
	SalesCategoryMerchandise,
}

func (c SalesCategory) String() string {
	return nameOf(salesCategoryNames, int(c), "Food")
}

// Discountable reports whether blanket discounts may be taken from this category
func (c SalesCategory) Discountable() bool {
	return c != SalesCategoryUntaxed
}

func (c SalesCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *SalesCategory) UnmarshalJSON(data []byte) error {
	i, err := decodeEnum(data, salesCategoryNames)
	if err != nil {
		return err
	}
	*c = SalesCategory(i)
	return nil
}

func (c SalesCategory) Value() (driver.Value, error) {
	return int64(c), nil
}

func (c *SalesCategory) Scan(value interface{}) error {
	*c = SalesCategory(scanEnum(value))
	return nil
}

// SalesGroup is the menu grouping used for beverage-only detection
type SalesGroup int

const (
	SalesGroupOther    SalesGroup = 0
	SalesGroupFood     SalesGroup = 1
	SalesGroupBeverage SalesGroup = 2
)

var salesGroupNames = []string{"Other", "Food", "Beverage"}

func (g SalesGroup) String() string {
	return nameOf(salesGroupNames, int(g), "Other")
}

func (g SalesGroup) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}

func (g *SalesGroup) UnmarshalJSON(data []byte) error {
	i, err := decodeEnum(data, salesGroupNames)
	if err != nil {
		return err
	}
	*g = SalesGroup(i)
	return nil
}

func (g SalesGroup) Value() (driver.Value, error) {
	return int64(g), nil
}

func (g *SalesGroup) Scan(value interface{}) error {
	*g = SalesGroup(scanEnum(value))
	return nil
}
