package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	"github.com/viewtouch/settle-api/internal/domain/enum"
)

func TestFigureCostModifiersUseParentCount(t *testing.T) {
	burger := item("Burger", enum.SalesCategoryFood, 900)
	burger.Count = 2
	cheese := item("Cheese", enum.SalesCategoryFood, 75)
	bacon := item("Bacon", enum.SalesCategoryFood, 150)
	burger.Modifiers = []entity.Order{cheese, bacon}

	FigureCost(&burger, 1, false)

	assert.Equal(t, int64(1800), burger.Cost)
	assert.Equal(t, int64(150), burger.Modifiers[0].TotalCost)
	assert.Equal(t, int64(300), burger.Modifiers[1].TotalCost)
	assert.Equal(t, int64(2250), burger.TotalCost)
	assert.Equal(t, int64(0), burger.TotalComp)
}

func TestFigureCost(t *testing.T) {
	tests := []struct {
		name         string
		order        func() entity.Order
		employeeMeal bool
		cost         int64
		total        int64
		comp         int64
	}{
		{
			name: "weight priced",
			order: func() entity.Order {
				o := item("Shrimp", enum.SalesCategoryFood, 1800)
				o.WeightPriced = true
				o.Count = 150
				return o
			},
			cost: 2700, total: 2700,
		},
		{
			name: "reduced price",
			order: func() entity.Order {
				o := item("Wings", enum.SalesCategoryFood, 1000)
				o.Reduced = true
				o.ReducedCost = 500
				return o
			},
			cost: 500, total: 500,
		},
		{
			name: "employee meal uses reduced cost",
			order: func() entity.Order {
				o := item("Wings", enum.SalesCategoryFood, 1000)
				o.ReducedCost = 600
				return o
			},
			employeeMeal: true,
			cost:         600, total: 600,
		},
		{
			name: "employee meal without reduced cost",
			order: func() entity.Order {
				return item("Salad", enum.SalesCategoryFood, 700)
			},
			employeeMeal: true,
			cost:         700, total: 700,
		},
		{
			name: "comped order comps its modifiers",
			order: func() entity.Order {
				o := item("Steak", enum.SalesCategoryFood, 2500)
				o.Comped = true
				o.Modifiers = []entity.Order{item("Mushrooms", enum.SalesCategoryFood, 300)}
				return o
			},
			cost: 2500, total: 2800, comp: 2800,
		},
		{
			name: "comped modifier",
			order: func() entity.Order {
				o := item("Steak", enum.SalesCategoryFood, 2500)
				m := item("Mushrooms", enum.SalesCategoryFood, 300)
				m.Comped = true
				o.Modifiers = []entity.Order{m}
				return o
			},
			cost: 2500, total: 2800, comp: 300,
		},
		{
			name: "voided",
			order: func() entity.Order {
				o := item("Soup", enum.SalesCategoryFood, 500)
				o.Status = enum.OrderStatusVoided
				return o
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := tt.order()
			FigureCost(&o, 1, tt.employeeMeal)
			assert.Equal(t, tt.cost, o.Cost)
			assert.Equal(t, tt.total, o.TotalCost)
			assert.Equal(t, tt.comp, o.TotalComp)
		})
	}
}

func TestFigureCostNotWantedKeepsModifierTotals(t *testing.T) {
	onions := item("Onions", enum.SalesCategoryFood, 50)
	onions.Qualifier = enum.QualifierNo
	onions.Modifiers = []entity.Order{item("Extra Sauce", enum.SalesCategoryFood, 25)}

	FigureCost(&onions, 1, false)

	assert.Equal(t, int64(0), onions.Cost)
	assert.Equal(t, int64(0), onions.TotalCost)
	assert.Equal(t, int64(25), onions.Modifiers[0].TotalCost)
}

func TestAggregateBeverageOnly(t *testing.T) {
	beer := item("Beer", enum.SalesCategoryAlcohol, 600)
	beer.SalesGroup = enum.SalesGroupBeverage
	soda := item("Soda", enum.SalesCategoryFood, 250)
	soda.SalesGroup = enum.SalesGroupBeverage

	totals := aggregate([]entity.Order{beer, soda}, false)
	assert.True(t, totals.beverageOnly)
	assert.Equal(t, int64(850), totals.raw)
	assert.Equal(t, int64(600), totals.sales.Alcohol)

	fries := item("Fries", enum.SalesCategoryFood, 400)
	fries.SalesGroup = enum.SalesGroupFood
	totals = aggregate([]entity.Order{beer, soda, fries}, false)
	assert.False(t, totals.beverageOnly)
	assert.False(t, aggregate(nil, false).beverageOnly)
}

func TestAggregateUntaxedItems(t *testing.T) {
	gift := item("Gift Card", enum.SalesCategoryMerchandise, 2500)
	gift.Untaxed = true
	totals := aggregate([]entity.Order{gift}, false)
	assert.Equal(t, int64(2500), totals.sales.Untaxed)
	assert.Equal(t, int64(0), totals.sales.Merchandise)
}
