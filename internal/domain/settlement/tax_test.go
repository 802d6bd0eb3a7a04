package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viewtouch/settle-api/internal/domain/entity"
)

func foodBase(food, alcohol int64) TaxBase {
	return TaxBase{CategoryAmounts: entity.CategoryAmounts{Food: food, Alcohol: alcohol}}
}

func TestComputeTaxesFoodRate(t *testing.T) {
	cfg := &Config{Rates: Rates{Food: rate("0.0825")}}
	taxes := ComputeTaxes(foodBase(10000, 0), cfg)
	assert.Equal(t, int64(825), taxes.Food)
	assert.Equal(t, int64(825), taxes.Total())
}

func TestComputeTaxesRoundsHalfAwayFromZero(t *testing.T) {
	cfg := &Config{Rates: Rates{Food: rate("0.05")}}
	assert.Equal(t, int64(1), ComputeTaxes(foodBase(10, 0), cfg).Food)
	assert.Equal(t, int64(0), ComputeTaxes(foodBase(9, 0), cfg).Food)
}

func TestComputeTaxesQSTMethodsDiverge(t *testing.T) {
	cfg := &Config{Rates: Rates{GST: rate("0.05"), QST: rate("0.09975")}}

	base := foodBase(6000, 4000)
	base.NewQSTMethod = true
	newer := ComputeTaxes(base, cfg)
	assert.Equal(t, int64(500), newer.GST)
	assert.Equal(t, int64(1047), newer.QST)

	base.NewQSTMethod = false
	older := ComputeTaxes(base, cfg)
	assert.Equal(t, int64(500), older.GST)
	assert.Equal(t, int64(998), older.QST)
}

func TestComputeTaxesPSTBase(t *testing.T) {
	tests := []struct {
		name         string
		cfg          *Config
		beverageOnly bool
		want         int64
	}{
		{
			name: "alcohol folded in when untaxed separately",
			cfg:  &Config{Rates: Rates{PST: rate("0.08")}},
			want: 800,
		},
		{
			name: "food only when alcohol has its own rate",
			cfg:  &Config{Rates: Rates{PST: rate("0.08"), Alcohol: rate("0.10")}},
			want: 480,
		},
		{
			name: "small check exempt",
			cfg:  &Config{Rates: Rates{PST: rate("0.08")}, PSTExemptUnder: 10000},
			want: 0,
		},
		{
			name:         "beverage only never exempt",
			cfg:          &Config{Rates: Rates{PST: rate("0.08")}, PSTExemptUnder: 10000},
			beverageOnly: true,
			want:         800,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := foodBase(6000, 4000)
			base.BeverageOnly = tt.beverageOnly
			assert.Equal(t, tt.want, ComputeTaxes(base, tt.cfg).PST)
		})
	}
}

func TestComputeTaxesTakeoutFoodExempt(t *testing.T) {
	cfg := &Config{
		Rates:             Rates{Food: rate("0.07"), GST: rate("0.05"), Alcohol: rate("0.10")},
		TakeoutFoodExempt: true,
	}
	base := foodBase(2000, 1000)
	base.Takeout = true
	taxes := ComputeTaxes(base, cfg)
	assert.Equal(t, int64(0), taxes.Food)
	assert.Equal(t, int64(100), taxes.Alcohol)
	assert.Equal(t, int64(50), taxes.GST)

	base.Takeout = false
	assert.Equal(t, int64(140), ComputeTaxes(base, cfg).Food)
}

func TestComputeTaxesRoomMerchandiseVAT(t *testing.T) {
	cfg := &Config{Rates: Rates{Room: rate("0.12"), Merchandise: rate("0.06"), VAT: rate("0.20")}}
	base := TaxBase{CategoryAmounts: entity.CategoryAmounts{
		Food: 1000, Room: 10000, Merchandise: 500, Untaxed: 700,
	}}
	taxes := ComputeTaxes(base, cfg)
	assert.Equal(t, int64(1200), taxes.Room)
	assert.Equal(t, int64(30), taxes.Merchandise)
	assert.Equal(t, int64(2300), taxes.VAT)
	assert.Equal(t, int64(3530), taxes.Total())
}

func TestComputeTaxesHSTIndependent(t *testing.T) {
	cfg := &Config{Rates: Rates{HST: rate("0.13"), GST: rate("0.05")}}
	taxes := ComputeTaxes(foodBase(1000, 0), cfg)
	assert.Equal(t, int64(130), taxes.HST)
	assert.Equal(t, int64(50), taxes.GST)
}

func TestComputeTaxesIgnoresNegativeBase(t *testing.T) {
	cfg := &Config{Rates: Rates{Food: rate("0.10")}}
	assert.Equal(t, int64(0), ComputeTaxes(foodBase(-500, 0), cfg).Food)
}
