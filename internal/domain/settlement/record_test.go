package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	"github.com/viewtouch/settle-api/internal/domain/enum"
)

func TestRecordRoundTrip(t *testing.T) {
	burger := item("Burger", enum.SalesCategoryFood, 1200)
	burger.Modifiers = []entity.Order{item("Cheese", enum.SalesCategoryFood, 100)}
	discount := pay(enum.TenderDiscount, 1000)
	discount.IsPercent = true
	sc := subCheck([]entity.Order{burger}, discount, pay(enum.TenderCash, 2000))
	sc.NewQSTMethod = true
	sc.TaxExempt = "EX-1"

	reconciled, err := Reconcile(sc, untaxedConfig())
	require.NoError(t, err)
	data, err := EncodeRecord(reconciled)
	require.NoError(t, err)

	decoded, err := DecodeRecord(data)
	require.NoError(t, err)

	assert.NotEqual(t, sc.ID, decoded.ID)
	assert.True(t, decoded.NewQSTMethod)
	assert.Equal(t, "EX-1", decoded.TaxExempt)
	require.Len(t, decoded.Orders, 1)
	require.Len(t, decoded.Orders[0].Modifiers, 1)
	assert.Equal(t, decoded.Orders[0].ID, *decoded.Orders[0].Modifiers[0].ParentID)
	assert.Len(t, decoded.Payments, 2, "synthetic change is not recorded")
	assert.Equal(t, int64(130), decoded.PaymentsOf(enum.TenderDiscount)[0].Value)
	assert.Equal(t, int64(2000), decoded.PaymentsOf(enum.TenderCash)[0].Value)

	replayed, err := Reconcile(decoded, untaxedConfig())
	require.NoError(t, err)
	assert.Equal(t, reconciled.TotalCost, replayed.TotalCost)
	assert.Equal(t, reconciled.Balance, replayed.Balance)
}

func TestRecordKeepsOpenTab(t *testing.T) {
	tab := pay(enum.TenderCash, 400)
	tab.OpenTab = true
	sc := subCheck([]entity.Order{item("Beer", enum.SalesCategoryAlcohol, 1000)}, tab)

	reconciled, err := Reconcile(sc, untaxedConfig())
	require.NoError(t, err)
	require.Equal(t, int64(400), reconciled.OpenTabRemainder)

	data, err := EncodeRecord(reconciled)
	require.NoError(t, err)
	decoded, err := DecodeRecord(data)
	require.NoError(t, err)

	assert.Equal(t, int64(400), decoded.OpenTabRemainder)
	require.Len(t, decoded.Payments, 1)
	assert.Equal(t, int64(400), decoded.Payments[0].Value)
	assert.True(t, decoded.Payments[0].OpenTab)
}

func TestDecodeRecordVersions(t *testing.T) {
	_, err := DecodeRecord([]byte(`{"version":3,"orders":[],"payments":[]}`))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
	var ve *VersionError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 3, ve.Version)

	_, err = DecodeRecord([]byte(`{"orders":[]}`))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	old, err := DecodeRecord([]byte(`{"version":1,"new_qst_method":true,"orders":[{"name":"Soup","unit_cost":500,"count":1}],"payments":[]}`))
	require.NoError(t, err)
	assert.False(t, old.NewQSTMethod)
	assert.Equal(t, entity.CurrentRecordVersion, old.RecordVersion)

	_, err = DecodeRecord([]byte(`not json`))
	assert.Error(t, err)
}
