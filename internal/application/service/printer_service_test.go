package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viewtouch/settle-api/internal/domain/enum"
)

func TestPrinterService_PrintSubCheck(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	_, id := openSubCheck(t, f)

	_, err := f.checks.AddOrder(ctx, id, burger())
	require.NoError(t, err)
	_, err = f.checks.AddPayment(ctx, id, &PaymentInput{Tender: enum.TenderCash, Amount: 2000})
	require.NoError(t, err)

	receipt, err := f.receipts.PrintSubCheck(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "7", receipt.TableLabel)
	assert.Equal(t, int64(1100), receipt.Total)
	assert.Zero(t, receipt.Balance)
	require.Len(t, receipt.Items, 1)
	assert.Equal(t, "Burger", receipt.Items[0].Label)
	require.Len(t, receipt.Taxes, 1)
	assert.Equal(t, int64(100), receipt.Taxes[0].Amount)
	require.Len(t, receipt.Payments, 2)
	assert.Equal(t, "Change", receipt.Payments[1].Label)

	jobs := f.printer.Jobs()
	require.Len(t, jobs, 1)
	assert.True(t, bytes.Contains(jobs[0], []byte("Corner Bistro")))
	assert.True(t, bytes.Contains(jobs[0], []byte("$11.00")))
}

func TestPrinterService_Status(t *testing.T) {
	f := newFixture(t, true)

	status := f.receipts.GetStatus()
	assert.False(t, status.Configured)
	assert.False(t, status.Ready)
	assert.Equal(t, "none", status.Type)

	receipt, err := f.receipts.TestPrint(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "TEST", receipt.CheckNo)
	assert.Len(t, f.printer.Jobs(), 1)
}
