package printer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "$0.00", Money(0))
	assert.Equal(t, "$10.03", Money(1003))
	assert.Equal(t, "-$0.05", Money(-5))
}

func TestReceiptRow(t *testing.T) {
	r := NewReceipt(20).Row("Food tax", "$8.25")
	assert.True(t, bytes.Contains(r.Bytes(), []byte("Food tax       $8.25\n")))

	narrow := NewReceipt(10).Row("A very long label", "$1.00")
	assert.True(t, bytes.Contains(narrow.Bytes(), []byte("A very long label $1.00")))
}

func TestNew(t *testing.T) {
	p, err := New("", "", "")
	require.NoError(t, err)
	assert.Equal(t, KindNone, p.Kind())

	_, err = New(KindUSB, "", "")
	assert.Error(t, err)
	_, err = New(KindNetwork, "", "")
	assert.Error(t, err)
	_, err = New("serial", "", "")
	assert.Error(t, err)
}

func TestMemoryPrinter(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Print(context.Background(), []byte("job")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, m.Print(ctx, []byte("late")))
	assert.Equal(t, [][]byte{[]byte("job")}, m.Jobs())
}
