package printer

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	esc = 0x1B
	gs  = 0x1D
	lf  = 0x0A
)

// Alignment values for Align
const (
	Left   byte = 0
	Center byte = 1
	Right  byte = 2
)

// Receipt builds an ESC/POS job one line at a time. Width is in characters:
// 32 for 58mm paper, 48 for 80mm.
type Receipt struct {
	buf   bytes.Buffer
	width int
}

// NewReceipt starts a job with the printer reset command
func NewReceipt(width int) *Receipt {
	if width <= 0 {
		width = 32
	}
	r := &Receipt{width: width}
	r.buf.Write([]byte{esc, '@'})
	return r
}

// Width is the line width in characters
func (r *Receipt) Width() int {
	return r.width
}

func (r *Receipt) Align(a byte) *Receipt {
	r.buf.Write([]byte{esc, 'a', a})
	return r
}

func (r *Receipt) Bold(on bool) *Receipt {
	var b byte
	if on {
		b = 1
	}
	r.buf.Write([]byte{esc, 'E', b})
	return r
}

// Large toggles double width and height
func (r *Receipt) Large(on bool) *Receipt {
	var size byte
	if on {
		size = 0x11
	}
	r.buf.Write([]byte{gs, '!', size})
	return r
}

func (r *Receipt) Line(s string) *Receipt {
	r.buf.WriteString(s)
	r.buf.WriteByte(lf)
	return r
}

// Row prints left and right text on one line, padded to the width
func (r *Receipt) Row(left, right string) *Receipt {
	gap := r.width - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	return r.Line(left + strings.Repeat(" ", gap) + right)
}

// Rule prints a full-width line of c
func (r *Receipt) Rule(c byte) *Receipt {
	return r.Line(strings.Repeat(string(c), r.width))
}

func (r *Receipt) Feed(n int) *Receipt {
	for i := 0; i < n; i++ {
		r.buf.WriteByte(lf)
	}
	return r
}

// Cut feeds past the tear bar and performs a partial cut
func (r *Receipt) Cut() *Receipt {
	r.Feed(3)
	r.buf.Write([]byte{gs, 'V', 0x01})
	return r
}

// Bytes returns the job so far
func (r *Receipt) Bytes() []byte {
	return r.buf.Bytes()
}

// Money formats cents as a dollar amount
func Money(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
