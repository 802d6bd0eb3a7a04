package printer

import (
	"context"
	"fmt"
	"net"
	"os"
	"sync"
	"time"
)

// Printer accepts a finished ESC/POS job
type Printer interface {
	Print(ctx context.Context, job []byte) error
	// Ready reports whether the device can currently take a job
	Ready() bool
	Kind() string
}

// Kinds accepted by New
const (
	KindUSB     = "usb"
	KindNetwork = "network"
	KindNone    = "none"
)

// New selects the printer for a configured kind
func New(kind, devicePath, address string) (Printer, error) {
	switch kind {
	case KindUSB:
		if devicePath == "" {
			return nil, fmt.Errorf("printer: device path is required for %s printers", kind)
		}
		return &devicePrinter{path: devicePath}, nil
	case KindNetwork:
		if address == "" {
			return nil, fmt.Errorf("printer: address is required for %s printers", kind)
		}
		return &networkPrinter{address: address, dialTimeout: 5 * time.Second}, nil
	case KindNone, "":
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("printer: unknown kind %q", kind)
}

// devicePrinter writes jobs to a character device such as /dev/usb/lp0
type devicePrinter struct {
	path string
	mu   sync.Mutex
}

func (p *devicePrinter) Print(ctx context.Context, job []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(job); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.path, err)
	}
	return nil
}

func (p *devicePrinter) Ready() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

func (p *devicePrinter) Kind() string { return KindUSB }

// networkPrinter sends each job over a fresh TCP connection (port 9100)
type networkPrinter struct {
	address     string
	dialTimeout time.Duration
}

func (p *networkPrinter) Print(ctx context.Context, job []byte) error {
	dialer := net.Dialer{Timeout: p.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		return fmt.Errorf("printer: dial %s: %w", p.address, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(10 * time.Second)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetWriteDeadline(deadline)

	if _, err := conn.Write(job); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Ready() bool {
	conn, err := net.DialTimeout("tcp", p.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func (p *networkPrinter) Kind() string { return KindNetwork }

// Memory keeps jobs in memory; it stands in when no hardware is configured
type Memory struct {
	mu   sync.Mutex
	jobs [][]byte
}

// NewMemory returns an empty in-memory printer
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Print(ctx context.Context, job []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs = append(m.jobs, append([]byte(nil), job...))
	return nil
}

func (m *Memory) Ready() bool { return false }

func (m *Memory) Kind() string { return KindNone }

// Jobs returns copies of every job printed so far
func (m *Memory) Jobs() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.jobs))
	for i, j := range m.jobs {
		out[i] = append([]byte(nil), j...)
	}
	return out
}
