package page

import (
	"fmt"
	"sync"

	"geo-pricing-service/internal/domain"
)

// Memory is an in-memory PriceBoard. It backs the JSON preview endpoint and
// the pipeline tests.
type Memory struct {
	mu       sync.Mutex
	elems    []domain.PriceElement
	displays []domain.PriceDisplay
	writes   int
}

// NewMemory indexes elems in order; each starts out showing its USD amount
// exactly as authored.
func NewMemory(elems ...domain.PriceElement) *Memory {
	m := &Memory{
		elems:    make([]domain.PriceElement, len(elems)),
		displays: make([]domain.PriceDisplay, len(elems)),
	}
	for i, e := range elems {
		e.Index = i
		m.elems[i] = e
		m.displays[i] = domain.PriceDisplay{Text: domain.USDFormat.Format(e.USD), Period: e.Period}
	}
	return m
}

func (m *Memory) Prices() []domain.PriceElement {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.PriceElement(nil), m.elems...)
}

func (m *Memory) SetDisplay(index int, display domain.PriceDisplay) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if index < 0 || index >= len(m.elems) {
		return fmt.Errorf("set display: index %d out of range [0,%d)", index, len(m.elems))
	}
	m.displays[index] = display
	m.writes++
	return nil
}

// Displays returns the current content of every element.
func (m *Memory) Displays() []domain.PriceDisplay {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.PriceDisplay(nil), m.displays...)
}

// Writes counts SetDisplay calls since construction.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
