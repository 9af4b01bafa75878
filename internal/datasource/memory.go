package datasource

import "sync"

// MemorySlot keeps a slot in memory. It is used for --store memory and tests.
type MemorySlot struct {
	mu      sync.Mutex
	data    []byte
	present bool
	// FailWrites makes every Write return this error when set.
	FailWrites error
}

// NewMemorySlot returns an empty slot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

// NewMemorySlotWith returns a slot pre-populated with raw.
func NewMemorySlotWith(raw string) *MemorySlot {
	return &MemorySlot{data: []byte(raw), present: true}
}

func (s *MemorySlot) Read() ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.present {
		return nil, false, nil
	}
	return append([]byte(nil), s.data...), true, nil
}

func (s *MemorySlot) Write(raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.data = append([]byte(nil), raw...)
	s.present = true
	return nil
}

// Raw returns the stored value as a string.
func (s *MemorySlot) Raw() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.data)
}

func (s *MemorySlot) Path() string { return "" }

func (s *MemorySlot) Close() error { return nil }
