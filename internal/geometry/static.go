package geometry

import "sync"

// Static is a Provider backed by fixed measurements. Hosts that lay out
// panels themselves (and tests) set measurements explicitly.
type Static struct {
	mu       sync.RWMutex
	panels   map[string]Measurement
	fallback Measurement
}

// NewStatic returns a Static provider that answers fallback for unknown panels.
func NewStatic(fallback Measurement) *Static {
	return &Static{
		panels:   make(map[string]Measurement),
		fallback: fallback,
	}
}

// Set records the measurement for a panel.
func (s *Static) Set(panelID string, m Measurement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panels[panelID] = m
}

// Update mutates the stored measurement for a panel in place.
func (s *Static) Update(panelID string, fn func(*Measurement)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.panels[panelID]
	if !ok {
		m = s.fallback
	}
	fn(&m)
	s.panels[panelID] = m
}

// Measure implements Provider. The container is ignored; a Static provider
// already stores measurements relative to whatever context the host chose.
func (s *Static) Measure(panelID, _ string) Measurement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.panels[panelID]; ok {
		return m
	}
	return s.fallback
}
