package pdf

import (
	"context"
	"fmt"
	"sync"

	"github.com/flanksource/commons/logger"
)

// Manager holds the detected converters and drives the fallback chain.
type Manager struct {
	converters []Converter
	preferred  string
	mu         sync.RWMutex
}

// NewManager creates a manager with every available converter registered in
// priority order
func NewManager() *Manager {
	m := &Manager{
		converters: []Converter{},
	}

	m.autoDetectConverters()

	return m
}

// newManagerWith builds a manager over a fixed chain, for tests.
func newManagerWith(converters ...Converter) *Manager {
	return &Manager{converters: converters}
}

// autoDetectConverters discovers available converters on the system
func (m *Manager) autoDetectConverters() {
	// Try converters in order of preference: playwright -> chromium -> weasyprint
	candidates := []Converter{
		NewPlaywrightConverter(),
		NewChromiumConverter(),
		NewWeasyprintConverter(),
	}

	for _, converter := range candidates {
		if converter.IsAvailable() {
			m.converters = append(m.converters, converter)
		}
	}
}

// SetPreferred sets the converter tried first, by name
func (m *Manager) SetPreferred(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, converter := range m.converters {
		if converter.Name() == name {
			m.preferred = name
			return nil
		}
	}

	return fmt.Errorf("converter '%s' not available", name)
}

// AvailableConverters returns the detected converter names in chain order
func (m *Manager) AvailableConverters() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, len(m.converters))
	for i, converter := range m.converters {
		names[i] = converter.Name()
	}
	return names
}

// Convert renders htmlPath to pdfPath, trying each converter in chain order
// until one succeeds, and returns the name of the converter that produced
// the document. It returns ErrNoConverters when nothing is installed and a
// wrapped last error when every attempt fails.
func (m *Manager) Convert(ctx context.Context, htmlPath, pdfPath string, options *Options) (string, error) {
	m.mu.RLock()
	converters := make([]Converter, len(m.converters))
	copy(converters, m.converters)
	preferred := m.preferred
	m.mu.RUnlock()

	if len(converters) == 0 {
		return "", ErrNoConverters
	}

	if options == nil {
		options = DefaultOptions()
	}

	if preferred != "" {
		for i, converter := range converters {
			if converter.Name() == preferred {
				rest := append(append([]Converter{}, converters[:i]...), converters[i+1:]...)
				converters = append([]Converter{converter}, rest...)
				break
			}
		}
	}

	var lastErr error

	for _, converter := range converters {
		logger.Debugf("rendering %s with %s", pdfPath, converter.Name())
		err := converter.Convert(ctx, htmlPath, pdfPath, options)
		if err == nil {
			return converter.Name(), nil
		}

		logger.Warnf("%s converter failed: %v", converter.Name(), err)
		lastErr = fmt.Errorf("%s: %w", converter.Name(), err)
	}

	return "", fmt.Errorf("all converters failed, last error: %w", lastErr)
}

// Close closes any converters that hold resources (like playwright)
func (m *Manager) Close() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, converter := range m.converters {
		if closer, ok := converter.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				return err
			}
		}
	}

	return nil
}
