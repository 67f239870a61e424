package health

import (
	"context"
	"sync"
	"time"
)

// CheckFunc probes one dependency. A nil error means healthy.
type CheckFunc func(ctx context.Context) error

// Component is a named dependency probe. Critical components take the
// whole system to critical when they fail; the rest only degrade it.
// The rewrite path keeps working without the model backend, so the
// transformer registers as non-critical.
type Component struct {
	Name     string
	Check    CheckFunc
	Critical bool
}

// Monitor aggregates health status from registered components.
type Monitor struct {
	components []Component
	lastCheck  time.Time
	lastReport *Report
	mu         sync.Mutex
}

// NewMonitor creates a new health monitor.
func NewMonitor(components ...Component) *Monitor {
	return &Monitor{components: components}
}

// Register adds a component probe. Not safe to call after serving starts.
func (m *Monitor) Register(c Component) {
	m.components = append(m.components, c)
}

// CheckHealth probes all components. Results are cached for 10 seconds
// to keep health endpoints from hammering the dependencies.
func (m *Monitor) CheckHealth(ctx context.Context) *Report {
	m.mu.Lock()
	defer m.mu.Unlock()

	if time.Since(m.lastCheck) < 10*time.Second && m.lastReport != nil {
		return m.lastReport
	}

	report := &Report{
		SystemStatus: StatusHealthy,
		Components:   make(map[string]ComponentHealth),
	}

	for _, c := range m.components {
		ch := ComponentHealth{Name: c.Name, Status: StatusHealthy}

		checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := c.Check(checkCtx)
		cancel()

		if err != nil {
			ch.Error = err.Error()
			if c.Critical {
				ch.Status = StatusCritical
			} else {
				ch.Status = StatusDegraded
			}
		}
		report.Components[c.Name] = ch

		// Worst case wins
		if ch.Status == StatusCritical {
			report.SystemStatus = StatusCritical
		} else if ch.Status == StatusDegraded && report.SystemStatus == StatusHealthy {
			report.SystemStatus = StatusDegraded
		}
	}

	m.lastCheck = time.Now()
	m.lastReport = report
	return report
}
