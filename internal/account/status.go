package account

import (
	"context"

	"github.com/lucasgio/gam/internal/domain"
	"github.com/lucasgio/gam/internal/logger"
)

type StatusReport struct {
	// Account is nil when there is nothing to report on.
	Account *domain.Account
	Active  bool
	// NoActive is set when no identity is selected.
	NoActive bool
	// Dangling is set when the selected identity is missing from the store.
	Dangling     bool
	DanglingName string

	Probed      bool
	Endpoint    string
	ProbeOutput string
	Outcome     domain.ProbeOutcome
}

// Status reports on name, or on the active identity when name is empty.
// It never modifies the store. A dangling active reference is reported,
// not returned as an error.
func (m *Manager) Status(ctx context.Context, name string, probe bool) (*StatusReport, error) {
	store, err := m.load()
	if err != nil {
		return nil, err
	}

	report := &StatusReport{}
	if name == "" {
		current, ok := store.Current()
		if !ok {
			report.NoActive = true
			return report, nil
		}
		name = current
		if _, exists := store.Get(current); !exists {
			logger.LogWarn("%v: %s", domain.ErrDanglingActiveReference, current)
			report.Dangling = true
			report.DanglingName = current
			return report, nil
		}
	}

	acc, err := m.lookup(store, name)
	if err != nil {
		return nil, err
	}
	report.Account = &acc
	report.Active = store.IsCurrent(acc.Name)

	if probe {
		m.probe(ctx, acc, report)
	}
	return report, nil
}

func (m *Manager) probe(ctx context.Context, acc domain.Account, report *StatusReport) {
	report.Probed = true
	report.Endpoint = m.opts.ProbeUser + "@" + acc.Host
	keyPath := m.KeyPath(acc)

	out, err := m.prober.Probe(ctx, keyPath, report.Endpoint)
	if err != nil {
		logger.LogError("PROBE", report.Endpoint, err)
		report.ProbeOutput = err.Error()
		report.Outcome = domain.ProbeOther
		return
	}
	report.ProbeOutput = out
	report.Outcome = domain.ClassifyProbe(out)
	logger.Log("Probe of %s with %s: %s", report.Endpoint, keyPath, report.Outcome)
}
