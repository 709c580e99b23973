package rules

import "log/slog"

// Event records one predicate or rule application for auditing.
type Event struct {
	Stage   string // "exclusions" or "custom_rules"
	Name    string // exclusion reason or rule name
	Matched int
}

// Audit collects stage events and mirrors each one to a logger. A nil *Audit
// is valid and silently discards everything, which keeps the stage functions
// usable without any audit plumbing.
type Audit struct {
	Logger *slog.Logger
	Events []Event
}

func (a *Audit) record(ev Event) {
	if a == nil {
		return
	}
	a.Events = append(a.Events, ev)
	if a.Logger != nil {
		a.Logger.Info("applied", "stage", ev.Stage, "name", ev.Name, "matched", ev.Matched)
	}
}
