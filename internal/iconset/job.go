package iconset

import "appiconset/internal/resample"

// State is a busy/idle transition of a background run. Report is set on the
// idle transition only.
type State struct {
	Busy   bool
	Report *Report
}

// Message is the text a caller shows for this state.
func (s State) Message() string {
	if s.Busy {
		return "Generating..."
	}
	if s.Report == nil {
		return ""
	}
	return s.Report.Message()
}

// Start runs the export on a new goroutine. The returned channel yields
// exactly two states, Busy then idle with the report, and is then closed.
// The busy state is already queued when Start returns. Runs cannot be
// cancelled.
func (e *Exporter) Start(src resample.Source, destDir string) <-chan State {
	states := make(chan State, 2)
	states <- State{Busy: true}

	go func() {
		defer close(states)
		states <- State{Report: e.Run(src, destDir)}
	}()
	return states
}

// StartOn is Start for callers that must handle state changes on their own
// thread: both transitions are passed to dispatch, which is expected to run
// the callback there (a UI main-thread hop). A nil dispatch calls handle
// directly. The busy transition is dispatched before the run begins.
func (e *Exporter) StartOn(dispatch func(func()), src resample.Source, destDir string, handle func(State)) {
	if dispatch == nil {
		dispatch = func(f func()) { f() }
	}

	dispatch(func() { handle(State{Busy: true}) })
	go func() {
		report := e.Run(src, destDir)
		dispatch(func() { handle(State{Report: report}) })
	}()
}
