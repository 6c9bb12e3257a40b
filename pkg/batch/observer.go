package batch

import "github.com/fioriscope/fioriscope/pkg/apps"

// Observer receives batch feedback synchronously from the running batch.
// Implementations must not block for long; the next identifier waits on them.
type Observer interface {
	// OnProgress is called before an identifier is fetched, with the
	// processed count already including it.
	OnProgress(runID string, p apps.Progress)

	// OnResults is called after each identifier with every result so far.
	OnResults(runID string, results []apps.Aggregate)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	Progress func(runID string, p apps.Progress)
	Results  func(runID string, results []apps.Aggregate)
}

// OnProgress implements Observer.
func (o ObserverFuncs) OnProgress(runID string, p apps.Progress) {
	if o.Progress != nil {
		o.Progress(runID, p)
	}
}

// OnResults implements Observer.
func (o ObserverFuncs) OnResults(runID string, results []apps.Aggregate) {
	if o.Results != nil {
		o.Results(runID, results)
	}
}

// Observers fans every callback out to each member in order.
type Observers []Observer

// OnProgress implements Observer.
func (obs Observers) OnProgress(runID string, p apps.Progress) {
	for _, o := range obs {
		if o != nil {
			o.OnProgress(runID, p)
		}
	}
}

// OnResults implements Observer.
func (obs Observers) OnResults(runID string, results []apps.Aggregate) {
	for _, o := range obs {
		if o != nil {
			o.OnResults(runID, results)
		}
	}
}

// nopObserver ignores every callback.
type nopObserver struct{}

func (nopObserver) OnProgress(string, apps.Progress)   {}
func (nopObserver) OnResults(string, []apps.Aggregate) {}
