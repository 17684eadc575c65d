package search

// EventKind identifies a progress event.
type EventKind int

const (
	// EventBaseline reports a starting subset scored before the search.
	EventBaseline EventKind = iota
	// EventStarted precedes the first candidate evaluation.
	EventStarted
	// EventEvaluated reports one traced candidate.
	EventEvaluated
	// EventCommitted reports the change chosen by a step.
	EventCommitted
	// EventNoImprovement reports a step that found no candidate above zero.
	EventNoImprovement
	// EventFinished reports the final selection.
	EventFinished
)

// Event is a single progress notification.
type Event struct {
	Kind     EventKind
	Strategy Strategy
	Subset   Subset
	Accuracy float64
	// Step is set for EventCommitted.
	Step *Step
}
