package search

// Evaluation is one scored subset.
type Evaluation struct {
	Subset   Subset
	Accuracy float64
}

// Trace lists every candidate evaluation of a run in evaluation order.
type Trace []Evaluation

// Action is what a committed step did to the selection.
type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
)

// Step is one committed change of the selection.
type Step struct {
	Number    int
	Action    Action
	Feature   int
	Subset    Subset
	Accuracy  float64
	Decreased bool
	// TraceEnd is the length of the trace when the step was committed.
	TraceEnd int
}

// Result is the outcome of one search run.
//
// Selected and Accuracy are the selection the search ended on and the score
// of its last committed step. Best is the most accurate state visited,
// counting the starting selection; ties keep the earliest.
type Result struct {
	Strategy  Strategy
	Baselines []Evaluation
	Trace     Trace
	Steps     []Step
	Selected  Subset
	Accuracy  float64
	Best      Evaluation
	// Stopped is set when a step found no candidate scoring above zero.
	Stopped bool
}

// Evaluations is the number of traced candidate evaluations.
func (r *Result) Evaluations() int {
	return len(r.Trace)
}
