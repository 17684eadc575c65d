package search

import (
	"fmt"
	"io"
)

// TextReporter renders search events as the classic console trace. Every
// accuracy is printed with one decimal place.
type TextReporter struct {
	w io.Writer
}

func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{w: w}
}

// Observer returns the reporter as a search option callback.
func (r *TextReporter) Observer() Observer {
	return r.Observe
}

func (r *TextReporter) Observe(e Event) {
	switch e.Kind {
	case EventBaseline:
		if len(e.Subset) == 0 {
			fmt.Fprintf(r.w, "Running nearest neighbor with no features (default rate), using \"leave-one-out\" evaluation, I get an accuracy of %.1f%%\n", e.Accuracy)
		} else {
			fmt.Fprintf(r.w, "Using all features and \"leave-one-out\" evaluation, I get an accuracy of %.1f%%\n", e.Accuracy)
		}
	case EventStarted:
		fmt.Fprintln(r.w, "Beginning search.")
	case EventEvaluated:
		fmt.Fprintf(r.w, "Using feature(s) %s accuracy is %.1f%%\n", e.Subset, e.Accuracy)
	case EventCommitted:
		if e.Step != nil && e.Step.Decreased {
			fmt.Fprintln(r.w, "(Warning, Accuracy has decreased!)")
		}
		fmt.Fprintf(r.w, "Feature set %s was best, accuracy is %.1f%%\n", e.Subset, e.Accuracy)
	case EventNoImprovement:
		fmt.Fprintln(r.w, "No further improvements possible.")
	case EventFinished:
		fmt.Fprintf(r.w, "Finished search!! The best feature subset is %s, which has an accuracy of %.1f%%\n", e.Subset, e.Accuracy)
	}
}

// WriteTrace replays a finished result in the same format the reporter
// prints live.
func WriteTrace(w io.Writer, res *Result) {
	r := NewTextReporter(w)
	evaluated := func(e Evaluation) {
		r.Observe(Event{Kind: EventEvaluated, Strategy: res.Strategy, Subset: e.Subset, Accuracy: e.Accuracy})
	}

	for _, b := range res.Baselines {
		r.Observe(Event{Kind: EventBaseline, Strategy: res.Strategy, Subset: b.Subset, Accuracy: b.Accuracy})
	}
	r.Observe(Event{Kind: EventStarted, Strategy: res.Strategy})

	next := 0
	for i := range res.Steps {
		step := res.Steps[i]
		for ; next < step.TraceEnd && next < len(res.Trace); next++ {
			evaluated(res.Trace[next])
		}
		r.Observe(Event{Kind: EventCommitted, Strategy: res.Strategy, Subset: step.Subset, Accuracy: step.Accuracy, Step: &step})
	}
	for ; next < len(res.Trace); next++ {
		evaluated(res.Trace[next])
	}

	// forward selection stops silently
	if res.Stopped && res.Strategy != StrategyForward {
		r.Observe(Event{Kind: EventNoImprovement, Strategy: res.Strategy})
	}
	r.Observe(Event{Kind: EventFinished, Strategy: res.Strategy, Subset: res.Selected, Accuracy: res.Accuracy})
}
