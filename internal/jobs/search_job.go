package jobs

import (
	"context"
	"fmt"

	"featureselect/internal/data"
	"featureselect/internal/search"
)

// SearchRun returns a RunFunc that runs strategy over ds, logging every
// committed step and tracking progress by evaluated candidates.
func SearchRun(strategy search.Strategy, ds *data.Dataset, totalFeatures int, opts ...search.Option) RunFunc {
	return func(ctx context.Context, job *Job) (*search.Result, error) {
		expected := search.ExpectedEvaluations(strategy, totalFeatures)
		evaluated := 0

		progress := func(e search.Event) {
			switch e.Kind {
			case search.EventEvaluated:
				evaluated++
				if expected > 0 {
					job.SetProgress(float64(evaluated) / float64(expected))
				}
			case search.EventCommitted:
				job.AddLog(fmt.Sprintf("step %d: %s feature %d -> %s (%.1f%%)",
					e.Step.Number, e.Step.Action, e.Step.Feature, e.Subset, e.Accuracy))
			case search.EventNoImprovement:
				job.AddLog("no further improvements possible")
			}
		}

		job.AddLog(fmt.Sprintf("starting %s over %d features", strategy.Title(), totalFeatures))
		all := append([]search.Option{search.WithObserver(progress)}, opts...)
		result, err := search.Run(ctx, strategy, ds, totalFeatures, all...)
		if err != nil {
			return nil, err
		}
		job.AddLog(fmt.Sprintf("finished: %s at %.1f%%", result.Selected, result.Accuracy))
		return result, nil
	}
}
