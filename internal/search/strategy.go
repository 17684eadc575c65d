package search

import (
	"context"
	"fmt"
	"strings"

	"featureselect/internal/data"
)

// Strategy names a search procedure.
type Strategy string

const (
	StrategyForward       Strategy = "forward"
	StrategyBackward      Strategy = "backward"
	StrategyBidirectional Strategy = "bidirectional"
)

// Strategies lists every strategy in menu order.
var Strategies = []Strategy{StrategyForward, StrategyBackward, StrategyBidirectional}

// Title is the menu label of the strategy.
func (s Strategy) Title() string {
	switch s {
	case StrategyForward:
		return "Forward Selection"
	case StrategyBackward:
		return "Backward Elimination"
	case StrategyBidirectional:
		return "Bidirectional Search"
	default:
		return string(s)
	}
}

// ParseStrategy accepts a strategy name, a common abbreviation or its
// 1-based menu number.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "forward", "fs", "1":
		return StrategyForward, nil
	case "backward", "be", "2":
		return StrategyBackward, nil
	case "bidirectional", "bidi", "bi", "3":
		return StrategyBidirectional, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Run dispatches to the named strategy.
func Run(ctx context.Context, strategy Strategy, ds *data.Dataset, totalFeatures int, opts ...Option) (*Result, error) {
	switch strategy {
	case StrategyForward:
		return ForwardSelection(ctx, ds, totalFeatures, opts...)
	case StrategyBackward:
		return BackwardElimination(ctx, ds, totalFeatures, opts...)
	case StrategyBidirectional:
		return BidirectionalSearch(ctx, ds, totalFeatures, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// ExpectedEvaluations is the number of traced candidates a full run of the
// strategy performs over totalFeatures, or 0 when it depends on the data.
func ExpectedEvaluations(strategy Strategy, totalFeatures int) int {
	if totalFeatures <= 0 {
		return 0
	}
	triangle := totalFeatures * (totalFeatures + 1) / 2
	switch strategy {
	case StrategyForward:
		return triangle
	case StrategyBackward:
		return triangle - 1
	default:
		return 0
	}
}
