// Package search implements greedy feature-subset selection driven by a
// leave-one-out nearest-neighbor scorer.
//
// Three strategies are provided. ForwardSelection grows a subset one feature
// at a time, BackwardElimination shrinks the full set one feature at a time,
// and BidirectionalSearch weighs the best addition against the best removal
// each round. Every strategy records each evaluated subset in a Trace and
// reports progress through an optional Observer; TextReporter renders those
// events in the classic console format.
//
// Ties between equally accurate candidates go to the first one scanned:
// ascending feature index for additions, current subset order for removals.
package search
