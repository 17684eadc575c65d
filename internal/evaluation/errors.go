package evaluation

import "errors"

// ErrTooFewInstances indicates a dataset with fewer than two instances;
// leaving one out would leave nothing to classify against.
var ErrTooFewInstances = errors.New("leave-one-out needs at least two instances")
