package analysis

import "errors"

// ErrInsufficientData marks a profitability request whose price, cost
// or yield input is missing or zero. The crop's analysis continues with
// a nil profitability record instead of aborting the batch.
var ErrInsufficientData = errors.New("insufficient data for profitability analysis")
