package source

import "errors"

// ErrUnavailable is returned when a data provider cannot be reached or
// its circuit breaker is open. Callers behind the fallback policy never
// see it; defaults are substituted instead.
var ErrUnavailable = errors.New("data source unavailable")
