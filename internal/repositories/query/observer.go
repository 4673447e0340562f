package query

import "time"

// Observer receives the latency of each listing query.
type Observer interface {
	ObserveQuery(collection, strategy string, d time.Duration)
}

// NopObserver discards observations.
type NopObserver struct{}

func (NopObserver) ObserveQuery(string, string, time.Duration) {}
