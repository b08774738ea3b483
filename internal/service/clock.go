package service

import "time"

// Clock supplies the current time for new check-in timestamps.
// Injecting it keeps submission tests deterministic.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock returns the production Clock backed by time.Now (UTC).
func SystemClock() Clock { return systemClock{} }
