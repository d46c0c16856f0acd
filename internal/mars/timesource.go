package mars

import "time"

// TimeSource supplies the Earth instant an Engine computes for.
type TimeSource interface {
	Now() time.Time
}

// FixedTimeSource always returns the same instant.
type FixedTimeSource struct {
	T time.Time
}

// Now returns the fixed instant.
func (f FixedTimeSource) Now() time.Time {
	return f.T
}

// LiveTimeSource reads the host clock on every call.
type LiveTimeSource struct{}

// Now returns the current host time.
func (LiveTimeSource) Now() time.Time {
	return time.Now()
}

// FuncTimeSource adapts a function to TimeSource.
type FuncTimeSource func() time.Time

// Now calls f.
func (f FuncTimeSource) Now() time.Time {
	return f()
}

var (
	_ TimeSource = FixedTimeSource{}
	_ TimeSource = LiveTimeSource{}
	_ TimeSource = FuncTimeSource(nil)
)
