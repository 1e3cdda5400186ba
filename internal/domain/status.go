package domain

// Status tells the presentation layer where the current tables came from.
// It drives a passive indicator only and never blocks interaction.
type Status int

const (
	// StatusLoading means a fetch cycle is in flight.
	StatusLoading Status = iota
	// StatusFallback means the tables hold the built-in defaults, either
	// because no backend is configured or because the last cycle failed.
	StatusFallback
	// StatusLive means both sub-fetches of the last cycle succeeded.
	StatusLive
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusFallback:
		return "fallback"
	case StatusLive:
		return "live"
	default:
		return "unknown"
	}
}
