package ui

import "github.com/bamsammich/sparkline/internal/event"

// Event is re-exported for presenter signatures.
type Event = event.Event

// Re-export event types for convenience.
const (
	SampleReceived = event.SampleReceived
	SampleRejected = event.SampleRejected
	FrameRendered  = event.FrameRendered
	StreamClosed   = event.StreamClosed
)
