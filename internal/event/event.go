package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	SampleReceived Type = iota + 1
	SampleRejected
	FrameRendered
	StreamClosed
)

var typeNames = [...]string{
	SampleReceived: "SampleReceived",
	SampleRejected: "SampleRejected",
	FrameRendered:  "FrameRendered",
	StreamClosed:   "StreamClosed",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Event represents a single occurrence on a sample stream.
type Event struct {
	Type      Type
	Timestamp time.Time
	Value     float64 // parsed sample (SampleReceived)
	Line      int     // 1-based input line
	Raw       string  // offending token (SampleRejected)
	Error     error
}
