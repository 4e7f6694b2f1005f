package driver

// Stage identifies where a document currently is in the pipeline.
type Stage uint8

const (
	StageLoad Stage = iota
	StageCheck
)

// Status is the coarse progress state of one document.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event is one progress update for a document run.
type Event struct {
	Doc    string
	Stage  Stage
	Status Status
}

// Sink receives progress events. Implementations must be safe for use from
// multiple worker goroutines.
type Sink interface {
	Send(Event)
}

// ChannelSink forwards events into a channel, typically consumed by the
// progress UI.
type ChannelSink struct{ Ch chan<- Event }

func (s ChannelSink) Send(ev Event) {
	if s.Ch != nil {
		s.Ch <- ev
	}
}

func emit(sink Sink, ev Event) {
	if sink != nil {
		sink.Send(ev)
	}
}
