package events

type Level uint8

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "D"
	case Info:
		return "I"
	case Warn:
		return "W"
	case Error:
		return "E"
	default:
		return "X"
	}
}

// Event is a diagnostic raised while a scaffolding session runs.
// Source names the setting, path or component the event is about.
type Event struct {
	Level   Level
	Source  string
	Message string
	Error   error
}

type Handler interface {
	Handle(event Event)
}

// NoopHandler drops every event.
type NoopHandler struct{}

func (NoopHandler) Handle(event Event) {}
