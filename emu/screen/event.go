package screen

// Kind of host event produced by a Frontend.
type Kind int

const (
	KeyDown Kind = iota
	KeyUp
	Quit
	TogglePause
	StepCycle
	Reset
)

// Event is a single input event. Key is the hex key for KeyDown and KeyUp
// and zero otherwise.
type Event struct {
	Kind Kind
	Key  uint8
}

// Frontend presents frames and gathers input. Poll must not block.
type Frontend interface {
	Present(frame *Frame) error
	Poll() []Event
	Close()
}
