package game

type State string

const (
	StateOpen    State = "open"
	StatePrompts State = "prompts"
	StateDrawing State = "drawing"
)
