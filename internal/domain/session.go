package domain

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseDispatched Phase = "dispatched"
	PhaseComposed   Phase = "composed"
	PhaseCommitted  Phase = "committed"
)
