package battlefield

// State is a lifecycle phase of the controller.
type State int

const (
	StateUnmounted State = iota
	StateCreated         // surface exists, no renderer yet
	StateLoading         // renderer is loading assets
	StateRunning         // simulation started
	StateFinished        // engine reported the end of the battle
	StateStopped         // host stopped the simulation
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateUnmounted:
		return "unmounted"
	case StateCreated:
		return "created"
	case StateLoading:
		return "loading"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
