package component

// Phase governs which behaviours are active.
type Phase int

const (
	PhaseWaiting Phase = iota
	PhasePlaying
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// Session holds the score and phase of the single running game. Score is
// zeroed on start only, so the game-over panel can keep showing it after a
// restart until the next kick-off.
type Session struct {
	Phase Phase
	Score int
	// RunID tags the notifications of one start..game-over cycle.
	RunID string
}

var SessionComponent = NewComponent[Session]()
