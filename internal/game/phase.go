package game

// Phase is the community-card stage of a round. Phases only advance one
// step at a time: Start, Flop, Turn, River.
type Phase int

const (
	Start Phase = iota
	Flop
	Turn
	River
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case Start:
		return "start"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	default:
		return "unknown"
	}
}

// TableCards returns how many community cards are showing in this phase
func (p Phase) TableCards() int {
	switch p {
	case Flop:
		return 3
	case Turn:
		return 4
	case River:
		return 5
	default:
		return 0
	}
}

// dealCount is the number of community cards revealed when entering p
func (p Phase) dealCount() int {
	if p == Flop {
		return 3
	}
	return 1
}
