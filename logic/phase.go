package logic

// Phase is one of the two mandatory evaluations of a clock cycle.
type Phase int

// The two phases of a cycle. Settle is evaluated first with the clock low;
// Commit follows with the clock high and is the only phase in which stored
// state changes.
const (
	Settle Phase = iota
	Commit
)

// Phases lists the phases of a cycle in evaluation order.
var Phases = [2]Phase{Settle, Commit}

// Level returns the clock level of the phase.
func (p Phase) Level() bool {
	return p == Commit
}

func (p Phase) String() string {
	switch p {
	case Settle:
		return "settle"
	case Commit:
		return "commit"
	default:
		return "unknown"
	}
}
