package sim

// Phase is the engine's place in the Menu -> Playing -> Victory|Defeat
// lifecycle.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseVictory
	PhaseDefeat
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further state changes can happen.
func (p Phase) Terminal() bool { return p == PhaseVictory || p == PhaseDefeat }
