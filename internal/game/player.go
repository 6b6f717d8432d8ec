package game

import "github.com/tyoon11/holdem/internal/deck"

// Player is a named seat holding zero or two hole cards
type Player struct {
	Name string
	Hand []deck.Card
}

// HasCards reports whether the player has been dealt hole cards
func (p Player) HasCards() bool {
	return len(p.Hand) > 0
}

// clone returns a copy that shares no memory with p
func (p Player) clone() Player {
	return Player{Name: p.Name, Hand: append([]deck.Card(nil), p.Hand...)}
}

func clonePlayers(players []Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = p.clone()
	}
	return out
}
