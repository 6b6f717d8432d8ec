package tui

import (
	"strings"

	"github.com/tyoon11/holdem/internal/deck"
)

// CardFaces holds one pre-rendered face per card, keyed by the canonical
// card name ("queen of Hearts"). Build it once per session, after the color
// profile is settled, and pass it to whatever draws cards.
type CardFaces struct {
	faces map[string]string
}

// NewCardFaces renders all 52 faces
func NewCardFaces() *CardFaces {
	cf := &CardFaces{faces: make(map[string]string, 52)}
	for _, c := range deck.FullDeck() {
		cf.faces[c.String()] = renderFace(c)
	}
	return cf
}

func renderFace(c deck.Card) string {
	label := "[" + string(c.Rank.Letter()) + c.Suit.Symbol() + "]"
	if c.IsRed() {
		return RedCardStyle.Render(label)
	}
	return BlackCardStyle.Render(label)
}

// Len returns the number of cached faces
func (cf *CardFaces) Len() int {
	return len(cf.faces)
}

// Face returns the cached face for c. Cards outside the standard deck are
// rendered on the fly.
func (cf *CardFaces) Face(c deck.Card) string {
	if face, ok := cf.faces[c.String()]; ok {
		return face
	}
	return renderFace(c)
}

// Render joins the faces of cards with a space
func (cf *CardFaces) Render(cards []deck.Card) string {
	faces := make([]string, len(cards))
	for i, c := range cards {
		faces[i] = cf.Face(c)
	}
	return strings.Join(faces, " ")
}
