// Package deck manages a shuffled draw sequence of card ids.
package deck

import (
	"errors"
	"math/rand"
)

// ErrEmptyDeck indicates a deck built with no cards.
var ErrEmptyDeck = errors.New("deck requires at least one card")

// Deck is a pre-shuffled sequence of card ids. Draws walk the sequence;
// exhausting it reshuffles the full set and starts over.
type Deck struct {
	ids  []string
	next int
	rng  *rand.Rand
}

// New shuffles the given card ids into a draw sequence.
func New(ids []string, rng *rand.Rand) (*Deck, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyDeck
	}
	d := &Deck{
		ids: make([]string, len(ids)),
		rng: rng,
	}
	copy(d.ids, ids)
	d.shuffle()
	return d, nil
}

// Draw pops the next card id, reshuffling when the sequence is exhausted.
func (d *Deck) Draw() string {
	if d.next >= len(d.ids) {
		d.shuffle()
	}
	id := d.ids[d.next]
	d.next++
	return id
}

// Remaining returns the number of cards left before the next reshuffle.
func (d *Deck) Remaining() int {
	return len(d.ids) - d.next
}

func (d *Deck) shuffle() {
	d.rng.Shuffle(len(d.ids), func(i, j int) {
		d.ids[i], d.ids[j] = d.ids[j], d.ids[i]
	})
	d.next = 0
}
