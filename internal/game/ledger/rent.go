package ledger

import "github.com/tycho-games/magnate/internal/game/domain"

// Rent multipliers applied to a property's base rent. Indexed by house
// count; a monopoly without houses doubles the base rent; a hotel pays
// the top factor.
const (
	monopolyFactor = 2
	hotelFactor    = 60
)

var houseFactors = [5]int{1, 5, 15, 30, 45}

// Rent computes the rent owed for landing on a space. It is a pure
// function of the space state and the ownership graph, recomputed on
// every landing and never cached. Mortgaged spaces collect nothing.
func (l *Ledger) Rent(s *domain.Session, index int) int {
	space, ok := l.board.Space(index)
	if !ok || !space.IsProperty() {
		return 0
	}
	state := s.Spaces[index]
	if state.OwnerID == "" || state.Mortgaged {
		return 0
	}

	if state.Hotel {
		return space.BaseRent * hotelFactor
	}
	if state.Houses > 0 {
		return space.BaseRent * houseFactors[state.Houses]
	}

	// Unimproved: monopoly doubles the base rent.
	monopoly := true
	for _, idx := range l.board.District(space.District) {
		if s.Spaces[idx].OwnerID != state.OwnerID {
			monopoly = false
			break
		}
	}
	if monopoly {
		return space.BaseRent * monopolyFactor
	}
	return space.BaseRent
}
