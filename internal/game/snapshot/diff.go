package snapshot

import (
	"reflect"
	"time"
)

// Patch carries the parts of a State that changed between two builds.
// Nil pointer fields and empty slices mean "unchanged"; list fields hold
// only the changed entries.
type Patch struct {
	SessionID        string        `json:"sessionId"`
	Phase            *string       `json:"phase,omitempty"`
	Turn             *int          `json:"turn,omitempty"`
	CurrentPlayerID  *string       `json:"currentPlayerId,omitempty"`
	Dice             *[2]int       `json:"dice,omitempty"`
	HasRolled        *bool         `json:"hasRolled,omitempty"`
	AwaitingPurchase *bool         `json:"awaitingPurchase,omitempty"`
	WinnerID         *string       `json:"winnerId,omitempty"`
	LastAction       *string       `json:"lastAction,omitempty"`
	FreeParkingPot   *int          `json:"freeParkingPot,omitempty"`
	Timer            *TimerState   `json:"timer,omitempty"`
	Negotiation      *Negotiation  `json:"negotiation,omitempty"`
	DrawnCard        *DrawnCard    `json:"drawnCard,omitempty"`
	Players          []PlayerState `json:"players,omitempty"`
	Spaces           []SpaceState  `json:"spaces,omitempty"`
	Log              []LogEntry    `json:"log,omitempty"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// Diff computes the patch that transforms prev into next. The boolean
// reports whether anything changed at all.
func Diff(prev, next State) (Patch, bool) {
	patch := Patch{SessionID: next.SessionID, UpdatedAt: next.UpdatedAt}
	changed := false

	if prev.Phase != next.Phase {
		patch.Phase = &next.Phase
		changed = true
	}
	if prev.Turn != next.Turn {
		patch.Turn = &next.Turn
		changed = true
	}
	if prev.CurrentPlayerID != next.CurrentPlayerID {
		patch.CurrentPlayerID = &next.CurrentPlayerID
		changed = true
	}
	if prev.Dice != next.Dice {
		patch.Dice = &next.Dice
		changed = true
	}
	if prev.HasRolled != next.HasRolled {
		patch.HasRolled = &next.HasRolled
		changed = true
	}
	if prev.AwaitingPurchase != next.AwaitingPurchase {
		patch.AwaitingPurchase = &next.AwaitingPurchase
		changed = true
	}
	if prev.WinnerID != next.WinnerID {
		patch.WinnerID = &next.WinnerID
		changed = true
	}
	if prev.LastAction != next.LastAction {
		patch.LastAction = &next.LastAction
		changed = true
	}
	if prev.FreeParkingPot != next.FreeParkingPot {
		patch.FreeParkingPot = &next.FreeParkingPot
		changed = true
	}
	if prev.Timer != next.Timer {
		timer := next.Timer
		patch.Timer = &timer
		changed = true
	}
	if !reflect.DeepEqual(prev.Negotiation, next.Negotiation) {
		negotiation := next.Negotiation
		patch.Negotiation = &negotiation
		changed = true
	}
	if !reflect.DeepEqual(prev.DrawnCard, next.DrawnCard) {
		patch.DrawnCard = next.DrawnCard
		changed = true
	}

	prevPlayers := make(map[string]PlayerState, len(prev.Players))
	for _, p := range prev.Players {
		prevPlayers[p.ID] = p
	}
	for _, p := range next.Players {
		if old, ok := prevPlayers[p.ID]; !ok || !reflect.DeepEqual(old, p) {
			patch.Players = append(patch.Players, p)
			changed = true
		}
	}

	for i := range next.Spaces {
		if i >= len(prev.Spaces) || prev.Spaces[i] != next.Spaces[i] {
			patch.Spaces = append(patch.Spaces, next.Spaces[i])
			changed = true
		}
	}

	if len(next.Log) > len(prev.Log) {
		patch.Log = append(patch.Log, next.Log[len(prev.Log):]...)
		changed = true
	} else if n := len(next.Log); n > 0 && n == len(prev.Log) {
		// The ring is at capacity: a commit shifts the window by however
		// many entries it appended. Align the old log's tail against the
		// new log's head to find the shift, then resend exactly the new
		// entries.
		shift := n
		for k := 0; k <= n; k++ {
			if logShiftMatches(prev.Log, next.Log, k) {
				shift = k
				break
			}
		}
		if shift > 0 {
			patch.Log = append(patch.Log, next.Log[n-shift:]...)
			changed = true
		}
	}

	return patch, changed
}

// logShiftMatches reports whether dropping the first k entries of prev
// lines up with the head of next.
func logShiftMatches(prev, next []LogEntry, k int) bool {
	for i := 0; i < len(prev)-k; i++ {
		if prev[k+i] != next[i] {
			return false
		}
	}
	return true
}
