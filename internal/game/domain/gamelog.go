package domain

import "time"

// LogCategory classifies a game log entry for client narration.
type LogCategory string

const (
	LogRoll       LogCategory = "roll"
	LogBuy        LogCategory = "buy"
	LogRent       LogCategory = "rent"
	LogTax        LogCategory = "tax"
	LogPayday     LogCategory = "payday"
	LogBankrupt   LogCategory = "bankrupt"
	LogBuild      LogCategory = "build"
	LogTrade      LogCategory = "trade"
	LogCard       LogCategory = "card"
	LogJail       LogCategory = "jail"
	LogAuction    LogCategory = "auction"
	LogInfo       LogCategory = "info"
	LogTurn       LogCategory = "turn"
	LogBankruptcy LogCategory = "bankruptcy"
)

const defaultLogCapacity = 256

// LogEntry is one narration line.
type LogEntry struct {
	Message   string
	Category  LogCategory
	Timestamp time.Time
}

// GameLog is an append-only bounded ring buffer of narration entries.
// When the buffer is full the oldest entry is dropped.
type GameLog struct {
	entries []LogEntry
	start   int
	count   int
}

// NewGameLog creates a log holding at most capacity entries.
func NewGameLog(capacity int) *GameLog {
	if capacity <= 0 {
		capacity = defaultLogCapacity
	}
	return &GameLog{entries: make([]LogEntry, capacity)}
}

// Append adds an entry, evicting the oldest when full.
func (l *GameLog) Append(entry LogEntry) {
	idx := (l.start + l.count) % len(l.entries)
	l.entries[idx] = entry
	if l.count < len(l.entries) {
		l.count++
		return
	}
	l.start = (l.start + 1) % len(l.entries)
}

// Entries returns the retained entries, oldest first.
func (l *GameLog) Entries() []LogEntry {
	out := make([]LogEntry, 0, l.count)
	for i := 0; i < l.count; i++ {
		out = append(out, l.entries[(l.start+i)%len(l.entries)])
	}
	return out
}

// Len returns the number of retained entries.
func (l *GameLog) Len() int {
	return l.count
}
