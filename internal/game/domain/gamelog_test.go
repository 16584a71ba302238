package domain

import (
	"fmt"
	"testing"
	"time"
)

func TestGameLogAppendAndOrder(t *testing.T) {
	log := NewGameLog(4)
	for i := 0; i < 3; i++ {
		log.Append(LogEntry{Message: fmt.Sprintf("m%d", i), Category: LogInfo, Timestamp: time.Unix(int64(i), 0)})
	}
	entries := log.Entries()
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	for i, e := range entries {
		if e.Message != fmt.Sprintf("m%d", i) {
			t.Fatalf("entry %d = %q, want m%d", i, e.Message, i)
		}
	}
}

func TestGameLogEvictsOldest(t *testing.T) {
	log := NewGameLog(3)
	for i := 0; i < 5; i++ {
		log.Append(LogEntry{Message: fmt.Sprintf("m%d", i), Category: LogRoll})
	}
	entries := log.Entries()
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	want := []string{"m2", "m3", "m4"}
	for i, e := range entries {
		if e.Message != want[i] {
			t.Fatalf("entry %d = %q, want %q", i, e.Message, want[i])
		}
	}
	if log.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", log.Len())
	}
}
