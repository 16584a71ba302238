package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tycho-games/magnate/internal/broadcast"
)

func dialSocket(t *testing.T, baseURL, sessionID, playerID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(baseURL, "http") + "/sessions/" + sessionID + "/ws"
	if playerID != "" {
		url += "?playerId=" + playerID
	}
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) broadcast.Envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var envelope broadcast.Envelope
	if err := conn.ReadJSON(&envelope); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	return envelope
}

func sendAction(t *testing.T, conn *websocket.Conn, act action) {
	t.Helper()
	if err := conn.WriteJSON(act); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
}

func TestSocketSendsSnapshotOnAttach(t *testing.T) {
	srv := newTestServer(t, Config{})
	created := createSession(t, srv.URL, "Ada")
	postJSON(t, srv.URL+"/sessions/"+created.SessionID+"/join", joinRequest{Name: "Noor"})

	conn := dialSocket(t, srv.URL, created.SessionID, created.PlayerID)

	envelope := readEnvelope(t, conn)
	if envelope.Type != "snapshot" {
		t.Fatalf("envelope.Type = %q, want %q", envelope.Type, "snapshot")
	}
	if envelope.Snapshot.Phase != "lobby" {
		t.Fatalf("snapshot.Phase = %q, want %q", envelope.Snapshot.Phase, "lobby")
	}
	if len(envelope.Snapshot.Players) != 2 {
		t.Fatalf("len(snapshot.Players) = %d, want 2", len(envelope.Snapshot.Players))
	}
}

func TestSocketSnapshotMatchesBroadcastBaseline(t *testing.T) {
	s := New(Config{})
	t.Cleanup(s.Close)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	created := createSession(t, srv.URL, "Ada")

	// Stamp the room's diff baseline so the attach snapshot is
	// distinguishable from a freshly built one.
	rm, ok := s.room(created.SessionID)
	if !ok {
		t.Fatalf("room %s not found", created.SessionID)
	}
	rm.mu.Lock()
	rm.prev.LastAction = "baseline-marker"
	rm.mu.Unlock()

	conn := dialSocket(t, srv.URL, created.SessionID, created.PlayerID)
	envelope := readEnvelope(t, conn)
	if envelope.Type != "snapshot" {
		t.Fatalf("envelope.Type = %q, want %q", envelope.Type, "snapshot")
	}
	if envelope.Snapshot.LastAction != "baseline-marker" {
		t.Fatalf("snapshot.LastAction = %q, want the broadcast baseline", envelope.Snapshot.LastAction)
	}
}

func TestSocketRejectsUnknownPlayer(t *testing.T) {
	srv := newTestServer(t, Config{})
	created := createSession(t, srv.URL, "Ada")

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/sessions/" + created.SessionID + "/ws?playerId=nope"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("dial succeeded for an unknown player")
	}
	if resp == nil || resp.StatusCode != 404 {
		t.Fatalf("handshake response = %+v, want status 404", resp)
	}
}

func TestSocketActionsDriveTheGame(t *testing.T) {
	srv := newTestServer(t, Config{})
	created := createSession(t, srv.URL, "Ada")
	postJSON(t, srv.URL+"/sessions/"+created.SessionID+"/join", joinRequest{Name: "Noor"})

	conn := dialSocket(t, srv.URL, created.SessionID, created.PlayerID)
	readEnvelope(t, conn) // snapshot

	sendAction(t, conn, action{Action: "startGame"})
	envelope := readEnvelope(t, conn)
	if envelope.Type != "patch" {
		t.Fatalf("envelope.Type = %q, want %q", envelope.Type, "patch")
	}
	if envelope.Patch.Phase == nil || *envelope.Patch.Phase != "playing" {
		t.Fatalf("patch.Phase = %v, want playing", envelope.Patch.Phase)
	}

	sendAction(t, conn, action{Action: "rollDice"})
	envelope = readEnvelope(t, conn)
	if envelope.Type != "patch" {
		t.Fatalf("envelope.Type = %q, want %q", envelope.Type, "patch")
	}
	if envelope.Patch.Dice == nil {
		t.Fatal("roll patch carries no dice")
	}
	if envelope.Patch.Players == nil {
		t.Fatal("roll patch carries no player update")
	}
}

func TestSocketReportsRejectedActions(t *testing.T) {
	srv := newTestServer(t, Config{})
	created := createSession(t, srv.URL, "Ada")

	conn := dialSocket(t, srv.URL, created.SessionID, created.PlayerID)
	readEnvelope(t, conn) // snapshot

	sendAction(t, conn, action{Action: "rollDice"})
	envelope := readEnvelope(t, conn)
	if envelope.Type != "error" {
		t.Fatalf("envelope.Type = %q, want %q", envelope.Type, "error")
	}
	if envelope.Error.Code != "ACTION_WRONG_PHASE" {
		t.Fatalf("error.Code = %q, want %q", envelope.Error.Code, "ACTION_WRONG_PHASE")
	}

	sendAction(t, conn, action{Action: "moonwalk"})
	envelope = readEnvelope(t, conn)
	if envelope.Type != "error" || envelope.Error.Code != "UNKNOWN_ACTION" {
		t.Fatalf("envelope = %+v, want UNKNOWN_ACTION error", envelope)
	}
}

func TestSpectatorsObserveButCannotAct(t *testing.T) {
	srv := newTestServer(t, Config{})
	created := createSession(t, srv.URL, "Ada")
	postJSON(t, srv.URL+"/sessions/"+created.SessionID+"/join", joinRequest{Name: "Noor"})

	watcher := dialSocket(t, srv.URL, created.SessionID, "")
	envelope := readEnvelope(t, watcher)
	if envelope.Type != "snapshot" {
		t.Fatalf("envelope.Type = %q, want %q", envelope.Type, "snapshot")
	}

	sendAction(t, watcher, action{Action: "rollDice"})
	envelope = readEnvelope(t, watcher)
	if envelope.Type != "error" {
		t.Fatalf("envelope.Type = %q, want %q", envelope.Type, "error")
	}
}
