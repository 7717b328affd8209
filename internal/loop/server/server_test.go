package server

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tomz197/invaders/internal/config"
)

func newTestServer() *Server {
	return NewServer(config.Default())
}

func TestRegisterAssignsIDs(t *testing.T) {
	s := newTestServer()
	a := s.RegisterClient("alice")
	b := s.RegisterClient("bob")

	if a.ID == b.ID {
		t.Fatal("client IDs must be unique")
	}
	if s.Sessions() != 2 {
		t.Errorf("expected 2 sessions, got %d", s.Sessions())
	}

	s.UnregisterClient(a.ID)
	if _, ok := <-a.EventsCh; ok {
		t.Error("events channel should be closed on unregister")
	}
	s.UnregisterClient(a.ID) // Second unregister is ignored
	if s.Sessions() != 1 {
		t.Errorf("expected 1 session, got %d", s.Sessions())
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "anonymous"},
		{"alice", "alice"},
		{strings.Repeat("x", config.MaxUsernameLength+4), strings.Repeat("x", config.MaxUsernameLength)},
		{strings.Repeat("é", config.MaxUsernameLength+1), strings.Repeat("é", config.MaxUsernameLength)},
	}
	for _, tt := range tests {
		if got := displayName(tt.in); got != tt.want {
			t.Errorf("displayName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTopScoresOrdering(t *testing.T) {
	board := topScores{limit: 3}

	tests := []struct {
		score    int
		wantRank int
	}{
		{100, 1},
		{300, 1},
		{200, 2},
		{200, 3}, // Ties rank below the earlier round
		{50, 0},  // Board full
		{0, 0},
		{400, 1},
	}
	for _, tt := range tests {
		if got := board.insert(TopScoreEntry{Score: tt.score}); got != tt.wantRank {
			t.Errorf("insert(%d) rank = %d, want %d", tt.score, got, tt.wantRank)
		}
	}

	want := []int{400, 300, 200}
	got := board.list()
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i, e := range got {
		if e.Score != want[i] {
			t.Errorf("entry %d = %d, want %d", i, e.Score, want[i])
		}
	}
}

func TestSubmitScoreNotifiesOthers(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := NewServer(config.Default(), WithClock(func() time.Time { return at }))
	alice := s.RegisterClient("alice")
	bob := s.RegisterClient("bob")

	if rank := s.SubmitScore(alice.ID, 150, 2); rank != 1 {
		t.Fatalf("expected rank 1, got %d", rank)
	}

	select {
	case ev := <-bob.EventsCh:
		if ev.Type != EventTopScoresChanged {
			t.Errorf("expected a top score event, got %v", ev.Type)
		}
	default:
		t.Error("other clients should be notified")
	}
	select {
	case ev := <-alice.EventsCh:
		t.Errorf("submitter should not be notified, got %v", ev.Type)
	default:
	}

	top := s.TopScores()
	if len(top) != 1 || top[0].Username != "alice" || top[0].Wave != 2 || !top[0].At.Equal(at) {
		t.Errorf("unexpected board %+v", top)
	}

	top[0].Score = 0
	if s.TopScores()[0].Score != 150 {
		t.Error("TopScores should return a copy")
	}
}

func TestSubmitScoreUnknownClient(t *testing.T) {
	s := newTestServer()
	if rank := s.SubmitScore(42, 1000, 1); rank != 0 {
		t.Errorf("unknown client should not rank, got %d", rank)
	}
	if len(s.TopScores()) != 0 {
		t.Error("board should stay empty")
	}
}

func TestShutdownNotifiesAndWaits(t *testing.T) {
	s := newTestServer()
	h := s.RegisterClient("alice")

	go func() {
		ev := <-h.EventsCh
		if ev.Type == EventServerShutdown {
			s.UnregisterClient(h.ID)
		}
	}()

	if remaining := s.Shutdown(2 * time.Second); remaining != 0 {
		t.Errorf("expected every client to leave, %d remaining", remaining)
	}

	late := s.RegisterClient("bob")
	if ev := <-late.EventsCh; ev.Type != EventServerShutdown {
		t.Error("clients joining during shutdown should be told at once")
	}
}

func TestShutdownTimesOut(t *testing.T) {
	s := newTestServer()
	s.RegisterClient("stubborn")
	if remaining := s.Shutdown(100 * time.Millisecond); remaining != 1 {
		t.Errorf("expected 1 remaining client, got %d", remaining)
	}
}

func TestConcurrentSessions(t *testing.T) {
	s := newTestServer()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			h := s.RegisterClient("player")
			s.SubmitScore(h.ID, score, 1)
			s.TopScores()
			s.UnregisterClient(h.ID)
		}((i + 1) * 10)
	}
	wg.Wait()

	if s.Sessions() != 0 {
		t.Errorf("expected no sessions, got %d", s.Sessions())
	}
	top := s.TopScores()
	if len(top) != config.TopScoreCount || top[0].Score != 200 {
		t.Errorf("expected the best %d scores led by 200, got %+v", config.TopScoreCount, top)
	}
}
