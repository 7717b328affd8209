// Package server tracks the sessions connected to one host and keeps the
// shared top-score board. Each session plays its own round.
package server

import (
	"io"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/config"
)

// GameServer is the interface clients use to talk to the host.
// Decouples the Client from the concrete Server implementation.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	SubmitScore(clientID int, score, wave int) (rank int)
	TopScores() []TopScoreEntry
	Config() config.Game
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID        int
	Username  string           // Display name, truncated to MaxUsernameLength
	Connected time.Time        // Registration time
	EventsCh  chan ClientEvent // Events sent to the client; closed on unregister
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
	EventTopScoresChanged
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger. Servers log nothing by default.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// Server is the registry of connected sessions. Safe for concurrent use.
type Server struct {
	cfg    config.Game
	logger *log.Logger
	now    func() time.Time

	mu           sync.RWMutex
	clients      map[int]*ClientHandle
	nextClientID int
	scores       topScores
	shuttingDown bool
}

// NewServer creates a server handing cfg to every session.
func NewServer(cfg config.Game, opts ...Option) *Server {
	s := &Server{
		cfg:          cfg,
		logger:       log.New(io.Discard),
		now:          time.Now,
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		scores:       topScores{limit: config.TopScoreCount},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the tuning every session plays with.
func (s *Server) Config() config.Game {
	return s.cfg
}

// RegisterClient registers a new client with the given username and returns its handle.
// A client registering during shutdown is told immediately.
func (s *Server) RegisterClient(username string) *ClientHandle {
	handle := &ClientHandle{
		Username:  displayName(username),
		Connected: s.now(),
		EventsCh:  make(chan ClientEvent, 16),
	}

	s.mu.Lock()
	handle.ID = s.nextClientID
	s.nextClientID++
	s.clients[handle.ID] = handle
	if s.shuttingDown {
		handle.EventsCh <- ClientEvent{Type: EventServerShutdown}
	}
	count := len(s.clients)
	s.mu.Unlock()

	s.logger.Info("client registered", "id", handle.ID, "user", handle.Username, "sessions", count)
	return handle
}

// UnregisterClient removes a client and closes its event channel.
// Unknown IDs are ignored.
func (s *Server) UnregisterClient(clientID int) {
	s.mu.Lock()
	handle, ok := s.clients[clientID]
	if ok {
		delete(s.clients, clientID)
		close(handle.EventsCh)
	}
	count := len(s.clients)
	s.mu.Unlock()

	if ok {
		s.logger.Info("client unregistered", "id", clientID, "user", handle.Username,
			"played", s.now().Sub(handle.Connected).Round(time.Second), "sessions", count)
	}
}

// Sessions returns the number of connected clients.
func (s *Server) Sessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// SubmitScore records a finished round. Returns the 1-based rank on the
// top-score board, or 0 if the score did not make it. Other clients are
// notified when the board changes.
func (s *Server) SubmitScore(clientID int, score, wave int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return 0
	}

	rank := s.scores.insert(TopScoreEntry{
		Username: handle.Username,
		Score:    score,
		Wave:     wave,
		At:       s.now(),
		clientID: clientID,
	})
	if rank == 0 {
		return 0
	}

	s.logger.Info("new top score", "user", handle.Username, "score", score, "wave", wave, "rank", rank)
	for id, other := range s.clients {
		if id == clientID {
			continue
		}
		select {
		case other.EventsCh <- ClientEvent{Type: EventTopScoresChanged}:
		default:
			// Client is behind on events; it will still see the board on its next game over
		}
	}
	return rank
}

// TopScores returns a copy of the board, best first.
func (s *Server) TopScores() []TopScoreEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scores.list()
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// Returns the number of clients still connected when it gave up.
func (s *Server) Shutdown(timeout time.Duration) int {
	s.mu.Lock()
	s.shuttingDown = true
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.Unlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		remaining := s.Sessions()
		if remaining == 0 {
			return 0
		}
		select {
		case <-deadline:
			s.logger.Warn("shutdown timed out", "sessions", remaining)
			return remaining
		case <-ticker.C:
		}
	}
}

// displayName trims a username to MaxUsernameLength runes.
func displayName(username string) string {
	if username == "" {
		return "anonymous"
	}
	if utf8.RuneCountInString(username) <= config.MaxUsernameLength {
		return username
	}
	runes := []rune(username)
	return string(runes[:config.MaxUsernameLength])
}
