package roster

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// User is a single entry in a session roster.
type User struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joined_at"`
}

// SessionInfo is a point-in-time summary of a session.
type SessionInfo struct {
	RoomID      string        `json:"room_id"`
	UserCount   int           `json:"user_count"`
	ActiveUsers []string      `json:"active_users"`
	Uptime      time.Duration `json:"uptime"`
	CreatedAt   time.Time     `json:"created_at"`
}

type session struct {
	roomID    string
	createdAt time.Time
	users     []User // join order
}

func (s *session) has(userID string) bool {
	return lo.ContainsBy(s.users, func(u User) bool { return u.ID == userID })
}

func (s *session) usernames() []string {
	return lo.Map(s.users, func(u User, _ int) string { return u.Username })
}

// Store tracks the rosters of every room it has seen. A session is created on
// the first AddUser for its room and is never destroyed.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session
	last     time.Time // highest clock reading handed out so far

	now      func() time.Time
	newID    func() string
	notifier Notifier
	logger   *slog.Logger
}

// Option is a function that configures a Store.
type Option func(*Store)

// WithClock replaces the time source used for created_at, joined_at and uptime.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithNotifier sets the sink that receives join and leave events.
func WithNotifier(n Notifier) Option {
	return func(s *Store) {
		s.notifier = n
	}
}

// WithLogger sets the logger used by the store.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// WithIDGenerator sets the generator for event IDs.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// Now is the default clock. It keeps the monotonic reading so uptimes are
// measured on the monotonic clock.
func Now() time.Time {
	return time.Now()
}

// NewStore creates an empty roster store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]*session),
		now:      Now,
		newID:    uuid.NewString,
		logger:   slog.Default().With("component", "roster"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// tick reads the clock, never going below a previous reading.
// Must be called while holding the write lock.
func (s *Store) tick() time.Time {
	t := s.now()
	if t.Before(s.last) {
		t = s.last
	}
	s.last = t
	return t
}

// AddUser appends a user to the room's roster, creating the session if this
// is the first reference to roomID. A user already present in the room is
// rejected with ErrUserAlreadyJoined and the roster is left untouched.
func (s *Store) AddUser(ctx context.Context, roomID, userID, username string) error {
	s.mu.Lock()
	now := s.tick()

	sess, exists := s.sessions[roomID]
	if !exists {
		sess = &session{roomID: roomID, createdAt: now}
		s.sessions[roomID] = sess
		s.logger.Debug("Session created", "room_id", roomID)
	}

	if sess.has(userID) {
		s.mu.Unlock()
		return fmt.Errorf("add user %q to room %q: %w", userID, roomID, ErrUserAlreadyJoined)
	}

	sess.users = append(sess.users, User{ID: userID, Username: username, JoinedAt: now})
	count := len(sess.users)

	// Release lock before notifying.
	s.mu.Unlock()

	s.logger.Info("User joined room",
		"room_id", roomID,
		"user_id", userID,
		"username", username,
		"user_count", count)

	s.notify(ctx, Event{
		Kind:     EventJoined,
		RoomID:   roomID,
		UserID:   userID,
		Username: username,
		At:       now,
	})
	return nil
}

// RemoveUser drops every roster entry for userID. Unknown rooms and users are
// ignored.
func (s *Store) RemoveUser(ctx context.Context, roomID, userID string) {
	s.mu.Lock()

	sess, exists := s.sessions[roomID]
	if !exists {
		s.mu.Unlock()
		s.logger.Debug("Room not found for removal", "room_id", roomID, "user_id", userID)
		return
	}

	var removed []User
	sess.users = slices.DeleteFunc(sess.users, func(u User) bool {
		if u.ID == userID {
			removed = append(removed, u)
			return true
		}
		return false
	})
	if len(removed) == 0 {
		s.mu.Unlock()
		s.logger.Debug("User not found in room", "room_id", roomID, "user_id", userID)
		return
	}

	now := s.tick()
	remaining := len(sess.users)
	s.mu.Unlock()

	s.logger.Info("User left room",
		"room_id", roomID,
		"user_id", userID,
		"remaining_users", remaining)

	s.notify(ctx, Event{
		Kind:     EventLeft,
		RoomID:   roomID,
		UserID:   userID,
		Username: removed[0].Username,
		At:       now,
	})
}

// ActiveUsernames returns the usernames in the room in join order. An unknown
// room yields an empty slice.
func (s *Store) ActiveUsernames(roomID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, exists := s.sessions[roomID]
	if !exists {
		return []string{}
	}
	return sess.usernames()
}

// SessionInfo summarises the room. It fails with ErrSessionNotFound when the
// room has never been joined.
func (s *Store) SessionInfo(roomID string) (SessionInfo, error) {
	// Write lock: reading the clock advances the high-water mark.
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, exists := s.sessions[roomID]
	if !exists {
		return SessionInfo{}, fmt.Errorf("session info for room %q: %w", roomID, ErrSessionNotFound)
	}

	return SessionInfo{
		RoomID:      sess.roomID,
		UserCount:   len(sess.users),
		ActiveUsers: sess.usernames(),
		Uptime:      s.tick().Sub(sess.createdAt),
		CreatedAt:   sess.createdAt,
	}, nil
}

// Users returns a copy of the room's roster.
func (s *Store) Users(roomID string) []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, exists := s.sessions[roomID]
	if !exists {
		return []User{}
	}
	return slices.Clone(sess.users)
}

// HasUser reports whether userID is currently in the room.
func (s *Store) HasUser(roomID, userID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, exists := s.sessions[roomID]
	return exists && sess.has(userID)
}

// Rooms returns every known room ID, oldest session first.
func (s *Store) Rooms() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := lo.Values(s.sessions)
	slices.SortFunc(sessions, func(a, b *session) int {
		if c := a.createdAt.Compare(b.createdAt); c != 0 {
			return c
		}
		return strings.Compare(a.roomID, b.roomID)
	})
	return lo.Map(sessions, func(sess *session, _ int) string { return sess.roomID })
}

func (s *Store) notify(ctx context.Context, evt Event) {
	if s.notifier == nil {
		return
	}
	evt.ID = s.newID()
	if err := s.notifier.Notify(ctx, evt); err != nil {
		s.logger.Error("Failed to deliver roster notification",
			"error", err,
			"kind", evt.Kind,
			"room_id", evt.RoomID,
			"user_id", evt.UserID)
	}
}
