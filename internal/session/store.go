package session

import (
	"sync"
	"time"

	"github.com/planetoftheweb/bananabrand/internal/brand"
	"github.com/planetoftheweb/bananabrand/internal/gemini"
)

// Session holds one chat's brand choices and its current image. The
// image is replaced wholesale when a refinement succeeds; a failed
// request leaves it untouched.
type Session struct {
	Config       brand.Config
	Current      *gemini.GeneratedImage
	Busy         bool
	LastActivity time.Time
}

type Store struct {
	mu sync.Mutex
	m  map[sessionKey]*Session
}

type sessionKey struct {
	ChatID int64
	UserID int64
}

func NewStore() *Store {
	return &Store{m: make(map[sessionKey]*Session)}
}

func (s *Store) Get(chatID, userID int64) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	return *s.getOrCreateLocked(chatID, userID)
}

func (s *Store) Update(chatID, userID int64, fn func(*Session)) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.getOrCreateLocked(chatID, userID)
	if fn != nil {
		fn(sess)
	}
	sess.LastActivity = time.Now()
	return *sess
}

// TryAcquire marks the session busy unless a request is already in
// flight. It enforces at most one outstanding generation per chat.
func (s *Store) TryAcquire(chatID, userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.getOrCreateLocked(chatID, userID)
	if sess.Busy {
		return false
	}
	sess.Busy = true
	sess.LastActivity = time.Now()
	return true
}

func (s *Store) Release(chatID, userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.m[sessionKey{ChatID: chatID, UserID: userID}]; ok {
		sess.Busy = false
	}
}

func (s *Store) Reset(chatID, userID int64) Session {
	return s.Update(chatID, userID, func(sess *Session) {
		*sess = defaultSession()
	})
}

func (s *Store) getOrCreateLocked(chatID, userID int64) *Session {
	key := sessionKey{ChatID: chatID, UserID: userID}
	if sess, ok := s.m[key]; ok {
		return sess
	}

	sess := defaultSession()
	s.m[key] = &sess
	return s.m[key]
}

func defaultSession() Session {
	return Session{
		Config: brand.Config{
			ColorSchemeID: "vibrant",
			VisualStyleID: "flat",
			GraphicTypeID: "logo",
			AspectRatio:   "1:1",
		},
		LastActivity: time.Now(),
	}
}
