package session

import (
	"errors"
	"sync"
)

// View states a connected user can be routed to.
const (
	StateLoggedOut     = "loggedOut"
	StateAwaitingPhone = "awaitingPhone"
	StateClient        = "client"
	StateAdmin         = "admin"
)

var ErrUnknownSession = errors.New("unknown session")

// Session is one user's routing state: which surface they see and which
// date their booking view has selected.
type Session struct {
	UID          string `json:"uid"`
	State        string `json:"state"`
	SelectedDate string `json:"selectedDate,omitempty"`
}

// Hub tracks the routing state of every signed-in user.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewHub() *Hub {
	return &Hub{sessions: map[string]*Session{}}
}

// OnSignIn (re)routes a user from their identity: admins to the admin
// surface, users without a stored phone number to phone entry, everyone
// else to the client booking view. A retained selected date survives
// re-authentication.
func (h *Hub) OnSignIn(uid string, hasPhone, isAdmin bool) Session {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[uid]
	if !ok {
		s = &Session{UID: uid}
		h.sessions[uid] = s
	}
	switch {
	case isAdmin:
		s.State = StateAdmin
	case !hasPhone:
		s.State = StateAwaitingPhone
	default:
		s.State = StateClient
	}
	return *s
}

// OnPhoneSaved promotes a phone-gated user to the client view.
func (h *Hub) OnPhoneSaved(uid string) (Session, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[uid]
	if !ok {
		return Session{}, ErrUnknownSession
	}
	if s.State == StateAwaitingPhone {
		s.State = StateClient
	}
	return *s, nil
}

// OnSignOut drops the user's routing state entirely.
func (h *Hub) OnSignOut(uid string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, uid)
}

// Get returns the user's session.
func (h *Hub) Get(uid string) (Session, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[uid]
	if !ok {
		return Session{}, ErrUnknownSession
	}
	return *s, nil
}

// SelectDate records the date a user's booking view is showing.
func (h *Hub) SelectDate(uid, date string) (Session, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[uid]
	if !ok {
		return Session{}, ErrUnknownSession
	}
	s.SelectedDate = date
	return *s, nil
}

// ReselectWhere moves every session whose selected date is absent from the
// offerable set onto fallback, returning how many moved. Sessions with no
// selection are untouched.
func (h *Hub) ReselectWhere(offerable map[string]bool, fallback string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	moved := 0
	for _, s := range h.sessions {
		if s.SelectedDate == "" || offerable[s.SelectedDate] {
			continue
		}
		s.SelectedDate = fallback
		moved++
	}
	return moved
}
