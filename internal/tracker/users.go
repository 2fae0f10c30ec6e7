package tracker

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/abhisek/masterly/internal/apperr"
	"github.com/abhisek/masterly/internal/catalog"
	"github.com/abhisek/masterly/internal/mastery"
)

// ListUsers returns every user in creation order.
func (s *Service) ListUsers() []catalog.User {
	return slices.Clone(s.doc.Users)
}

// ActiveUser returns the selected user.
func (s *Service) ActiveUser() (catalog.User, bool) {
	if s.activeUserID == "" {
		return catalog.User{}, false
	}
	u := s.doc.User(s.activeUserID)
	if u == nil {
		return catalog.User{}, false
	}
	return *u, true
}

// User looks a user up by id.
func (s *Service) User(id string) (catalog.User, bool) {
	u := s.doc.User(id)
	if u == nil {
		return catalog.User{}, false
	}
	return *u, true
}

// UserByName looks a user up by name, ignoring case.
func (s *Service) UserByName(name string) (catalog.User, bool) {
	u := s.doc.UserByName(strings.TrimSpace(name))
	if u == nil {
		return catalog.User{}, false
	}
	return *u, true
}

// CreateUser adds a user with every existing question pending. Names are
// trimmed and must be unique ignoring case.
func (s *Service) CreateUser(ctx context.Context, username string) (catalog.User, error) {
	name := strings.TrimSpace(username)
	if name == "" {
		return catalog.User{}, apperr.Validation("please enter a username", errors.New("empty username"))
	}
	if s.doc.UserByName(name) != nil {
		return catalog.User{}, apperr.Duplicate("the username %q is already taken", name)
	}

	u := catalog.User{
		ID:       s.newID(),
		Username: name,
		Progress: mastery.NewLedger(s.doc.QuestionIDs()),
	}
	s.doc.Users = append(s.doc.Users, u)
	s.log.Info("user created", "user_id", u.ID, "username", u.Username)

	return u, s.persist(ctx)
}

// SelectUser makes id the active user. Switching away from a user with a
// quiz in progress is refused.
func (s *Service) SelectUser(ctx context.Context, id string) error {
	if s.doc.User(id) == nil {
		return apperr.NotFound("user %s not found", id)
	}
	if s.engine.InProgress() && s.engine.UserID() != id {
		return apperr.Precondition(apperr.ReasonQuizInProgress, "finish the current quiz before switching users")
	}
	s.activeUserID = id
	s.log.Info("user selected", "user_id", id)
	return s.persist(ctx)
}

// Stats summarizes the ledger of the given user.
func (s *Service) Stats(userID string) (mastery.Stats, error) {
	u := s.doc.User(userID)
	if u == nil {
		return mastery.Stats{}, apperr.NotFound("user %s not found", userID)
	}
	return u.Progress.Stats(), nil
}
