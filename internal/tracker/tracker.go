// Package tracker owns the application state and funnels every mutation
// through the domain components, persisting after each change.
package tracker

import (
	"context"
	"time"

	"github.com/abhisek/masterly/internal/apperr"
	"github.com/abhisek/masterly/internal/catalog"
	"github.com/abhisek/masterly/internal/ids"
	"github.com/abhisek/masterly/internal/logging"
	"github.com/abhisek/masterly/internal/session"
	"github.com/abhisek/masterly/internal/validate"
)

// Options configures a Service. Persister is required.
type Options struct {
	Persister Persister
	History   History // optional
	Logger    *logging.Logger

	Now   func() time.Time
	NewID func() string
	Intn  func(n int) int // shuffle source; nil uses math/rand/v2
}

// Service is the single state container. It is not safe for concurrent use;
// the TUI calls it from the Bubble Tea update loop only.
type Service struct {
	doc          *catalog.Document
	activeUserID string
	engine       *session.Engine

	persister Persister
	history   History
	log       *logging.Logger
	now       func() time.Time
	newID     func() string
}

// Open loads the stored workspace, seeding the default document when nothing
// has been saved. An interrupted quiz is resumed when its snapshot still
// matches the document.
//
// When loading fails the returned Service holds the default document and is
// usable; the error has kind IO.
func Open(ctx context.Context, opts Options) (*Service, error) {
	s := &Service{
		persister: opts.Persister,
		history:   opts.History,
		log:       opts.Logger,
		now:       opts.Now,
		newID:     opts.NewID,
		engine:    session.NewEngine(),
	}
	if s.log == nil {
		s.log = logging.Nop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = ids.New
	}
	if opts.Intn != nil {
		s.engine = session.NewEngineWithRand(opts.Intn)
	}

	ws, loadErr := s.persister.Load(ctx)
	if loadErr != nil {
		s.log.Error("load workspace failed", "error", loadErr)
	}

	if ws != nil && ws.Document != nil {
		if doc, err := revalidate(ws.Document); err != nil {
			s.log.Warn("stored document invalid, loading defaults", "error", err)
		} else {
			s.doc = doc
			s.warnPartition("storage")
		}
	}

	if s.doc == nil {
		doc, err := DefaultDocument()
		if err != nil {
			return nil, err
		}
		s.doc = doc
		s.log.Info("seeded default document", "topics", len(doc.Topics), "questions", len(doc.Questions))
		if loadErr != nil {
			return s, apperr.IO("load saved data", loadErr)
		}
		return s, s.persist(ctx)
	}

	if ws.ActiveUserID != "" && s.doc.User(ws.ActiveUserID) != nil {
		s.activeUserID = ws.ActiveUserID
	}
	if ws.Quiz != nil {
		if err := s.engine.Resume(s.doc, ws.Quiz); err != nil {
			s.log.Warn("discarding stale quiz", "error", err)
		} else {
			s.log.Info("resumed quiz", "user_id", ws.Quiz.UserID, "index", ws.Quiz.Index)
		}
	}
	return s, nil
}

// revalidate passes a stored document through the same gate as an import.
func revalidate(doc *catalog.Document) (*catalog.Document, error) {
	data, err := catalog.Encode(doc, false)
	if err != nil {
		return nil, err
	}
	return validate.Parse(data)
}

// warnPartition logs every user whose ledger does not hold each question
// exactly once. Such documents are still accepted.
func (s *Service) warnPartition(source string) {
	ids := s.doc.QuestionIDs()
	for i := range s.doc.Users {
		u := &s.doc.Users[i]
		if err := u.Progress.CheckPartition(ids); err != nil {
			s.log.Warn("ledger out of step with questions", "source", source, "user_id", u.ID, "error", err)
		}
	}
}

// persist saves the workspace. The in-memory state is kept either way.
func (s *Service) persist(ctx context.Context) error {
	ws := &Workspace{
		Document:     s.doc,
		ActiveUserID: s.activeUserID,
		Quiz:         s.engine.Snapshot(),
	}
	if err := s.persister.Save(ctx, ws); err != nil {
		s.log.Error("save workspace failed", "error", err)
		return apperr.IO("could not save (changes kept until exit)", err)
	}
	return nil
}
