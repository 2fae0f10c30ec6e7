package tracker

import (
	"context"
	"time"

	"github.com/abhisek/masterly/internal/catalog"
	"github.com/abhisek/masterly/internal/session"
	"github.com/abhisek/masterly/internal/store"
)

// Workspace is everything persisted between runs: the interchange document,
// the active user, and the quiz in progress if any.
type Workspace struct {
	Document     *catalog.Document
	ActiveUserID string
	Quiz         *session.Snapshot
}

// Persister is the local durable storage for the workspace.
type Persister interface {
	// Load returns the stored workspace, or nil if nothing was saved yet.
	Load(ctx context.Context) (*Workspace, error)
	Save(ctx context.Context, ws *Workspace) error
	// Clear removes every stored workspace.
	Clear(ctx context.Context) error
}

// History receives quiz lifecycle events.
type History interface {
	AppendQuizEvent(ctx context.Context, data store.QuizEventData) error
	QueryQuizEvents(ctx context.Context, userID string, opts store.QueryOpts) ([]store.QuizEvent, error)
}

// DefaultSnapshotsKept is how many workspace snapshots StorePersister retains.
const DefaultSnapshotsKept = 10

// StorePersister keeps the workspace as snapshots in the SQLite store.
type StorePersister struct {
	snaps store.SnapshotRepo
	keep  int
	now   func() time.Time
}

// NewStorePersister returns a persister over snaps that prunes to the most
// recent DefaultSnapshotsKept snapshots on every save.
func NewStorePersister(snaps store.SnapshotRepo) *StorePersister {
	return &StorePersister{snaps: snaps, keep: DefaultSnapshotsKept, now: time.Now}
}

func (p *StorePersister) Load(ctx context.Context) (*Workspace, error) {
	snap, err := p.snaps.Latest(ctx)
	if err != nil || snap == nil {
		return nil, err
	}
	doc := snap.Data.Document
	return &Workspace{
		Document:     &doc,
		ActiveUserID: snap.Data.ActiveUserID,
		Quiz:         snap.Data.Quiz,
	}, nil
}

func (p *StorePersister) Save(ctx context.Context, ws *Workspace) error {
	err := p.snaps.Save(ctx, &store.Snapshot{
		Timestamp: p.now(),
		Data: store.SnapshotData{
			Version:      store.SnapshotDataVersion,
			Document:     *ws.Document,
			ActiveUserID: ws.ActiveUserID,
			Quiz:         ws.Quiz,
		},
	})
	if err != nil {
		return err
	}
	return p.snaps.Prune(ctx, p.keep)
}

func (p *StorePersister) Clear(ctx context.Context) error {
	return p.snaps.Clear(ctx)
}
