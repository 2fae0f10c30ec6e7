package store

import (
	"context"
	"time"

	"github.com/abhisek/masterly/internal/catalog"
	"github.com/abhisek/masterly/internal/session"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int   // max results (0 = unlimited)
	After  int64 // sequence > After
	Before int64 // sequence < Before
}

// SnapshotDataVersion is written into every saved snapshot.
const SnapshotDataVersion = 1

// SnapshotData is the persisted workspace: the interchange document plus
// what is needed to pick up where the user left off.
type SnapshotData struct {
	Version      int               `json:"version"`
	Document     catalog.Document  `json:"document"`
	ActiveUserID string            `json:"activeUserId,omitempty"`
	Quiz         *session.Snapshot `json:"quiz,omitempty"`
}

// Snapshot represents a point-in-time capture of the workspace.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages workspace snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot. Sequence is assigned when zero.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error

	// Clear deletes every snapshot.
	Clear(ctx context.Context) error
}

// Quiz event actions.
const (
	QuizActionStart  = "start"
	QuizActionFinish = "finish"
)

// QuizEventData captures one quiz lifecycle event.
type QuizEventData struct {
	Action   string
	UserID   string
	Username string
	PoolSize int
	Answered int
	Correct  int
	Early    bool
}

// QuizEvent is a stored QuizEventData.
type QuizEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	QuizEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestEvent is a stored LLMRequestEventData.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendQuizEvent records a quiz start or finish.
	AppendQuizEvent(ctx context.Context, data QuizEventData) error

	// QueryQuizEvents returns quiz events newest first. An empty userID
	// matches every user.
	QueryQuizEvents(ctx context.Context, userID string, opts QueryOpts) ([]QuizEvent, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMRequests returns LLM request events newest first.
	QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)
}
