package tracker

import (
	"context"
	"os"

	"github.com/abhisek/masterly/internal/apperr"
	"github.com/abhisek/masterly/internal/catalog"
	"github.com/abhisek/masterly/internal/validate"
)

// ExportFileName is the suggested name for exported documents.
const ExportFileName = "mastery_learning_data.json"

// Export renders the document for a file. The active user and quiz are not
// part of it.
func (s *Service) Export() ([]byte, error) {
	return catalog.Encode(s.doc, true)
}

// ExportFile writes the document to path.
func (s *Service) ExportFile(path string) error {
	data, err := s.Export()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperr.IO("write "+path, err)
	}
	s.log.Info("exported document", "path", path, "bytes", len(data))
	return nil
}

// Import validates raw and replaces the whole document with it. The active
// user is cleared if the new document does not contain it. Refused while a
// quiz is in progress.
func (s *Service) Import(ctx context.Context, raw []byte) error {
	if s.engine.InProgress() {
		return apperr.Precondition(apperr.ReasonQuizInProgress, "finish the current quiz before loading data")
	}
	doc, err := validate.Parse(raw)
	if err != nil {
		s.log.Warn("import rejected", "error", err)
		return err
	}

	s.doc = doc
	s.warnPartition("import")
	if s.activeUserID != "" && doc.User(s.activeUserID) == nil {
		s.activeUserID = ""
	}
	s.log.Info("imported document", "users", len(doc.Users), "topics", len(doc.Topics), "questions", len(doc.Questions))
	return s.persist(ctx)
}

// ImportFile reads path and imports it.
func (s *Service) ImportFile(ctx context.Context, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return apperr.IO("read "+path, err)
	}
	return s.Import(ctx, raw)
}

// Reset discards every user, topic and question, the active user and any
// quiz, and clears local storage. The next Open seeds the default document.
func (s *Service) Reset(ctx context.Context) error {
	s.engine.Reset()
	s.doc = catalog.Empty()
	s.activeUserID = ""
	s.log.Info("workspace reset")

	if err := s.persister.Clear(ctx); err != nil {
		s.log.Error("clear storage failed", "error", err)
		return apperr.IO("clear saved data", err)
	}
	return nil
}
