package application

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/abdidvp/archguard/internal/domain"
	"github.com/google/uuid"
)

// HistoryService records check runs so regressions show up over time.
type HistoryService struct {
	history domain.RunHistory
	git     domain.GitInfo
	logger  *slog.Logger
	now     func() time.Time
}

func NewHistoryService(history domain.RunHistory, git domain.GitInfo, logger *slog.Logger) *HistoryService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &HistoryService{history: history, git: git, logger: logger, now: time.Now}
}

// Record appends a run for rep. The commit hash is attached when the project
// is a git work tree with at least one commit.
func (s *HistoryService) Record(projectPath string, rep *domain.Report) (domain.RunEntry, error) {
	entry := domain.RunEntry{
		RunID:     uuid.NewString(),
		Timestamp: s.now().UTC().Format(time.RFC3339),
		Passed:    rep.Passed,
		Errors:    rep.Summary.Errors,
		Warnings:  rep.Summary.Warnings,
		Modules:   rep.Modules,
		Edges:     rep.Edges,
	}
	if s.git != nil && s.git.IsGitRepo(projectPath) {
		if hash, err := s.git.CommitHash(projectPath); err == nil {
			entry.CommitHash = hash
		} else {
			s.logger.Debug("no commit hash for run", "error", err)
		}
	}

	if err := s.history.Save(projectPath, entry); err != nil {
		return domain.RunEntry{}, fmt.Errorf("recording run: %w", err)
	}
	s.logger.Info("run recorded", "run_id", entry.RunID, "commit", entry.CommitHash)
	return entry, nil
}

// List returns recorded runs, oldest first.
func (s *HistoryService) List(projectPath string) ([]domain.RunEntry, error) {
	entries, err := s.history.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	return entries, nil
}
