package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/archguard/internal/domain"
)

// File is where runs are recorded, relative to the project root.
const File = ".archguard/history/runs.json"

// DefaultLimit caps how many runs are kept; older runs are dropped first.
const DefaultLimit = 500

// FileHistory implements domain.RunHistory using JSON file storage.
type FileHistory struct {
	limit int
}

func New() *FileHistory {
	return &FileHistory{limit: DefaultLimit}
}

// NewWithLimit keeps at most limit runs. A limit below one keeps everything.
func NewWithLimit(limit int) *FileHistory {
	return &FileHistory{limit: limit}
}

func (h *FileHistory) Save(projectPath string, entry domain.RunEntry) error {
	entries, err := h.Load(projectPath)
	if err != nil {
		return err
	}

	entries = append(entries, entry)
	if h.limit > 0 && len(entries) > h.limit {
		entries = entries[len(entries)-h.limit:]
	}

	fp := filepath.Join(projectPath, File)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(fp, data, 0644)
}

func (h *FileHistory) Load(projectPath string) ([]domain.RunEntry, error) {
	fp := filepath.Join(projectPath, File)

	data, err := os.ReadFile(fp)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.RunEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("reading %s: %w", File, err)
	}

	return entries, nil
}
