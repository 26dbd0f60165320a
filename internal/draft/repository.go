// Package draft is a local repository for compose-exam drafts, keyed by
// a draft identifier and independent of the exam-attempt lifecycle.
package draft

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/Tamarin/internal/errs"
	"github.com/rs/zerolog/log"
)

type DraftQuestion struct {
	Content string   `json:"content"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
	Answer  string   `json:"answer,omitempty"`
}

type ExamDraft struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Description       string          `json:"description,omitempty"`
	Duration          int             `json:"duration,omitempty"`
	PassingPercentage float64         `json:"passingPercentage,omitempty"`
	Questions         []DraftQuestion `json:"questions,omitempty"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// Repository persists drafts as one JSON file per draft under dir.
type Repository struct {
	mu  sync.Mutex
	dir string
}

func NewRepository(dir string) (*Repository, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("cannot create draft directory %s: %w", dir, err)
	}
	return &Repository{dir: dir}, nil
}

// Save persists the draft, assigning an id when it has none, and stamps
// UpdatedAt. Returns the stored draft.
func (r *Repository) Save(d ExamDraft) (ExamDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.UpdatedAt = time.Now()

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return ExamDraft{}, fmt.Errorf("cannot encode draft %s: %w", d.ID, err)
	}
	if err := os.WriteFile(r.path(d.ID), data, 0o600); err != nil {
		return ExamDraft{}, fmt.Errorf("cannot write draft %s: %w", d.ID, err)
	}
	log.Debug().Str("draftID", d.ID).Msg("Draft saved")
	return d, nil
}

// Get loads one draft by id.
func (r *Repository) Get(id string) (ExamDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, err := os.ReadFile(r.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ExamDraft{}, errs.New(errs.KindNotFound, fmt.Sprintf("draft %s not found", id))
		}
		return ExamDraft{}, fmt.Errorf("cannot read draft %s: %w", id, err)
	}
	var d ExamDraft
	if err := json.Unmarshal(data, &d); err != nil {
		return ExamDraft{}, fmt.Errorf("cannot decode draft %s: %w", id, err)
	}
	return d, nil
}

// List returns all drafts, most recently updated first.
func (r *Repository) List() ([]ExamDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("cannot list drafts: %w", err)
	}

	var drafts []ExamDraft
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(r.dir, entry.Name()))
		if err != nil {
			log.Warn().Err(err).Str("file", entry.Name()).Msg("Skipping unreadable draft")
			continue
		}
		var d ExamDraft
		if err := json.Unmarshal(data, &d); err != nil {
			log.Warn().Err(err).Str("file", entry.Name()).Msg("Skipping malformed draft")
			continue
		}
		drafts = append(drafts, d)
	}
	sort.Slice(drafts, func(i, j int) bool { return drafts[i].UpdatedAt.After(drafts[j].UpdatedAt) })
	return drafts, nil
}

// Delete removes a draft; deleting a missing draft is not an error.
func (r *Repository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := os.Remove(r.path(id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot delete draft %s: %w", id, err)
	}
	return nil
}

func (r *Repository) path(id string) string {
	return filepath.Join(r.dir, id+".json")
}
