package draft

import (
	"testing"
	"time"

	"github.com/lshigami/Tamarin/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAssignsIDAndRoundTrips(t *testing.T) {
	repo, err := NewRepository(t.TempDir())
	require.NoError(t, err)

	saved, err := repo.Save(ExamDraft{
		Title:    "Midterm draft",
		Duration: 45,
		Questions: []DraftQuestion{
			{Content: "2+2?", Type: "multiple_choice", Options: []string{"3", "4"}, Answer: "4"},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.UpdatedAt.IsZero())

	got, err := repo.Get(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Midterm draft", got.Title)
	require.Len(t, got.Questions, 1)
	assert.Equal(t, "4", got.Questions[0].Answer)
}

func TestSaveKeepsExistingID(t *testing.T) {
	repo, err := NewRepository(t.TempDir())
	require.NoError(t, err)

	first, err := repo.Save(ExamDraft{Title: "v1"})
	require.NoError(t, err)
	second, err := repo.Save(ExamDraft{ID: first.ID, Title: "v2"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	got, err := repo.Get(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Title)
}

func TestListNewestFirst(t *testing.T) {
	repo, err := NewRepository(t.TempDir())
	require.NoError(t, err)

	older, err := repo.Save(ExamDraft{Title: "older"})
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	newer, err := repo.Save(ExamDraft{Title: "newer"})
	require.NoError(t, err)

	drafts, err := repo.List()
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, newer.ID, drafts[0].ID)
	assert.Equal(t, older.ID, drafts[1].ID)
}

func TestGetMissingDraft(t *testing.T) {
	repo, err := NewRepository(t.TempDir())
	require.NoError(t, err)

	_, err = repo.Get("nope")
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindNotFound))
}

func TestDeleteIsIdempotent(t *testing.T) {
	repo, err := NewRepository(t.TempDir())
	require.NoError(t, err)

	saved, err := repo.Save(ExamDraft{Title: "gone soon"})
	require.NoError(t, err)
	require.NoError(t, repo.Delete(saved.ID))
	require.NoError(t, repo.Delete(saved.ID))

	_, err = repo.Get(saved.ID)
	assert.True(t, errs.IsKind(err, errs.KindNotFound))
}
