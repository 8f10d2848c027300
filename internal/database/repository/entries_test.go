package repository_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"habitfs/internal/database"
	"habitfs/internal/database/repository"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	migrations, err := filepath.Abs("../migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrationsWithDB(db, migrations))
	return db
}

func TestEntryInsertGet(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	repo := repository.NewEntryRepo(testDB(t))

	priority := repository.PriorityHigh
	difficulty := repository.DifficultyHard
	category := "fitness"
	streak := 4
	rate := 62.5

	require.NoError(t, repo.Insert(ctx, repository.Entry{
		ID:             "h1",
		Kind:           repository.KindFile,
		Name:           "Morning run",
		Priority:       &priority,
		Difficulty:     &difficulty,
		Streak:         &streak,
		Category:       &category,
		CompletionRate: &rate,
		Tags:           []repository.Tag{{Name: "outdoor"}, {Name: "cardio"}},
	}))

	e, err := repo.Get(ctx, "h1")
	require.NoError(t, err)
	require.NotNil(t, e)
	require.Equal(t, "Morning run", e.Name)
	require.Equal(t, repository.KindFile, e.Kind)
	require.Equal(t, repository.PriorityHigh, *e.Priority)
	require.Equal(t, repository.DifficultyHard, *e.Difficulty)
	require.Equal(t, 4, *e.Streak)
	require.Equal(t, "fitness", *e.Category)
	require.InDelta(t, 62.5, *e.CompletionRate, 0.01)
	require.Len(t, e.Tags, 2)
	require.Equal(t, "outdoor", e.Tags[0].Name)
	require.Equal(t, "cardio", e.Tags[1].Name)

	missing, err := repo.Get(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestEntryListOrdering(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	repo := repository.NewEntryRepo(testDB(t))

	require.NoError(t, repo.Insert(ctx, repository.Entry{ID: "a", Kind: repository.KindFile, Name: "zebra habit"}))
	require.NoError(t, repo.Insert(ctx, repository.Entry{ID: "b", Kind: repository.KindFolder, Name: "Work"}))
	require.NoError(t, repo.Insert(ctx, repository.Entry{ID: "c", Kind: repository.KindFile, Name: "Apple habit"}))
	require.NoError(t, repo.Insert(ctx, repository.Entry{ID: "d", Kind: repository.KindFolder, Name: "health"}))

	list, err := repo.List(ctx, repository.EntryFilters{})
	require.NoError(t, err)
	require.Len(t, list, 4)

	// folders first, each group alphabetical and case-insensitive
	require.Equal(t, []string{"health", "Work", "Apple habit", "zebra habit"},
		[]string{list[0].Name, list[1].Name, list[2].Name, list[3].Name})
}

func TestEntryListScopedToParent(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	repo := repository.NewEntryRepo(testDB(t))

	require.NoError(t, repo.Insert(ctx, repository.Entry{ID: "folder", Kind: repository.KindFolder, Name: "Health"}))
	parent := "folder"
	require.NoError(t, repo.Insert(ctx, repository.Entry{ID: "child", ParentID: &parent, Kind: repository.KindFile, Name: "Run"}))
	require.NoError(t, repo.Insert(ctx, repository.Entry{ID: "root-habit", Kind: repository.KindFile, Name: "Journal"}))

	root, err := repo.List(ctx, repository.EntryFilters{})
	require.NoError(t, err)
	require.Len(t, root, 2)
	for _, e := range root {
		require.NotEqual(t, "child", e.ID)
	}

	children, err := repo.List(ctx, repository.EntryFilters{ParentID: &parent})
	require.NoError(t, err)
	require.Len(t, children, 1)
	require.Equal(t, "child", children[0].ID)
}

func TestEntryListFilters(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	repo := repository.NewEntryRepo(testDB(t))

	require.NoError(t, repo.Insert(ctx, repository.Entry{ID: "f", Kind: repository.KindFolder, Name: "Health"}))
	require.NoError(t, repo.Insert(ctx, repository.Entry{ID: "h", Kind: repository.KindFile, Name: "Morning run"}))

	folders, err := repo.List(ctx, repository.EntryFilters{Kind: repository.KindFolder})
	require.NoError(t, err)
	require.Len(t, folders, 1)
	require.Equal(t, "f", folders[0].ID)

	byName, err := repo.List(ctx, repository.EntryFilters{Search: "run"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	require.Equal(t, "h", byName[0].ID)
}

func TestEntryRename(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	repo := repository.NewEntryRepo(testDB(t))

	require.NoError(t, repo.Insert(ctx, repository.Entry{ID: "h", Kind: repository.KindFile, Name: "Old"}))
	require.NoError(t, repo.Rename(ctx, "h", "New"))

	e, err := repo.Get(ctx, "h")
	require.NoError(t, err)
	require.Equal(t, "New", e.Name)
}

func TestEntryDeleteCascades(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db := testDB(t)
	repo := repository.NewEntryRepo(db)

	require.NoError(t, repo.Insert(ctx, repository.Entry{ID: "folder", Kind: repository.KindFolder, Name: "Health"}))
	parent := "folder"
	require.NoError(t, repo.Insert(ctx, repository.Entry{
		ID: "child", ParentID: &parent, Kind: repository.KindFile, Name: "Run",
		Tags: []repository.Tag{{Name: "outdoor"}},
	}))
	_, err := repo.MarkDone(ctx, "child", "2026-03-10")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "folder"))

	e, err := repo.Get(ctx, "child")
	require.NoError(t, err)
	require.Nil(t, e)

	var links, completions int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entry_tags").Scan(&links))
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM completions").Scan(&completions))
	require.Equal(t, 0, links)
	require.Equal(t, 0, completions)
}

func TestSetTagsReplacesSequence(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	repo := repository.NewEntryRepo(testDB(t))

	require.NoError(t, repo.Insert(ctx, repository.Entry{
		ID: "h", Kind: repository.KindFile, Name: "Run",
		Tags: []repository.Tag{{Name: "a"}, {Name: "b"}},
	}))

	before, err := repo.Get(ctx, "h")
	require.NoError(t, err)
	require.Len(t, before.Tags, 2)
	originalA := before.Tags[0].ID

	require.NoError(t, repo.SetTags(ctx, "h", []string{"c", "a"}))

	e, err := repo.Get(ctx, "h")
	require.NoError(t, err)
	require.Len(t, e.Tags, 2)
	require.Equal(t, "c", e.Tags[0].Name)
	require.Equal(t, "a", e.Tags[1].Name)
	// "a" keeps its original tag row
	require.Equal(t, originalA, e.Tags[1].ID)
}

func TestSetTagsRollsBackOnFailure(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db := testDB(t)
	repo := repository.NewEntryRepo(db)

	// the entry does not exist, so linking fails on the foreign key after
	// the tag row was already created inside the transaction
	err := repo.SetTags(ctx, "missing-entry", []string{"ghost"})
	require.Error(t, err)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tags WHERE name = 'ghost'`).Scan(&n))
	require.Equal(t, 0, n)
}

func TestMarkDoneIdempotentPerDay(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	repo := repository.NewEntryRepo(testDB(t))

	require.NoError(t, repo.Insert(ctx, repository.Entry{ID: "h", Kind: repository.KindFile, Name: "Run"}))

	inserted, err := repo.MarkDone(ctx, "h", "2026-03-10")
	require.NoError(t, err)
	require.True(t, inserted)

	inserted, err = repo.MarkDone(ctx, "h", "2026-03-10")
	require.NoError(t, err)
	require.False(t, inserted)

	inserted, err = repo.MarkDone(ctx, "h", "2026-03-11")
	require.NoError(t, err)
	require.True(t, inserted)

	days, err := repo.Completions(ctx, "h")
	require.NoError(t, err)
	require.Equal(t, []string{"2026-03-11", "2026-03-10"}, days)
}
