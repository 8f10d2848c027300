package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"habitfs/internal/database/repository"
)

// SeedDefaults ensures a starter habit tree exists for new databases.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	repo := repository.NewEntryRepo(db)
	existing, err := repo.List(ctx, repository.EntryFilters{})
	if err == nil && len(existing) > 0 {
		return nil
	}

	type seed struct {
		folder string
		name   string
		prio   string
		diff   string
		cat    string
		tags   []string
	}
	seeds := []seed{
		{folder: "Health", name: "Morning run", prio: "high", diff: "hard", cat: "fitness", tags: []string{"outdoor", "cardio"}},
		{folder: "Health", name: "Drink water", prio: "medium", diff: "easy", cat: "fitness"},
		{folder: "Learning", name: "Read 20 pages", prio: "medium", diff: "medium", cat: "books", tags: []string{"evening"}},
		{folder: "", name: "Journal", prio: "low", diff: "easy", cat: "mindfulness"},
	}

	folderIDs := map[string]string{}
	for _, s := range seeds {
		var parentID *string
		if s.folder != "" {
			id, ok := folderIDs[s.folder]
			if !ok {
				id = uuid.NewSHA1(uuid.NameSpaceOID, []byte("folder:"+s.folder)).String()
				if err := repo.Insert(ctx, repository.Entry{
					ID:   id,
					Kind: repository.KindFolder,
					Name: s.folder,
				}); err != nil {
					return err
				}
				folderIDs[s.folder] = id
			}
			parentID = &id
		}
		var tags []repository.Tag
		for _, t := range s.tags {
			tags = append(tags, repository.Tag{Name: t})
		}
		prio, diff, cat := s.prio, s.diff, s.cat
		zero := 0
		rate := 0.0
		if err := repo.Insert(ctx, repository.Entry{
			ID:             uuid.NewSHA1(uuid.NameSpaceOID, []byte("habit:"+s.folder+"/"+s.name)).String(),
			ParentID:       parentID,
			Kind:           repository.KindFile,
			Name:           s.name,
			Priority:       &prio,
			Difficulty:     &diff,
			Streak:         &zero,
			Category:       &cat,
			CompletionRate: &rate,
			Tags:           tags,
		}); err != nil {
			return err
		}
	}
	return nil
}
