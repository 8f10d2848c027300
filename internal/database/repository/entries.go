package repository

import (
	"context"
	"database/sql"
	"strings"
)

// EntryFilters defines list filters.
type EntryFilters struct {
	ParentID *string // nil = root level
	Kind     Kind    // empty = both kinds
	Search   string
}

// EntryRepo handles virtual file-system entries.
type EntryRepo struct {
	db *sql.DB
}

func NewEntryRepo(db *sql.DB) *EntryRepo { return &EntryRepo{db: db} }

// Insert writes the entry and its tag sequence in one transaction so a
// failed tag attach never leaves a half-written entry.
func (r *EntryRepo) Insert(ctx context.Context, e Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
	INSERT INTO entries(
	 id, parent_id, kind, name, priority, difficulty, streak, category,
	 completion_rate, created_at, modified_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`,
		e.ID, e.ParentID, e.Kind, e.Name, e.Priority, e.Difficulty, e.Streak,
		e.Category, e.CompletionRate)
	if err != nil {
		return err
	}
	for i, t := range e.Tags {
		if err := attachTag(ctx, tx, e.ID, t, i); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *EntryRepo) Get(ctx context.Context, id string) (*Entry, error) {
	row := r.db.QueryRowContext(ctx, selectEntryColumns+` WHERE id = ?`, id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadTags(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *EntryRepo) Rename(ctx context.Context, id, name string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE entries SET name = ?, modified_at=CURRENT_TIMESTAMP WHERE id = ?`, name, id)
	return err
}

func (r *EntryRepo) UpdateProgress(ctx context.Context, id string, streak int, rate float64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE entries SET streak = ?, completion_rate = ?, modified_at=CURRENT_TIMESTAMP WHERE id = ?`, streak, rate, id)
	return err
}

// Delete removes an entry. Children, tag links and completions cascade.
func (r *EntryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	return err
}

func (r *EntryRepo) List(ctx context.Context, f EntryFilters) ([]Entry, error) {
	var where []string
	var args []interface{}

	if f.ParentID == nil {
		where = append(where, "parent_id IS NULL")
	} else {
		where = append(where, "parent_id = ?")
		args = append(args, *f.ParentID)
	}
	if f.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, f.Kind)
	}
	if f.Search != "" {
		where = append(where, "name LIKE ?")
		args = append(args, "%"+f.Search+"%")
	}

	query := selectEntryColumns + " WHERE " + strings.Join(where, " AND ")
	// folders first, then alphabetical, matching file-manager convention
	query += ` ORDER BY CASE kind WHEN 'folder' THEN 0 ELSE 1 END, name COLLATE NOCASE`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.loadTags(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// SetTags replaces the entry's tag sequence, creating tag rows as needed.
// Delete and re-attach run in one transaction; on any failure the previous
// sequence survives intact.
func (r *EntryRepo) SetTags(ctx context.Context, entryID string, names []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entry_tags WHERE entry_id = ?`, entryID); err != nil {
		return err
	}
	for i, name := range names {
		if err := attachTag(ctx, tx, entryID, Tag{Name: name}, i); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// MarkDone records a completion for the given day. Returns false when the
// day was already recorded.
func (r *EntryRepo) MarkDone(ctx context.Context, entryID, doneOn string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO completions(entry_id, done_on) VALUES(?, ?)`, entryID, doneOn)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Completions returns the recorded days for an entry, most recent first.
func (r *EntryRepo) Completions(ctx context.Context, entryID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT done_on FROM completions WHERE entry_id = ? ORDER BY done_on DESC`, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

const selectEntryColumns = `SELECT id, parent_id, kind, name, priority, difficulty, streak, category, completion_rate, created_at, modified_at FROM entries`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var e Entry
	if err := row.Scan(&e.ID, &e.ParentID, &e.Kind, &e.Name, &e.Priority,
		&e.Difficulty, &e.Streak, &e.Category, &e.CompletionRate,
		&e.CreatedAt, &e.ModifiedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EntryRepo) loadTags(ctx context.Context, e *Entry) error {
	rows, err := r.db.QueryContext(ctx, `
	SELECT t.id, t.name FROM tags t
	JOIN entry_tags et ON et.tag_id = t.id
	WHERE et.entry_id = ?
	ORDER BY et.position`, e.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	e.Tags = nil
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return err
		}
		e.Tags = append(e.Tags, t)
	}
	return rows.Err()
}

func attachTag(ctx context.Context, tx *sql.Tx, entryID string, t Tag, position int) error {
	id := t.ID
	if id == "" {
		// look up or create by name
		row := tx.QueryRowContext(ctx, `SELECT id FROM tags WHERE name = ?`, t.Name)
		if err := row.Scan(&id); err == sql.ErrNoRows {
			id = deterministicTagID(t.Name)
			if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO tags(id, name) VALUES(?, ?)`, id, t.Name); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	_, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO entry_tags(entry_id, tag_id, position) VALUES(?, ?, ?)`, entryID, id, position)
	return err
}
