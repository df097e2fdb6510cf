package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/vcashweb/internal/news"
)

// ErrNotFound is returned when no post has the requested id.
var ErrNotFound = errors.New("post not found")

// Import describes one ReplacePosts call.
type Import struct {
	Seq        int64     `json:"seq"`
	Source     string    `json:"source"`
	PostCount  int       `json:"posts"`
	ImportedAt time.Time `json:"importedAt"`
}

// ReplacePosts replaces the whole corpus with posts, keeping their order.
// The previous posts are removed and an import record is appended in the
// same transaction.
func (s *Store) ReplacePosts(ctx context.Context, source string, posts []news.Post) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace posts: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM posts`); err != nil {
		return fmt.Errorf("replace posts: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO posts (seq, id, title, body, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("replace posts: %w", err)
	}
	defer stmt.Close()

	for i, p := range posts {
		if _, err := stmt.ExecContext(ctx, i+1, string(p.ID), p.Title, p.Body, int64(p.Timestamp)); err != nil {
			return fmt.Errorf("replace posts: insert %q: %w", p.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO imports (source, post_count, imported_at)
		VALUES (?, ?, ?)
	`, source, len(posts), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("replace posts: record import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace posts: %w", err)
	}
	return nil
}

// ListPosts returns every post in import order.
// Returns an empty slice (not nil) when the repository is empty.
func (s *Store) ListPosts(ctx context.Context) ([]news.Post, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, body, timestamp
		FROM posts
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []news.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("list posts: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// GetPost returns the last post with the given id, matching the
// last-write-wins rule of the store's byId view.
func (s *Store) GetPost(ctx context.Context, id news.ID) (news.Post, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, body, timestamp
		FROM posts
		WHERE id = ?
		ORDER BY seq DESC
		LIMIT 1
	`, string(id))
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return news.Post{}, fmt.Errorf("get post %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return news.Post{}, fmt.Errorf("get post %q: %w", id, err)
	}
	return p, nil
}

// CountPosts returns the number of stored posts.
func (s *Store) CountPosts(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

// ListImports returns the import history, oldest first.
func (s *Store) ListImports(ctx context.Context) ([]Import, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, source, post_count, imported_at
		FROM imports
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list imports: %w", err)
	}
	defer rows.Close()

	imports := []Import{}
	for rows.Next() {
		var imp Import
		var at int64
		if err := rows.Scan(&imp.Seq, &imp.Source, &imp.PostCount, &at); err != nil {
			return nil, fmt.Errorf("list imports: %w", err)
		}
		imp.ImportedAt = time.Unix(at, 0).UTC()
		imports = append(imports, imp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list imports: %w", err)
	}
	return imports, nil
}

// Fetcher exposes the repository as a news source for in-process stores.
func (s *Store) Fetcher() news.Fetcher {
	return news.FetcherFunc(s.ListPosts)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (news.Post, error) {
	var p news.Post
	var id string
	var ts int64
	if err := row.Scan(&id, &p.Title, &p.Body, &ts); err != nil {
		return news.Post{}, err
	}
	p.ID = news.ID(id)
	p.Timestamp = news.Timestamp(ts)
	return p, nil
}
