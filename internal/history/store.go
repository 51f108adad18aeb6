// Package history persists finished posts and their revision trail.
//
// Every draft the user opens in the editor is recorded here, and each
// accepted refinement appends a revision row. The store is the backing
// for the `pf history` command and lets a user recover a post after
// closing the app.
//
// Store is safe for concurrent use; sql.DB serializes access.
package history

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// Entry is a saved post with its latest content.
type Entry struct {
	ID        string
	Topic     string
	Title     string
	Content   string
	Hashtags  []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Revision is one accepted refinement of a post.
type Revision struct {
	PostID      string
	Seq         int
	Instruction string
	Content     string
	CreatedAt   time.Time
}

// Store persists posts and revisions in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens (and if necessary creates) the database at path.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS posts (
		id TEXT PRIMARY KEY,
		topic TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		hashtags TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_posts_updated ON posts(updated_at DESC);

	CREATE TABLE IF NOT EXISTS revisions (
		post_id TEXT NOT NULL REFERENCES posts(id),
		seq INTEGER NOT NULL,
		instruction TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		PRIMARY KEY (post_id, seq)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SavePost inserts or updates a post. The hashtag list round-trips
// through a space-joined column; tags never contain spaces.
func (s *Store) SavePost(e Entry) error {
	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	_, err := s.db.Exec(`
		INSERT INTO posts (id, topic, title, content, hashtags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content = excluded.content,
			hashtags = excluded.hashtags,
			updated_at = excluded.updated_at
	`, e.ID, e.Topic, e.Title, e.Content, strings.Join(e.Hashtags, " "), e.CreatedAt, now)
	if err != nil {
		return fmt.Errorf("failed to save post: %w", err)
	}
	return nil
}

// UpdateContent replaces a post's content, leaving the rest untouched.
func (s *Store) UpdateContent(id, content string) error {
	result, err := s.db.Exec(
		"UPDATE posts SET content = ?, updated_at = ? WHERE id = ?",
		content, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("post not found: %s", id)
	}
	return nil
}

// AddRevision appends a revision for a post, assigning the next
// sequence number atomically.
func (s *Store) AddRevision(postID, instruction, content string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var next int
	if err := tx.QueryRow(
		"SELECT COALESCE(MAX(seq), 0) + 1 FROM revisions WHERE post_id = ?", postID,
	).Scan(&next); err != nil {
		return fmt.Errorf("failed to compute revision seq: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO revisions (post_id, seq, instruction, content, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, postID, next, instruction, content, time.Now()); err != nil {
		return fmt.Errorf("failed to save revision: %w", err)
	}

	return tx.Commit()
}

// RecentPosts returns the most recently updated posts, newest first.
func (s *Store) RecentPosts(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, topic, title, content, hashtags, created_at, updated_at
		FROM posts
		ORDER BY updated_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var tags string
		if err := rows.Scan(&e.ID, &e.Topic, &e.Title, &e.Content, &tags, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		if tags != "" {
			e.Hashtags = strings.Fields(tags)
		} else {
			e.Hashtags = []string{}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return entries, nil
}

// GetPost returns a post by ID, or sql.ErrNoRows if absent.
func (s *Store) GetPost(id string) (Entry, error) {
	var e Entry
	var tags string
	err := s.db.QueryRow(`
		SELECT id, topic, title, content, hashtags, created_at, updated_at
		FROM posts WHERE id = ?
	`, id).Scan(&e.ID, &e.Topic, &e.Title, &e.Content, &tags, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return Entry{}, err
	}
	if tags != "" {
		e.Hashtags = strings.Fields(tags)
	} else {
		e.Hashtags = []string{}
	}
	return e, nil
}

// Revisions returns a post's revisions in sequence order.
func (s *Store) Revisions(postID string) ([]Revision, error) {
	rows, err := s.db.Query(`
		SELECT post_id, seq, instruction, content, created_at
		FROM revisions
		WHERE post_id = ?
		ORDER BY seq
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query revisions: %w", err)
	}
	defer rows.Close()

	var revs []Revision
	for rows.Next() {
		var r Revision
		if err := rows.Scan(&r.PostID, &r.Seq, &r.Instruction, &r.Content, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan revision: %w", err)
		}
		revs = append(revs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return revs, nil
}

// PostCount returns the number of saved posts.
func (s *Store) PostCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM posts").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
