// Package store persists the wallpaper library in SQLite.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"wallshift/internal/types"
)

//go:embed schema.sql
var schemaSQL string

// ErrWallpaperNotFound is returned when a lookup id matches no record.
var ErrWallpaperNotFound = errors.New("wallpaper not found")

// Store manages wallpaper persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to the wallpaper database and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

const wallpaperColumns = `id, source_type, source_id, source_url, width, height,
	tags, file_path, added_at, last_used, use_count`

// Insert adds or replaces a wallpaper record.
func (s *Store) Insert(ctx context.Context, wp *types.Wallpaper) error {
	tagsJSON, err := json.Marshal(wp.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO wallpapers (`+wallpaperColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		wp.ID,
		string(wp.SourceType),
		wp.SourceID,
		nullableString(wp.SourceURL),
		wp.Width,
		wp.Height,
		string(tagsJSON),
		wp.FilePath,
		wp.AddedAt,
		nullableString(wp.LastUsed),
		wp.UseCount,
	)
	if err != nil {
		return fmt.Errorf("insert wallpaper: %w", err)
	}
	return nil
}

// Get fetches a wallpaper by id. Returns ErrWallpaperNotFound on a miss.
func (s *Store) Get(ctx context.Context, id string) (*types.Wallpaper, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+wallpaperColumns+` FROM wallpapers WHERE id = ?`, id)
	wp, err := scanWallpaper(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrWallpaperNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get wallpaper: %w", err)
	}
	return wp, nil
}

// List returns every wallpaper, newest first.
func (s *Store) List(ctx context.Context) ([]types.Wallpaper, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+wallpaperColumns+` FROM wallpapers ORDER BY added_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list wallpapers: %w", err)
	}
	defer rows.Close()

	var wallpapers []types.Wallpaper
	for rows.Next() {
		wp, err := scanWallpaper(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wallpaper: %w", err)
		}
		wallpapers = append(wallpapers, *wp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallpapers: %w", err)
	}
	return wallpapers, nil
}

// Delete removes a wallpaper record. Reports whether a row was removed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM wallpapers WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete wallpaper: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// MarkUsed stamps last_used and bumps use_count.
func (s *Store) MarkUsed(ctx context.Context, id string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx,
		`UPDATE wallpapers SET last_used = ?, use_count = use_count + 1 WHERE id = ?`,
		now, id)
	if err != nil {
		return fmt.Errorf("mark used: %w", err)
	}
	return nil
}

// Count returns the number of stored wallpapers.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM wallpapers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count wallpapers: %w", err)
	}
	return count, nil
}

// Exists reports whether a wallpaper id is present.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM wallpapers WHERE id = ?`, id).Scan(&count); err != nil {
		return false, fmt.Errorf("check wallpaper: %w", err)
	}
	return count > 0, nil
}

// BySource fetches a wallpaper by its provider identity, used to avoid
// downloading the same image twice.
func (s *Store) BySource(ctx context.Context, sourceType types.SourceType, sourceID string) (*types.Wallpaper, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+wallpaperColumns+` FROM wallpapers
		 WHERE source_type = ? AND source_id = ?`,
		string(sourceType), sourceID)
	wp, err := scanWallpaper(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", ErrWallpaperNotFound, sourceType, sourceID)
	}
	if err != nil {
		return nil, fmt.Errorf("get wallpaper by source: %w", err)
	}
	return wp, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWallpaper(row rowScanner) (*types.Wallpaper, error) {
	var (
		wp        types.Wallpaper
		srcType   string
		sourceURL sql.NullString
		tagsJSON  string
		lastUsed  sql.NullString
	)
	err := row.Scan(
		&wp.ID,
		&srcType,
		&wp.SourceID,
		&sourceURL,
		&wp.Width,
		&wp.Height,
		&tagsJSON,
		&wp.FilePath,
		&wp.AddedAt,
		&lastUsed,
		&wp.UseCount,
	)
	if err != nil {
		return nil, err
	}
	wp.SourceType = types.SourceType(srcType)
	wp.SourceURL = sourceURL.String
	wp.LastUsed = lastUsed.String
	if err := json.Unmarshal([]byte(tagsJSON), &wp.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	return &wp, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
