// Package store persists scrob records in a local sqlite database.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/scrob/internal/scrobble"
)

const (
	appName    = "scrob"
	dbFileName = "scrob.db"
)

// DefaultPath returns the database location under the XDG data directory.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// Store is the persistence gateway for scrob records. Records are append
// only: this tool never mutates or deletes them.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS scrobs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			album_artist TEXT NOT NULL,
			album TEXT NOT NULL,
			title TEXT NOT NULL,
			duration INTEGER NOT NULL DEFAULT 0,
			musicbrainz_trackid TEXT,
			at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_scrobs_at ON scrobs(at);
	`)
	return err
}

// Insert writes one record and returns its assigned id.
func (s *Store) Insert(rec scrobble.Record) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO scrobs (album_artist, album, title, duration, musicbrainz_trackid, at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.AlbumArtist, rec.Album, rec.Title, rec.Duration, nullString(rec.MBTrackID), rec.At.Unix())
	if err != nil {
		return 0, fmt.Errorf("insert scrob: %w", err)
	}
	return res.LastInsertId()
}

// Since returns all records with at >= since, ascending by at then id.
func (s *Store) Since(since time.Time) ([]scrobble.Record, error) {
	rows, err := s.db.Query(`
		SELECT id, album_artist, album, title, duration, musicbrainz_trackid, at
		FROM scrobs
		WHERE at >= ?
		ORDER BY at ASC, id ASC
	`, since.Unix())
	if err != nil {
		return nil, fmt.Errorf("query scrobs: %w", err)
	}
	defer rows.Close()

	var records []scrobble.Record
	for rows.Next() {
		var rec scrobble.Record
		var mbid sql.NullString
		var at int64

		if err := rows.Scan(&rec.ID, &rec.AlbumArtist, &rec.Album, &rec.Title,
			&rec.Duration, &mbid, &at); err != nil {
			return nil, fmt.Errorf("scan scrob: %w", err)
		}

		rec.MBTrackID = mbid.String
		rec.At = time.Unix(at, 0)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// nullString stores empty strings as NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
