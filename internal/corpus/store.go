// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pubmed-miner/pkg/types"
)

// Store caches the article corpus in a SQLite database so repeated engine
// runs skip the JSONL parse. Upserts keep the last record per PMID, the
// same dedup rule the loader applies.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the article database at path, creating parent
// directories and the schema as needed.
func OpenStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS articles (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			pmid TEXT NOT NULL UNIQUE,
			title TEXT,
			abstract TEXT,
			authors TEXT,
			journal TEXT,
			year INTEGER,
			doi TEXT,
			citation_apa TEXT,
			publication_types TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_year ON articles(year)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_journal ON articles(journal)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Upsert writes articles in one transaction. An existing PMID is replaced
// by the incoming record.
func (s *Store) Upsert(ctx context.Context, articles []types.Article) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO articles (pmid, title, abstract, authors, journal, year, doi, citation_apa, publication_types)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(pmid) DO UPDATE SET
			title=excluded.title, abstract=excluded.abstract, authors=excluded.authors,
			journal=excluded.journal, year=excluded.year, doi=excluded.doi,
			citation_apa=excluded.citation_apa, publication_types=excluded.publication_types`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range articles {
		authorsJSON, _ := json.Marshal(a.Authors)
		typesJSON, _ := json.Marshal(a.PublicationTypes)

		var year any
		if a.Year > 0 {
			year = a.Year
		}

		if _, err := stmt.ExecContext(ctx,
			a.PMID, a.Title, a.Abstract, string(authorsJSON), a.Journal,
			year, a.DOI, a.CitationAPA, string(typesJSON),
		); err != nil {
			return fmt.Errorf("inserting article %s: %w", a.PMID, err)
		}
	}

	return tx.Commit()
}

// LoadAll returns all cached articles in insertion order. An empty cache
// yields ErrNoRecords.
func (s *Store) LoadAll(ctx context.Context) ([]types.Article, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT pmid, title, abstract, authors, journal, year, doi, citation_apa, publication_types
		 FROM articles ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying articles: %w", err)
	}
	defer rows.Close()

	var articles []types.Article
	for rows.Next() {
		var (
			a         types.Article
			authors   sql.NullString
			year      sql.NullInt64
			typesJSON sql.NullString
		)
		if err := rows.Scan(
			&a.PMID, &a.Title, &a.Abstract, &authors, &a.Journal,
			&year, &a.DOI, &a.CitationAPA, &typesJSON,
		); err != nil {
			return nil, fmt.Errorf("scanning article: %w", err)
		}
		if authors.Valid {
			json.Unmarshal([]byte(authors.String), &a.Authors)
		}
		if year.Valid {
			a.Year = int(year.Int64)
		}
		if typesJSON.Valid {
			json.Unmarshal([]byte(typesJSON.String), &a.PublicationTypes)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, ErrNoRecords
	}
	return articles, nil
}

// Count returns the number of cached articles.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM articles`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting articles: %w", err)
	}
	return n, nil
}
