// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/catalog-engine/pkg/types"
)

const dbFile = "catalog.db"

// Store maintains the searchable SQLite catalog index. A record is keyed
// by (file_path, paper_number) so multi-paper files keep one row per
// embedded paper.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the catalog database at dir/catalog.db,
// creating the schema if it does not exist.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
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
		`CREATE TABLE IF NOT EXISTS papers (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			file_path TEXT NOT NULL,
			paper_number INTEGER NOT NULL DEFAULT 1,
			title TEXT,
			authors TEXT,
			year TEXT,
			journal TEXT,
			volume TEXT,
			issue TEXT,
			pages TEXT,
			primary_subject TEXT,
			secondary_subjects TEXT,
			confidence TEXT,
			is_multi_paper INTEGER NOT NULL DEFAULT 0,
			total_papers INTEGER NOT NULL DEFAULT 1,
			page_range TEXT,
			content_preview TEXT,
			error TEXT,
			UNIQUE(file_path, paper_number)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_journal ON papers(journal)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_year ON papers(year)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='papers_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE papers_fts USING fts5(title, authors, journal, content_preview, content=papers, content_rowid=rowid)`,
			`CREATE TRIGGER papers_ai AFTER INSERT ON papers BEGIN
				INSERT INTO papers_fts(rowid, title, authors, journal, content_preview)
				VALUES (new.rowid, new.title, new.authors, new.journal, new.content_preview);
			END`,
			`CREATE TRIGGER papers_ad AFTER DELETE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, authors, journal, content_preview)
				VALUES('delete', old.rowid, old.title, old.authors, old.journal, old.content_preview);
			END`,
			`CREATE TRIGGER papers_au AFTER UPDATE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, authors, journal, content_preview)
				VALUES('delete', old.rowid, old.title, old.authors, old.journal, old.content_preview);
				INSERT INTO papers_fts(rowid, title, authors, journal, content_preview)
				VALUES (new.rowid, new.title, new.authors, new.journal, new.content_preview);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Save upserts records into the index inside one transaction.
// Re-extracting an unchanged file overwrites its previous rows.
func (s *Store) Save(ctx context.Context, records []types.PaperRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO papers (file_path, paper_number, title, authors, year, journal,
			volume, issue, pages, primary_subject, secondary_subjects, confidence,
			is_multi_paper, total_papers, page_range, content_preview, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(file_path, paper_number) DO UPDATE SET
			title=excluded.title, authors=excluded.authors, year=excluded.year,
			journal=excluded.journal, volume=excluded.volume, issue=excluded.issue,
			pages=excluded.pages, primary_subject=excluded.primary_subject,
			secondary_subjects=excluded.secondary_subjects, confidence=excluded.confidence,
			is_multi_paper=excluded.is_multi_paper, total_papers=excluded.total_papers,
			page_range=excluded.page_range, content_preview=excluded.content_preview,
			error=excluded.error`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		paperNumber := rec.PaperNumber
		if paperNumber < 1 {
			paperNumber = 1
		}
		totalPapers := rec.TotalPapers
		if totalPapers < 1 {
			totalPapers = 1
		}
		primary, _, confidence := classificationColumns(rec)
		secondary := []string{}
		if rec.Classification != nil && rec.Classification.SecondarySubjects != nil {
			secondary = rec.Classification.SecondarySubjects
		}
		secondaryJSON, _ := json.Marshal(secondary)

		_, err := stmt.ExecContext(ctx,
			rec.FilePath, paperNumber, rec.Title, rec.Authors, rec.Year, rec.Journal,
			rec.Volume, rec.Issue, rec.Pages, primary, string(secondaryJSON), confidence,
			rec.IsMultiPaper, totalPapers, rec.PageRange, rec.ContentPreview, rec.Error,
		)
		if err != nil {
			return fmt.Errorf("upserting %s #%d: %w", rec.FilePath, paperNumber, err)
		}
	}

	return tx.Commit()
}

// Search runs a full-text query over titles, authors, journals, and
// content previews, returning up to limit records ranked by relevance.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]types.PaperRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT p.file_path, p.paper_number, p.title, p.authors, p.year, p.journal,
			p.volume, p.issue, p.pages, p.primary_subject, p.secondary_subjects,
			p.confidence, p.is_multi_paper, p.total_papers, p.page_range,
			p.content_preview, p.error
		 FROM papers_fts f
		 JOIN papers p ON p.rowid = f.rowid
		 WHERE papers_fts MATCH ?
		 ORDER BY rank
		 LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// List returns every indexed record ordered by file path and position.
func (s *Store) List(ctx context.Context) ([]types.PaperRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT file_path, paper_number, title, authors, year, journal,
			volume, issue, pages, primary_subject, secondary_subjects,
			confidence, is_multi_paper, total_papers, page_range,
			content_preview, error
		 FROM papers
		 ORDER BY file_path, paper_number`)
	if err != nil {
		return nil, fmt.Errorf("listing index: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]types.PaperRecord, error) {
	var records []types.PaperRecord
	for rows.Next() {
		var rec types.PaperRecord
		var primary, secondaryJSON, confidence string
		if err := rows.Scan(
			&rec.FilePath, &rec.PaperNumber, &rec.Title, &rec.Authors, &rec.Year,
			&rec.Journal, &rec.Volume, &rec.Issue, &rec.Pages,
			&primary, &secondaryJSON, &confidence,
			&rec.IsMultiPaper, &rec.TotalPapers, &rec.PageRange,
			&rec.ContentPreview, &rec.Error,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		var secondary []string
		_ = json.Unmarshal([]byte(secondaryJSON), &secondary)
		rec.Classification = &types.Classification{
			PrimarySubject:    primary,
			SecondarySubjects: secondary,
			Confidence:        confidence,
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
