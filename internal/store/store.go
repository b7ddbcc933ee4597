package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/veritium/veritium/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id                   TEXT PRIMARY KEY,
	title                TEXT NOT NULL,
	authors              TEXT,
	abstract             TEXT,
	content              TEXT NOT NULL,
	doi                  TEXT,
	url                  TEXT,
	source_type          TEXT NOT NULL,
	extracted_claims     TEXT,
	method_quality_score REAL NOT NULL,
	created_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS assessments (
	id                      TEXT PRIMARY KEY,
	document_id             TEXT NOT NULL,
	user_claim              TEXT NOT NULL,
	similarity_score        REAL NOT NULL,
	stance                  TEXT NOT NULL,
	entailment_score        REAL NOT NULL,
	method_quality_score    REAL NOT NULL,
	evidence_strength_score REAL NOT NULL,
	confidence_score        REAL NOT NULL,
	explanation             TEXT NOT NULL,
	evidence_snippets       TEXT,
	citations               TEXT,
	share_id                TEXT NOT NULL UNIQUE,
	feedback_score          INTEGER,
	feedback_comment        TEXT,
	created_at              TEXT NOT NULL,
	FOREIGN KEY (document_id) REFERENCES documents(id)
);

CREATE INDEX IF NOT EXISTS idx_assessments_document ON assessments(document_id);
`

// Store persists documents and assessments in SQLite
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database and runs migrations
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveDocument inserts a document record
func (s *Store) SaveDocument(ctx context.Context, doc *model.Document) error {
	authorsJSON, err := json.Marshal(doc.Authors)
	if err != nil {
		return fmt.Errorf("marshal authors: %w", err)
	}
	claimsJSON, err := json.Marshal(doc.ExtractedClaims)
	if err != nil {
		return fmt.Errorf("marshal claims: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (id, title, authors, abstract, content, doi, url, source_type, extracted_claims, method_quality_score, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.Title, string(authorsJSON), doc.Abstract, doc.Content,
		doc.DOI, doc.URL, doc.SourceType, string(claimsJSON),
		doc.MethodQualityScore, doc.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID
func (s *Store) GetDocument(ctx context.Context, id string) (*model.Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, authors, abstract, content, doi, url, source_type, extracted_claims, method_quality_score, created_at
		 FROM documents WHERE id = ?`, id)

	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", id, err)
	}
	return doc, nil
}

// ListDocuments returns the most recently ingested documents
func (s *Store) ListDocuments(ctx context.Context, limit int) ([]*model.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, authors, abstract, content, doi, url, source_type, extracted_claims, method_quality_score, created_at
		 FROM documents ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []*model.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// SaveAssessment inserts an assessment record
func (s *Store) SaveAssessment(ctx context.Context, a *model.Assessment) error {
	snippetsJSON, err := json.Marshal(a.EvidenceSnippets)
	if err != nil {
		return fmt.Errorf("marshal snippets: %w", err)
	}
	citationsJSON, err := json.Marshal(a.Citations)
	if err != nil {
		return fmt.Errorf("marshal citations: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO assessments (id, document_id, user_claim, similarity_score, stance, entailment_score,
		                          method_quality_score, evidence_strength_score, confidence_score, explanation,
		                          evidence_snippets, citations, share_id, feedback_score, feedback_comment, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.DocumentID, a.UserClaim, a.SimilarityScore, string(a.Stance), a.EntailmentScore,
		a.MethodQualityScore, a.EvidenceStrengthScore, a.ConfidenceScore, a.Explanation,
		string(snippetsJSON), string(citationsJSON), a.ShareID, feedbackPtr(a.FeedbackScore),
		a.FeedbackComment, a.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert assessment: %w", err)
	}
	return nil
}

// GetAssessment retrieves an assessment by ID
func (s *Store) GetAssessment(ctx context.Context, id string) (*model.Assessment, error) {
	row := s.db.QueryRowContext(ctx, assessmentSelect+` WHERE id = ?`, id)

	a, err := scanAssessment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrAssessmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get assessment %s: %w", id, err)
	}
	return a, nil
}

// GetAssessmentByShareID retrieves an assessment via its sharing identifier
func (s *Store) GetAssessmentByShareID(ctx context.Context, shareID string) (*model.Assessment, error) {
	row := s.db.QueryRowContext(ctx, assessmentSelect+` WHERE share_id = ?`, shareID)

	a, err := scanAssessment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrAssessmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get assessment by share id: %w", err)
	}
	return a, nil
}

// ListAssessments returns assessments for a document, newest first
func (s *Store) ListAssessments(ctx context.Context, documentID string) ([]*model.Assessment, error) {
	rows, err := s.db.QueryContext(ctx, assessmentSelect+` WHERE document_id = ? ORDER BY created_at DESC`, documentID)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()

	var assessments []*model.Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		assessments = append(assessments, a)
	}
	return assessments, rows.Err()
}

// SubmitFeedback attaches a -1/+1 feedback score and optional comment to an
// assessment. The score is validated before touching the database.
func (s *Store) SubmitFeedback(ctx context.Context, assessmentID string, score int, comment string) error {
	if score != -1 && score != 1 {
		return model.ErrInvalidFeedback
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE assessments SET feedback_score = ?, feedback_comment = ? WHERE id = ?`,
		score, comment, assessmentID)
	if err != nil {
		return fmt.Errorf("update feedback: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return model.ErrAssessmentNotFound
	}
	return nil
}

const assessmentSelect = `SELECT id, document_id, user_claim, similarity_score, stance, entailment_score,
	method_quality_score, evidence_strength_score, confidence_score, explanation,
	evidence_snippets, citations, share_id, feedback_score, feedback_comment, created_at
	FROM assessments`

// scanner abstracts *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*model.Document, error) {
	var doc model.Document
	var authorsJSON, claimsJSON sql.NullString
	var createdStr string

	err := row.Scan(&doc.ID, &doc.Title, &authorsJSON, &doc.Abstract, &doc.Content,
		&doc.DOI, &doc.URL, &doc.SourceType, &claimsJSON, &doc.MethodQualityScore, &createdStr)
	if err != nil {
		return nil, err
	}

	if authorsJSON.Valid && authorsJSON.String != "" {
		if err := json.Unmarshal([]byte(authorsJSON.String), &doc.Authors); err != nil {
			return nil, fmt.Errorf("unmarshal authors: %w", err)
		}
	}
	if claimsJSON.Valid && claimsJSON.String != "" {
		if err := json.Unmarshal([]byte(claimsJSON.String), &doc.ExtractedClaims); err != nil {
			return nil, fmt.Errorf("unmarshal claims: %w", err)
		}
	}
	doc.CreatedAt, err = time.Parse(time.RFC3339Nano, createdStr)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	return &doc, nil
}

func scanAssessment(row scanner) (*model.Assessment, error) {
	var a model.Assessment
	var stance string
	var snippetsJSON, citationsJSON sql.NullString
	var feedbackScore sql.NullInt64
	var createdStr string

	err := row.Scan(&a.ID, &a.DocumentID, &a.UserClaim, &a.SimilarityScore, &stance, &a.EntailmentScore,
		&a.MethodQualityScore, &a.EvidenceStrengthScore, &a.ConfidenceScore, &a.Explanation,
		&snippetsJSON, &citationsJSON, &a.ShareID, &feedbackScore, &a.FeedbackComment, &createdStr)
	if err != nil {
		return nil, err
	}

	a.Stance = model.Stance(stance)
	if snippetsJSON.Valid && snippetsJSON.String != "" {
		if err := json.Unmarshal([]byte(snippetsJSON.String), &a.EvidenceSnippets); err != nil {
			return nil, fmt.Errorf("unmarshal snippets: %w", err)
		}
	}
	if citationsJSON.Valid && citationsJSON.String != "" {
		if err := json.Unmarshal([]byte(citationsJSON.String), &a.Citations); err != nil {
			return nil, fmt.Errorf("unmarshal citations: %w", err)
		}
	}
	if feedbackScore.Valid {
		score := int(feedbackScore.Int64)
		a.FeedbackScore = &score
	}
	a.CreatedAt, err = time.Parse(time.RFC3339Nano, createdStr)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	return &a, nil
}

func feedbackPtr(score *int) any {
	if score == nil {
		return nil
	}
	return *score
}
