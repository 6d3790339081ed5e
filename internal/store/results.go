package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/certprep/internal/scoring"
	"github.com/google/uuid"
)

// SaveResult records a graded attempt. An exam may be attempted more
// than once; each result is kept.
func (s *Store) SaveResult(ctx context.Context, r *scoring.Result) error {
	rj, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	passed := 0
	if r.Passed {
		passed = 1
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO exam_results
		(id, exam_id, section, correct, total, percentage, passed, result_json, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		uuid.NewString(), r.ExamID, r.Section, r.Correct, r.Total, r.Percentage, passed,
		string(rj), r.SubmittedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

// ListResults returns the most recent results first. An empty section
// matches all sections; limit <= 0 means no limit.
func (s *Store) ListResults(ctx context.Context, section string, limit int) ([]scoring.Result, error) {
	query := `SELECT result_json FROM exam_results`
	var args []any
	if section != "" {
		query += ` WHERE section = $1`
		args = append(args, section)
	}
	query += ` ORDER BY submitted_at DESC, id`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []scoring.Result
	for rows.Next() {
		var rj string
		if err := rows.Scan(&rj); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		var r scoring.Result
		if err := json.Unmarshal([]byte(rj), &r); err != nil {
			return nil, fmt.Errorf("decode result: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return out, nil
}
