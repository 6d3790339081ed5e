package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/abhisek/certprep/internal/examgen"
)

// SaveBatch stores every exam of a batch in one transaction.
func (s *Store) SaveBatch(ctx context.Context, b *examgen.Batch) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	seed := strconv.FormatUint(b.Seed, 10)
	for _, e := range b.Exams {
		qj, err := json.Marshal(e.Questions)
		if err != nil {
			return fmt.Errorf("marshal questions: %w", err)
		}
		aj, err := json.Marshal(e.Areas)
		if err != nil {
			return fmt.Errorf("marshal areas: %w", err)
		}
		subs := e.Substitutions
		if subs == nil {
			subs = []examgen.Substitution{}
		}
		sj, err := json.Marshal(subs)
		if err != nil {
			return fmt.Errorf("marshal substitutions: %w", err)
		}

		_, err = tx.ExecContext(ctx, `INSERT INTO exams
			(id, batch_seed, section, exam_index, questions_json, areas_json, substitutions_json, generated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			e.ID, seed, e.Section, e.Index, string(qj), string(aj), string(sj), e.GeneratedAt.UnixNano())
		if err != nil {
			return fmt.Errorf("insert exam %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// GetExam loads a stored exam by ID.
func (s *Store) GetExam(ctx context.Context, id string) (*examgen.GeneratedExam, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, section, exam_index, questions_json, areas_json,
		substitutions_json, generated_at FROM exams WHERE id = $1`, id)

	var (
		e          examgen.GeneratedExam
		qj, aj, sj string
		genAt      int64
	)
	if err := row.Scan(&e.ID, &e.Section, &e.Index, &qj, &aj, &sj, &genAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("exam %q: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("query exam: %w", err)
	}
	if err := json.Unmarshal([]byte(qj), &e.Questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	if err := json.Unmarshal([]byte(aj), &e.Areas); err != nil {
		return nil, fmt.Errorf("decode areas: %w", err)
	}
	if err := json.Unmarshal([]byte(sj), &e.Substitutions); err != nil {
		return nil, fmt.Errorf("decode substitutions: %w", err)
	}
	if len(e.Substitutions) == 0 {
		e.Substitutions = nil
	}
	e.GeneratedAt = time.Unix(0, genAt).UTC()
	return &e, nil
}

// UsedQuestionIDs returns the sorted set of question IDs that appear in
// any stored exam of the section.
func (s *Store) UsedQuestionIDs(ctx context.Context, section string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT questions_json FROM exams WHERE section = $1`, section)
	if err != nil {
		return nil, fmt.Errorf("query exams: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	for rows.Next() {
		var qj string
		if err := rows.Scan(&qj); err != nil {
			return nil, fmt.Errorf("scan exam: %w", err)
		}
		var ids []string
		if err := json.Unmarshal([]byte(qj), &ids); err != nil {
			return nil, fmt.Errorf("decode questions: %w", err)
		}
		for _, id := range ids {
			seen[id] = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exams: %w", err)
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
