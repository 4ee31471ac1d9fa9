package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/sanibot/internal/core"
)

// InteractionRepo stores analytics records for answered questions.
type InteractionRepo struct {
	db *sql.DB
}

func NewInteractionRepo(db *sql.DB) *InteractionRepo {
	return &InteractionRepo{db: db}
}

var _ core.InteractionStore = (*InteractionRepo)(nil)

func (r *InteractionRepo) Add(ctx context.Context, rec core.Interaction) error {
	query := `INSERT INTO interactions (id, session_id, question, intent, elapsed_ms, success, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.SessionID, rec.Question, rec.Intent, rec.Elapsed.Milliseconds(), rec.Success, rec.At)
	if err != nil {
		return fmt.Errorf("failed to insert interaction: %w", err)
	}
	return nil
}

func (r *InteractionRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM interactions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count interactions: %w", err)
	}
	return n, nil
}

func (r *InteractionRepo) CountSessions(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT session_id) FROM interactions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return n, nil
}

// RecentQuestions returns the newest stored questions, newest first.
func (r *InteractionRepo) RecentQuestions(ctx context.Context, limit int) ([]string, error) {
	query := `SELECT question FROM interactions ORDER BY created_at DESC, id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent questions: %w", err)
	}
	defer rows.Close()

	var questions []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
