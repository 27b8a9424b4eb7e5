package bot

import (
	"context"
	"database/sql"
	"fmt"
)

type pgStore struct {
	db *sql.DB
}

// NewStore returns the Postgres-backed conversation log. Expected schema:
//
//	CREATE TABLE IF NOT EXISTS turns (
//	    id           BIGSERIAL PRIMARY KEY,
//	    user_id      TEXT NOT NULL,
//	    sender       TEXT NOT NULL,
//	    kind         TEXT NOT NULL,
//	    body         TEXT NOT NULL DEFAULT '',
//	    selection_id TEXT NOT NULL DEFAULT '',
//	    message_id   TEXT NOT NULL DEFAULT '',
//	    created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//	CREATE INDEX IF NOT EXISTS turns_user_created_idx ON turns (user_id, created_at);
func NewStore(db *sql.DB) Store {
	return &pgStore{db: db}
}

func (s *pgStore) Append(ctx context.Context, turn *Turn) error {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO turns (user_id, sender, kind, body, selection_id, message_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`,
		turn.UserID,
		string(turn.Sender),
		string(turn.Kind),
		turn.Text,
		turn.SelectionID,
		turn.MessageID,
	)
	if err := row.Scan(&turn.ID, &turn.CreatedAt); err != nil {
		return fmt.Errorf("bot: append turn: %w", err)
	}
	return nil
}

const turnColumns = `id, user_id, sender, kind, body, selection_id, message_id, created_at`

func (s *pgStore) ListByUser(ctx context.Context, userID string, limit int) ([]Turn, error) {
	var rows *sql.Rows
	var err error
	if limit > 0 {
		// Newest-first inner query so LIMIT keeps the most recent entries,
		// then flip back to chronological order.
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+turnColumns+` FROM (
				SELECT `+turnColumns+`
				FROM turns
				WHERE user_id = $1
				ORDER BY created_at DESC, id DESC
				LIMIT $2
			) recent
			ORDER BY created_at ASC, id ASC
		`, userID, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+turnColumns+`
			FROM turns
			WHERE user_id = $1
			ORDER BY created_at ASC, id ASC
		`, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("bot: list by user: %w", err)
	}
	defer rows.Close()
	return scanTurns(rows)
}

func (s *pgStore) ListRecent(ctx context.Context, limit int) ([]Turn, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+turnColumns+`
		FROM turns
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("bot: list recent: %w", err)
	}
	defer rows.Close()
	return scanTurns(rows)
}

func (s *pgStore) ListUsers(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id
		FROM turns
		GROUP BY user_id
		ORDER BY max(created_at) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("bot: list users: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("bot: scan user: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func scanTurns(rows *sql.Rows) ([]Turn, error) {
	var out []Turn
	for rows.Next() {
		var t Turn
		var sender, kind string
		if err := rows.Scan(
			&t.ID,
			&t.UserID,
			&sender,
			&kind,
			&t.Text,
			&t.SelectionID,
			&t.MessageID,
			&t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("bot: scan turn: %w", err)
		}
		t.Sender = Sender(sender)
		t.Kind = Kind(kind)
		out = append(out, t)
	}
	return out, rows.Err()
}
