package postgres

import (
	"context"
	"fmt"

	"github.com/NordCoder/tsreturn/internal/domain/returns"
)

var _ returns.PermitReader = (*PermitRepo)(nil)

type PermitRepo struct{ db *DB }

func NewPermitRepo(db *DB) *PermitRepo { return &PermitRepo{db: db} }

const qNotifiableEmails = `
SELECT c.email
FROM employee_permits p
JOIN contractors c ON c.id = p.employee_id
WHERE p.reseller_id = $1
  AND p.event = $2
  AND c.role = 'employee'
  AND c.email <> ''
ORDER BY c.id;
`

func (r *PermitRepo) ListNotifiableEmails(ctx context.Context, resellerID int64, event string) ([]string, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Pool.Query(ctx, qNotifiableEmails, resellerID, event)
	if err != nil {
		return nil, fmt.Errorf("query permits: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("scan permit email: %w", err)
		}
		out = append(out, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}
