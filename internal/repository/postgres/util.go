package postgres

import (
	"errors"
	"fmt"

	"github.com/NordCoder/tsreturn/internal/domain/returns"
	"github.com/jackc/pgx/v5"
)

// ErrNotFound is the domain sentinel so callers need not know the storage.
var ErrNotFound = returns.ErrNotFound

func notFound(err error, what string, id int64) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return fmt.Errorf("scan %s: %w", what, err)
}
