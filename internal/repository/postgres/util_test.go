package postgres

import (
	"errors"
	"testing"

	"github.com/NordCoder/tsreturn/internal/domain/returns"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestNotFound(t *testing.T) {
	err := notFound(pgx.ErrNoRows, "seller", 7)
	assert.ErrorIs(t, err, returns.ErrNotFound)
	assert.Equal(t, "seller 7: not found", err.Error())

	err = notFound(errors.New("conn reset"), "seller", 7)
	assert.NotErrorIs(t, err, returns.ErrNotFound)
	assert.EqualError(t, err, "scan seller: conn reset")
}
