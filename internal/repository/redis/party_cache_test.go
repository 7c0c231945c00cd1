package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/NordCoder/tsreturn/internal/domain/returns"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memKV struct {
	data   map[string]string
	getErr error
	setErr error
	sets   int
}

func (m *memKV) Get(_ context.Context, key string) *redis.StringCmd {
	if m.getErr != nil {
		return redis.NewStringResult("", m.getErr)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memKV) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	m.sets++
	if m.setErr != nil {
		return redis.NewStatusResult("", m.setErr)
	}
	m.data[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

type countingReader struct {
	calls int
	party *returns.Party
	err   error
}

func (r *countingReader) find(_ context.Context, id int64) (*returns.Party, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	p := *r.party
	p.ID = id
	return &p, nil
}

func (r *countingReader) FindSellerByID(ctx context.Context, id int64) (*returns.Party, error) {
	return r.find(ctx, id)
}
func (r *countingReader) FindContractorByID(ctx context.Context, id int64) (*returns.Party, error) {
	return r.find(ctx, id)
}
func (r *countingReader) FindEmployeeByID(ctx context.Context, id int64) (*returns.Party, error) {
	return r.find(ctx, id)
}

func TestPartyCache_ReadThrough(t *testing.T) {
	kv := &memKV{data: map[string]string{}}
	next := &countingReader{party: &returns.Party{Role: returns.RoleCustomer, Name: "acme", Email: "a@acme.io"}}
	c := NewPartyCache(kv, next, time.Minute, nil)
	ctx := context.Background()

	p, err := c.FindContractorByID(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), p.ID)

	p, err = c.FindContractorByID(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "a@acme.io", p.Email)
	assert.Equal(t, 1, next.calls)

	var cached returns.Party
	require.NoError(t, json.Unmarshal([]byte(kv.data["party:contractor:10"]), &cached))
	assert.Equal(t, returns.RoleCustomer, cached.Role)

	_, err = c.FindSellerByID(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls, "kinds are cached separately")
}

func TestPartyCache_RedisDownFallsBack(t *testing.T) {
	kv := &memKV{data: map[string]string{}, getErr: errors.New("dial tcp: refused"), setErr: errors.New("dial tcp: refused")}
	next := &countingReader{party: &returns.Party{Role: returns.RoleEmployee}}
	c := NewPartyCache(kv, next, time.Minute, nil)

	p, err := c.FindEmployeeByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.ID)
	assert.Equal(t, 1, kv.sets)
}

func TestPartyCache_NotFoundIsNotCached(t *testing.T) {
	kv := &memKV{data: map[string]string{}}
	next := &countingReader{err: returns.ErrNotFound}
	c := NewPartyCache(kv, next, time.Minute, nil)

	_, err := c.FindSellerByID(context.Background(), 1)
	require.ErrorIs(t, err, returns.ErrNotFound)
	assert.Zero(t, kv.sets)
	assert.Empty(t, kv.data)
}

func TestPartyCache_CorruptEntryReloads(t *testing.T) {
	kv := &memKV{data: map[string]string{"party:seller:1": "{not json"}}
	next := &countingReader{party: &returns.Party{Role: returns.RoleSeller}}
	c := NewPartyCache(kv, next, time.Minute, nil)

	p, err := c.FindSellerByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, returns.RoleSeller, p.Role)
	assert.Equal(t, 1, next.calls)
}
