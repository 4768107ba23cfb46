package mpostgres

import (
	"context"
	"os"
	"testing"

	"notamadmin/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestPool connects to NOTAM_TEST_DATABASE_URL, a database that already
// has the notams schema applied. Tests are skipped when it is unset.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("NOTAM_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("NOTAM_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE notams RESTART IDENTITY`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `
		INSERT INTO airports (iata_code, airport_name)
		VALUES ('JFK', 'John F. Kennedy International'), ('LHR', 'Heathrow')
		ON CONFLICT (iata_code) DO NOTHING
	`)
	require.NoError(t, err)

	return pool
}

func TestNotamService_CreateFindList(t *testing.T) {
	repo := NewNotamService(newTestPool(t))
	ctx := context.Background()

	created, err := repo.CreateNotam(ctx, model.Notam{AirportID: "JFK", City: "New York", Message: "first"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = repo.CreateNotam(ctx, model.Notam{AirportID: "LHR", Message: "second"})
	require.NoError(t, err)

	found, ok, err := repo.FindNotamByMessage(ctx, "JFK", "first")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, created.ID, found.ID)

	_, ok, err = repo.FindNotamByMessage(ctx, "LHR", "first")
	require.NoError(t, err)
	assert.False(t, ok)

	notams, err := repo.ListNotams(ctx)
	require.NoError(t, err)
	require.Len(t, notams, 2)
	assert.Equal(t, "second", notams[0].Message)
	require.NotNil(t, notams[0].Airport)
	assert.Equal(t, "Heathrow", notams[0].Airport.AirportName)
	assert.Equal(t, "", notams[0].City)
}

func TestNotamService_GetAndUpdate(t *testing.T) {
	repo := NewNotamService(newTestPool(t))
	ctx := context.Background()

	created, err := repo.CreateNotam(ctx, model.Notam{AirportID: "JFK", City: "New York", Message: "before"})
	require.NoError(t, err)

	updated, err := repo.UpdateNotamMessage(ctx, created.ID, "after")
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Message)
	assert.Equal(t, "New York", updated.City)

	got, err := repo.GetNotam(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Message)
	assert.Equal(t, "John F. Kennedy International", got.AirportName())

	_, err = repo.GetNotam(ctx, created.ID+100)
	assert.ErrorIs(t, err, ErrNotamNotFound)

	_, err = repo.UpdateNotamMessage(ctx, created.ID+100, "nope")
	assert.ErrorIs(t, err, ErrNotamNotFound)
}

func TestNotamService_CreateUnknownAirport(t *testing.T) {
	repo := NewNotamService(newTestPool(t))

	_, err := repo.CreateNotam(context.Background(), model.Notam{AirportID: "ZZZ", Message: "orphan"})
	assert.ErrorIs(t, err, ErrUnknownAirport)
}
