package store

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"agenda/internal/model"
)

func setupPostgres(t *testing.T) *Postgres {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}
	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(pool.Close)

	pg := NewPostgres(pool)
	require.NoError(t, pg.Migrate(context.Background(), "../../db/migrations/001_init.sql"))
	return pg
}

func TestPostgresRoundTrip(t *testing.T) {
	pg := setupPostgres(t)
	ctx := context.Background()

	users := []model.User{
		{Name: "alice", Password: "pw", Email: "a@x.com", Phone: "111"},
		{Name: "bob", Password: "pw", Email: "b@x.com", Phone: "222"},
	}
	meetings := []model.Meeting{
		{Sponsor: "alice", Participants: []string{"bob"}, Start: at(10), End: at(11), Title: "sync"},
		{Sponsor: "bob", Start: at(11), End: at(12), Title: "solo"},
	}
	require.NoError(t, pg.Save(ctx, users, meetings))

	gotUsers, gotMeetings, err := pg.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, users, gotUsers)
	require.Len(t, gotMeetings, 2)
	require.Equal(t, "sync", gotMeetings[0].Title)
	require.Equal(t, []string{"bob"}, gotMeetings[0].Participants)
	require.True(t, gotMeetings[0].Start.Equal(at(10)))
	require.Nil(t, gotMeetings[1].Participants)

	// second save replaces, not appends
	require.NoError(t, pg.Save(ctx, users[:1], nil))
	gotUsers, gotMeetings, err = pg.Load(ctx)
	require.NoError(t, err)
	require.Len(t, gotUsers, 1)
	require.Empty(t, gotMeetings)
}
