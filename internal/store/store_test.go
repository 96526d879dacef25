package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"agenda/internal/model"
)

type memBackend struct {
	users    []model.User
	meetings []model.Meeting
	saves    int
	err      error
}

func (b *memBackend) Load(context.Context) ([]model.User, []model.Meeting, error) {
	return b.users, b.meetings, b.err
}

func (b *memBackend) Save(_ context.Context, users []model.User, meetings []model.Meeting) error {
	if b.err != nil {
		return b.err
	}
	b.saves++
	b.users, b.meetings = users, meetings
	return nil
}

func at(h int) time.Time {
	return time.Date(2024, 1, 1, h, 0, 0, 0, time.UTC)
}

func seeded(t *testing.T) (*Store, *memBackend) {
	t.Helper()
	b := &memBackend{
		users: []model.User{
			{Name: "alice", Password: "pw"},
			{Name: "bob", Password: "pw"},
		},
		meetings: []model.Meeting{
			{Sponsor: "alice", Participants: []string{"bob"}, Start: at(10), End: at(11), Title: "sync"},
			{Sponsor: "bob", Participants: []string{"alice"}, Start: at(12), End: at(13), Title: "lunch"},
		},
	}
	s := New(b)
	require.NoError(t, s.Load(context.Background()))
	require.False(t, s.Dirty())
	return s, b
}

func TestQueryKeepsOrder(t *testing.T) {
	s, _ := seeded(t)

	all := s.QueryMeetings(func(model.Meeting) bool { return true })
	require.Len(t, all, 2)
	require.Equal(t, "sync", all[0].Title)
	require.Equal(t, "lunch", all[1].Title)

	users := s.QueryUsers(func(u model.User) bool { return u.Name == "bob" })
	require.Equal(t, []model.User{{Name: "bob", Password: "pw"}}, users)
	require.False(t, s.Dirty())
}

func TestQueryReturnsCopies(t *testing.T) {
	s, _ := seeded(t)

	got := s.QueryMeetings(func(m model.Meeting) bool { return m.Title == "sync" })
	got[0].Participants[0] = "mallory"

	again := s.QueryMeetings(func(m model.Meeting) bool { return m.Title == "sync" })
	require.Equal(t, []string{"bob"}, again[0].Participants)
}

func TestMutationsSetDirty(t *testing.T) {
	tests := []struct {
		name  string
		run   func(s *Store) int
		count int
		dirty bool
	}{
		{"update none", func(s *Store) int {
			return s.UpdateMeetings(func(model.Meeting) bool { return false }, func(*model.Meeting) {})
		}, 0, false},
		{"update one", func(s *Store) int {
			return s.UpdateMeetings(
				func(m model.Meeting) bool { return m.Sponsor == "alice" },
				func(m *model.Meeting) { m.AddParticipant("carol") })
		}, 1, true},
		{"delete none", func(s *Store) int {
			return s.DeleteUsers(func(u model.User) bool { return u.Name == "nobody" })
		}, 0, false},
		{"delete users", func(s *Store) int {
			return s.DeleteUsers(func(model.User) bool { return true })
		}, 2, true},
		{"delete meetings", func(s *Store) int {
			return s.DeleteMeetings(func(m model.Meeting) bool { return m.Involves("alice") })
		}, 2, true},
		{"update users", func(s *Store) int {
			return s.UpdateUsers(
				func(u model.User) bool { return u.Name == "bob" },
				func(u *model.User) { u.Phone = "555" })
		}, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := seeded(t)
			require.Equal(t, tt.count, tt.run(s))
			require.Equal(t, tt.dirty, s.Dirty())
		})
	}
}

func TestUpdateInPlace(t *testing.T) {
	s, _ := seeded(t)
	s.UpdateMeetings(
		func(m model.Meeting) bool { return m.Title == "lunch" },
		func(m *model.Meeting) { m.RemoveParticipant("alice") })

	got := s.QueryMeetings(func(m model.Meeting) bool { return m.Title == "lunch" })
	require.Empty(t, got[0].Participants)
}

func TestCreateDoesNotAlias(t *testing.T) {
	s := New(&memBackend{})
	parts := []string{"bob"}
	s.CreateMeeting(model.Meeting{Sponsor: "alice", Participants: parts, Title: "x"})
	parts[0] = "eve"

	got := s.QueryMeetings(func(model.Meeting) bool { return true })
	require.Equal(t, []string{"bob"}, got[0].Participants)
	require.True(t, s.Dirty())
}

func TestFlush(t *testing.T) {
	ctx := context.Background()
	s, b := seeded(t)

	// clean store is a no-op
	require.NoError(t, s.Flush(ctx))
	require.Zero(t, b.saves)

	s.CreateUser(model.User{Name: "carol", Password: "pw"})
	require.NoError(t, s.Flush(ctx))
	require.Equal(t, 1, b.saves)
	require.False(t, s.Dirty())
	require.Len(t, b.users, 3)

	require.NoError(t, s.Flush(ctx))
	require.Equal(t, 1, b.saves)
}

func TestFlushFailureKeepsDirty(t *testing.T) {
	s, b := seeded(t)
	s.CreateUser(model.User{Name: "carol"})
	b.err = errors.New("disk full")

	require.Error(t, s.Flush(context.Background()))
	require.True(t, s.Dirty())
}

func TestLoadError(t *testing.T) {
	s := New(&memBackend{err: ErrMalformed})
	require.ErrorIs(t, s.Load(context.Background()), ErrMalformed)
}
