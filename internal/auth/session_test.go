package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	a := NewSession("alice", "pw")
	b := NewSession("alice", "pw")

	require.Equal(t, "alice", a.UserName)
	require.Equal(t, "pw", a.Password)
	require.False(t, a.Started.IsZero())

	_, err := uuid.Parse(a.ID)
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)
}
