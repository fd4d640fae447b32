package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewManager([]byte("secret"), time.Hour)

	s, err := m.Issue()
	require.NoError(t, err)
	_, err = uuid.Parse(s.UserID)
	require.NoError(t, err)

	claims, err := m.Verify(s.Token)
	require.NoError(t, err)
	assert.Equal(t, s.UserID, claims.Subject)
	assert.True(t, claims.Anonymous)
}

func TestEachSessionHasItsOwnSubject(t *testing.T) {
	m := NewManager([]byte("secret"), time.Hour)
	a, err := m.Issue()
	require.NoError(t, err)
	b, err := m.Issue()
	require.NoError(t, err)
	assert.NotEqual(t, a.UserID, b.UserID)
}

func TestVerifyRejects(t *testing.T) {
	m := NewManager([]byte("secret"), time.Hour)
	s, err := m.Issue()
	require.NoError(t, err)

	other := NewManager([]byte("other"), time.Hour)
	_, err = other.Verify(s.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewManager([]byte("secret"), time.Hour)
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = expired.Verify(s.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:  "someone-else",
		Subject: "x",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = m.Verify(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
