package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	tok, err := Issue("s3cret", 42, "halim", "librarian", time.Hour)
	require.NoError(t, err)

	claims, err := Parse(tok, "s3cret")
	require.NoError(t, err)
	require.Equal(t, float64(42), claims["sub"])
	require.Equal(t, "librarian", claims["role"])
	require.Equal(t, "halim", claims["username"])
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := Issue("s3cret", 1, "u", "reader", time.Hour)
	require.NoError(t, err)
	_, err = Parse(tok, "other")
	require.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	tok, err := Issue("s3cret", 1, "u", "reader", -time.Minute)
	require.NoError(t, err)
	_, err = Parse(tok, "s3cret")
	require.Error(t, err)
}

func TestIssue_EmptySecret(t *testing.T) {
	_, err := Issue("", 1, "u", "reader", time.Hour)
	require.Error(t, err)
}
