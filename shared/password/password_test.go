package password_test

import (
	"strings"
	"testing"

	"parkflow/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	password.Cost = bcrypt.MinCost

	m.Run()
}

func TestHash(t *testing.T) {
	tests := []struct {
		name    string
		plain   string
		wantErr error
	}{
		{name: "regular", plain: "parkflow-2025"},
		{name: "unicode", plain: "pässwörd-ñ"},
		{name: "at the limit", plain: strings.Repeat("a", 72)},
		{name: "empty", plain: "", wantErr: password.ErrEmptyPassword},
		{name: "over the limit", plain: strings.Repeat("a", 73), wantErr: password.ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.plain)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hash)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, tt.plain, hash)
			assert.NoError(t, password.Verify(tt.plain, hash))
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := password.Hash("same-password")
	require.NoError(t, err)

	second, err := password.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("correct horse")
	require.NoError(t, err)

	tests := []struct {
		name    string
		plain   string
		hash    string
		wantErr error
	}{
		{name: "match", plain: "correct horse", hash: hash},
		{name: "mismatch", plain: "battery staple", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "case matters", plain: "Correct Horse", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty password", plain: "", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty hash", plain: "correct horse", hash: "", wantErr: password.ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.plain, tt.hash)

			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}

	err = password.Verify("correct horse", "not-a-bcrypt-hash")
	require.Error(t, err)
	assert.NotErrorIs(t, err, password.ErrInvalidPassword)
}

func TestNeedsRehash(t *testing.T) {
	hash, err := password.Hash("rotate-me")
	require.NoError(t, err)

	assert.False(t, password.NeedsRehash(hash))

	stronger, err := bcrypt.GenerateFromPassword([]byte("rotate-me"), bcrypt.MinCost+1)
	require.NoError(t, err)

	assert.True(t, password.NeedsRehash(string(stronger)))
	assert.True(t, password.NeedsRehash("garbage"))
}
