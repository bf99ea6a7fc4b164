package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUser_BeforeSave(t *testing.T) {
	preHashed, err := bcrypt.GenerateFromPassword([]byte("already-hashed"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		check    func(t *testing.T, u *User, original string)
	}{
		{
			name:     "plain password is hashed",
			password: "s3cret-pass",
			check: func(t *testing.T, u *User, original string) {
				assert.NotEqual(t, original, u.Password)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(original)))
			},
		},
		{
			name:     "existing bcrypt hash is kept",
			password: string(preHashed),
			check: func(t *testing.T, u *User, original string) {
				assert.Equal(t, original, u.Password, "двойного хеширования быть не должно")
			},
		},
		{
			name:     "empty password stays empty",
			password: "",
			check: func(t *testing.T, u *User, original string) {
				assert.Empty(t, u.Password)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Username: "alice", Password: tt.password}
			require.NoError(t, u.BeforeSave(nil))
			tt.check(t, u, tt.password)
		})
	}
}

func TestUser_CheckPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &User{Username: "alice", Password: string(hash)}

	assert.True(t, u.CheckPassword("correct-horse"))
	assert.False(t, u.CheckPassword("battery-staple"))
	assert.False(t, u.CheckPassword(""))
}
