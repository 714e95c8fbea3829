package main

import (
	"testing"

	"github.com/refugee-innovation-hub/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewUser(t *testing.T) {
	user, err := newUser("editor@example.org", "long-enough", "Editor", models.RoleEditor)
	require.NoError(t, err)

	assert.True(t, user.Active)
	assert.Equal(t, models.RoleEditor, user.Role)
	assert.NotEqual(t, "long-enough", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("long-enough")))
}

func TestNewUserRejectsBadInput(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		role     models.Role
	}{
		{"bad email", "not-an-email", "long-enough", models.RoleAdmin},
		{"unknown role", "a@example.org", "long-enough", models.Role("owner")},
		{"short password", "a@example.org", "short", models.RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newUser(tt.email, tt.password, "Name", tt.role)
			assert.Error(t, err)
		})
	}
}

func TestMaxLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, maxLevel("info"))
	assert.Equal(t, zerolog.WarnLevel, maxLevel("bogus"))
	assert.Equal(t, zerolog.DebugLevel, maxLevel("debug"))
}

func TestMigrateDownUsageMatchesSingleStep(t *testing.T) {
	var down string
	for _, c := range migrateCommand().Commands {
		if c.Name == "down" {
			down = c.Usage
		}
	}
	assert.Equal(t, "Roll back the most recent migration", down)
}
