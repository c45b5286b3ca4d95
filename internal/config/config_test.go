package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("reads the profile", func(t *testing.T) {
		path := writeProfile(t, `
base_url = "http://joplin.internal:41184"
token    = "secret"
`)
		profile, err := Load(path, true)
		require.NoError(t, err)
		assert.Equal(t, "http://joplin.internal:41184", profile.BaseURL)
		assert.Equal(t, "secret", profile.Token)
	})

	t.Run("partial profile", func(t *testing.T) {
		path := writeProfile(t, `token = "secret"`)
		profile, err := Load(path, true)
		require.NoError(t, err)
		assert.Empty(t, profile.BaseURL)
		assert.Equal(t, "secret", profile.Token)
	})

	t.Run("missing default profile is fine", func(t *testing.T) {
		profile, err := Load(filepath.Join(t.TempDir(), "absent.hcl"), false)
		require.NoError(t, err)
		assert.Equal(t, &Profile{}, profile)
	})

	t.Run("missing explicit profile errors", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.hcl"), true)
		assert.Error(t, err)
	})

	t.Run("malformed profile errors", func(t *testing.T) {
		path := writeProfile(t, `base_url = `)
		_, err := Load(path, true)
		assert.Error(t, err)
	})
}

func TestResolve_Precedence(t *testing.T) {
	profile := &Profile{BaseURL: "http://from-file:41184", Token: "file-token"}

	t.Run("flags beat everything", func(t *testing.T) {
		t.Setenv(EnvBaseURL, "http://from-env:41184")
		t.Setenv(EnvToken, "env-token")

		cfg := profile.Resolve("http://from-flag:41184", "flag-token")
		assert.Equal(t, "http://from-flag:41184", cfg.BaseURL)
		assert.Equal(t, "flag-token", cfg.Token)
	})

	t.Run("environment beats the profile", func(t *testing.T) {
		t.Setenv(EnvBaseURL, "http://from-env:41184")
		t.Setenv(EnvToken, "env-token")

		cfg := profile.Resolve("", "")
		assert.Equal(t, "http://from-env:41184", cfg.BaseURL)
		assert.Equal(t, "env-token", cfg.Token)
	})

	t.Run("profile is the fallback", func(t *testing.T) {
		t.Setenv(EnvBaseURL, "")
		t.Setenv(EnvToken, "")

		cfg := profile.Resolve("", "")
		assert.Equal(t, "http://from-file:41184", cfg.BaseURL)
		assert.Equal(t, "file-token", cfg.Token)
	})
}
