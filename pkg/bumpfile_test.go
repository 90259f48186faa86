package commitbump

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateManifestVersion(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
		changed  bool
	}{
		{
			name: "package.json",
			content: `{
  "name": "my-app",
  "version": "1.2.3",
  "dependencies": {
    "left-pad": "1.0.0"
  }
}`,
			expected: `{
  "name": "my-app",
  "version": "1.3.0",
  "dependencies": {
    "left-pad": "1.0.0"
  }
}`,
			changed: true,
		},
		{
			name: "Cargo.toml",
			content: `[package]
name = "rust-project"
version = "2.1.0-alpha.2"
edition = "2021"`,
			expected: `[package]
name = "rust-project"
version = "1.3.0"
edition = "2021"`,
			changed: true,
		},
		{
			name:     "VERSION",
			content:  "VERSION=v4.5.6\n",
			expected: "VERSION=v1.3.0\n",
			changed:  true,
		},
		{
			name:     "nested only",
			content:  "deps:\n    version: 1.0.0\n",
			expected: "deps:\n    version: 1.0.0\n",
			changed:  false,
		},
		{
			name:     "already current",
			content:  `version = "1.3.0"`,
			expected: `version = "1.3.0"`,
			changed:  false,
		},
	}

	v := Version{Major: 1, Minor: 3}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.name)
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0644))

			changed, err := UpdateManifestVersion(path, v)
			require.NoError(t, err)
			assert.Equal(t, tc.changed, changed)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, string(data))
		})
	}
}

func TestFindManifestVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "package.json")
	require.NoError(t, os.WriteFile(path, []byte("{\n  \"version\": \"0.4.1\"\n}\n"), 0644))

	mv, err := FindManifestVersion(path)
	require.NoError(t, err)
	require.NotNil(t, mv)
	assert.Equal(t, 2, mv.Line)
	assert.Equal(t, "0.4.1", mv.Version)

	none := filepath.Join(t.TempDir(), "README")
	require.NoError(t, os.WriteFile(none, []byte("no versions\n"), 0644))
	mv, err = FindManifestVersion(none)
	require.NoError(t, err)
	assert.Nil(t, mv)

	_, err = FindManifestVersion(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
