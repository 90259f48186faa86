package commitbump

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1.2.3", "1.2.3"},
		{"v1.2.3", "1.2.3"},
		{" 1.2.3\n", "1.2.3"},
		{"1.2.3-rc.1", "1.2.3-rc.1"},
		{"1.2.3-beta.1+build.5", "1.2.3-beta.1"},
		{"0.0.0", "0.0.0"},
	}
	for _, tc := range tests {
		v, err := ParseVersion(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.expected, v.String())
	}

	for _, bad := range []string{"", "1.2", "1", "dev", "1.2.3.4", "x1.2.3"} {
		_, err := ParseVersion(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestBump(t *testing.T) {
	tests := []struct {
		version    string
		bump       ReleaseType
		identifier string
		expected   string
	}{
		{"1.2.3", Major, "", "2.0.0"},
		{"1.2.3", Minor, "", "1.3.0"},
		{"1.2.3", Patch, "", "1.2.4"},
		{"1.2.3", Premajor, "", "2.0.0-0"},
		{"1.2.3", Preminor, "", "1.3.0-0"},
		{"1.2.3", Prepatch, "", "1.2.4-0"},
		{"1.2.3", Prerelease, "", "1.2.4-0"},
		{"1.2.3-0", Prerelease, "", "1.2.3-1"},
		{"1.0.0", Prepatch, "beta", "1.0.1-beta.0"},
		{"1.0.1-beta.0", Prerelease, "beta", "1.0.1-beta.1"},
		{"1.0.1-beta.4", Prerelease, "rc", "1.0.1-rc.0"},
		{"1.0.1-beta", Prerelease, "beta", "1.0.1-beta.0"},
		{"1.0.1-beta", Prerelease, "", "1.0.1-beta.0"},
		{"1.0.1-alpha.1.beta", Prerelease, "", "1.0.1-alpha.2.beta"},
		{"1.2.3-4", Premajor, "alpha", "2.0.0-alpha.0"},
		{"1.2.3", Preminor, "dev", "1.3.0-dev.0"},
		// Releasing a prerelease drops its identifiers without skipping a version.
		{"2.0.0-rc.1", Major, "", "2.0.0"},
		{"2.1.0-rc.1", Major, "", "3.0.0"},
		{"1.3.0-rc.1", Minor, "", "1.3.0"},
		{"1.3.1-rc.1", Minor, "", "1.4.0"},
		{"1.3.1-rc.1", Patch, "", "1.3.1"},
		{"1.2.3", ReleaseType("bogus"), "", "1.2.3"},
	}
	for _, tc := range tests {
		v, err := ParseVersion(tc.version)
		require.NoError(t, err)
		got := v.Bump(tc.bump, tc.identifier)
		assert.Equal(t, tc.expected, got.String(), "%s %s %q", tc.version, tc.bump, tc.identifier)
	}
}

func TestBumpDoesNotModifyReceiver(t *testing.T) {
	v, err := ParseVersion("1.0.1-beta.0")
	require.NoError(t, err)

	_ = v.Bump(Prerelease, "beta")
	assert.Equal(t, "1.0.1-beta.0", v.String())
}

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"1.0.0-rc.1", "1.0.0", -1},
		{"1.0.0", "1.0.0-rc.1", 1},
		{"1.0.0-rc.1", "1.0.0-rc.2", -1},
		{"1.0.0", "1.0.0", 0},
		{"1.0.0-rc.2", "1.0.0-rc.10", -1},
		{"1.0.0-1", "1.0.0-alpha", -1},
		{"1.0.0-alpha", "1.0.0-alpha.1", -1},
		{"1.0.0-alpha.beta", "1.0.0-beta", -1},
		{"1.0.0-beta.11", "1.0.0-rc.1", -1},
		{"2.0.0", "10.0.0", -1},
		{"1.2.0", "1.10.0", -1},
		{"1.0.9", "1.0.10", -1},
	}
	for _, tc := range tests {
		a, b := mustVersion(t, tc.a), mustVersion(t, tc.b)
		assert.Equal(t, tc.expected, a.Compare(b), "%s vs %s", tc.a, tc.b)
	}
}

func TestVersionCompareUnparseablePrerelease(t *testing.T) {
	v := Version{Major: 1, Prerelease: []string{"beta 1", "0"}}
	assert.NotPanics(t, func() {
		assert.Equal(t, 0, v.Compare(v))
		assert.Equal(t, -1, v.Compare(Version{Major: 1}))
	})
}

func TestValidIdentifier(t *testing.T) {
	for _, id := range []string{"", "beta", "rc", "rc.1", "alpha-2", "0"} {
		assert.True(t, ValidIdentifier(id), "identifier %q", id)
	}
	for _, id := range []string{"beta 1", "rc_1", "01", "beta..1", ".rc", "β"} {
		assert.False(t, ValidIdentifier(id), "identifier %q", id)
	}
}

func TestParseLoose(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1.2.3", "1.2.3"},
		{"v1.2.3", "1.2.3"},
		{"=1.2.3", "1.2.3"},
		{" v1.2.3-rc.1 ", "1.2.3-rc.1"},
	}
	for _, tc := range tests {
		sv, err := parseLoose(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.expected, fromSemver(sv).String())
	}

	for _, bad := range []string{"2024", "v2", "v1.9", "1.2", "release-1.2.3", "latest", ""} {
		_, err := parseLoose(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestVersionMarshalText(t *testing.T) {
	v, _ := ParseVersion("1.0.1-beta.0")
	out, err := json.Marshal(struct {
		V Version `json:"v"`
	}{v})
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":"1.0.1-beta.0"}`, string(out))
}
