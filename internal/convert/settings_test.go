package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillport/internal/detect"
)

func TestSettingsFromAnalysis(t *testing.T) {
	body := "You may use the Read and Grep tools.\nNever use the WebFetch tool.\n"
	s := SettingsFromAnalysis(detect.Analyze(body))

	assert.Equal(t, []string{"Grep", "Read"}, s.Permissions.Allow)
	assert.Equal(t, []string{"WebFetch"}, s.Permissions.Deny)
	assert.False(t, s.Empty())
}

func TestSettingsFromAnalysisWithoutPermissions(t *testing.T) {
	s := SettingsFromAnalysis(detect.Analyze("plain prose\n"))
	assert.True(t, s.Empty())
}

func TestSettingsMerge(t *testing.T) {
	a := &ClaudeSettings{Permissions: ClaudePermissions{Allow: []string{"Read"}}}
	b := &ClaudeSettings{Permissions: ClaudePermissions{Allow: []string{"Read", "Grep"}, Deny: []string{"Bash"}}}

	a.Merge(b)
	assert.Equal(t, []string{"Grep", "Read"}, a.Permissions.Allow)
	assert.Equal(t, []string{"Bash"}, a.Permissions.Deny)

	a.Merge(nil)
	assert.Equal(t, []string{"Grep", "Read"}, a.Permissions.Allow)
}

func TestSettingsMarshal(t *testing.T) {
	s := &ClaudeSettings{Permissions: ClaudePermissions{Allow: []string{"Read"}}}
	data, err := s.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"allow"`)
	assert.NotContains(t, string(data), `"deny"`)
}

func TestSplitToolList(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"Read, Grep and Bash(git:*)", []string{"Read", "Grep", "Bash(git:*)"}},
		{"Read and Write", []string{"Read", "Write"}},
		{"Bash(git:*), Read", []string{"Bash(git:*)", "Read"}},
		{"", nil},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, splitToolList(tc.in), "input %q", tc.in)
	}
}
