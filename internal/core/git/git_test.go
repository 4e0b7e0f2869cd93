package git

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLog(t *testing.T) {
	output := "aaaa1111\x1faaaa111\x1fJane Doe\x1fjane@example.com\x1f2024-05-03T10:00:00+02:00\x1fAdd feature: x\n" +
		"bbbb2222\x1fbbbb222\x1fJohn Roe\x1fjohn@example.com\x1f2024-05-02T09:30:00Z\x1fFix\x1fodd subject\n"

	commits, err := parseLog(output)
	require.NoError(t, err)
	require.Len(t, commits, 2)

	assert.Equal(t, "aaaa1111", commits[0].Hash)
	assert.Equal(t, "aaaa111", commits[0].ShortHash)
	assert.Equal(t, "Jane Doe", commits[0].Author)
	assert.Equal(t, "jane@example.com", commits[0].Email)
	assert.Equal(t, "Add feature: x", commits[0].Subject)
	assert.True(t, commits[0].Date.Equal(time.Date(2024, 5, 3, 8, 0, 0, 0, time.UTC)))

	assert.Equal(t, "Fix\x1fodd subject", commits[1].Subject, "subject keeps any trailing separators")
}

func TestParseLog_Errors(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{"too few fields", "abc\x1fab\x1fJane\n"},
		{"bad date", "abc\x1fab\x1fJane\x1fj@x\x1fyesterday\x1fsubject\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseLog(tt.output)
			assert.Error(t, err)
		})
	}
}

func TestParseLog_Empty(t *testing.T) {
	commits, err := parseLog("\n\n")
	require.NoError(t, err)
	assert.Empty(t, commits)
}

func TestParseShow(t *testing.T) {
	output := "abc123\x1fabc\x1fJane Doe\x1fjane@example.com\x1f2024-05-03T10:00:00Z\x1fAdd parser\x1fLonger body\nsecond line\n\x1e\n" +
		" parse.go | 12 ++++++++----\n 1 file changed, 8 insertions(+), 4 deletions(-)\n"

	detail, err := parseShow(output)
	require.NoError(t, err)

	assert.Equal(t, "abc123", detail.Hash)
	assert.Equal(t, "Add parser", detail.Subject)
	assert.Equal(t, "Longer body\nsecond line", detail.Body)
	assert.Equal(t, " parse.go | 12 ++++++++----\n 1 file changed, 8 insertions(+), 4 deletions(-)", detail.Stat)
}

func TestParseShow_Malformed(t *testing.T) {
	_, err := parseShow("no separators here")
	assert.Error(t, err)
}

func TestParseShortlog(t *testing.T) {
	output := "     3\tSmall Contributor <small@example.com>\n" +
		"    42\tJane Doe <jane@example.com>\n" +
		"     7\tNo Email\n" +
		"garbage line\n"

	got := parseShortlog(output)

	assert.Equal(t, []Contributor{
		{Name: "Jane Doe", Email: "jane@example.com", Commits: 42},
		{Name: "No Email", Commits: 7},
		{Name: "Small Contributor", Email: "small@example.com", Commits: 3},
	}, got)
}

func TestParseRemoteBranches(t *testing.T) {
	output := "  origin/HEAD -> origin/main\n  origin/main\n  origin/feature/x\n\n"

	assert.Equal(t, []string{"origin/main", "origin/feature/x"}, parseRemoteBranches(output))
}

func TestValidateRevision(t *testing.T) {
	tests := []struct {
		rev     string
		wantErr bool
	}{
		{"HEAD", false},
		{"abc1234", false},
		{"main~3", false},
		{"origin/feature/x", false},
		{"", true},
		{"-n", true},
		{"--output=x", true},
		{"a b", true},
	}

	for _, tt := range tests {
		t.Run(tt.rev, func(t *testing.T) {
			err := validateRevision(tt.rev)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRevision)
				return
			}
			assert.NoError(t, err)
		})
	}
}
