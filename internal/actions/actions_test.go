package actions

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurihiro0119/org-invite/internal/domain"
)

func TestRuntimeLogs(t *testing.T) {
	var buf bytes.Buffer
	rt := New(&buf, func(string) string { return "" })

	var logger Logger = rt
	logger.Infof("Checking if user %s is a member of %s", "octocat", "acme")
	logger.Warningf("Abuse detected for request %s %s", "GET", "/users/octocat")
	logger.Errorf("Requestor not authorized to perform this action")

	out := buf.String()
	assert.Contains(t, out, "Checking if user octocat is a member of acme")
	assert.Contains(t, out, "::warning::Abuse detected for request GET /users/octocat")
	assert.Contains(t, out, "::error::Requestor not authorized to perform this action")
}

func TestRuntimeReport(t *testing.T) {
	dir := t.TempDir()
	outputPath := filepath.Join(dir, "output")
	summaryPath := filepath.Join(dir, "summary")
	require.NoError(t, os.WriteFile(outputPath, nil, 0o600))
	require.NoError(t, os.WriteFile(summaryPath, nil, 0o600))

	env := map[string]string{
		"GITHUB_OUTPUT":       outputPath,
		"GITHUB_STEP_SUMMARY": summaryPath,
	}
	var buf bytes.Buffer
	rt := New(&buf, func(k string) string { return env[k] })

	rt.Report(&domain.Outcome{
		RunID:     "run-1",
		Kind:      domain.OutcomeError,
		ErrorKind: domain.ErrorKindUnauthorized,
		Username:  "octocat",
		Comment:   domain.UnauthorizedComment(),
	})

	outputs, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(outputs), "outcome")
	assert.Contains(t, string(outputs), "error")
	assert.Contains(t, string(outputs), "unauthorized")
	assert.Contains(t, string(outputs), "run-1")

	summary, err := os.ReadFile(summaryPath)
	require.NoError(t, err)
	assert.Contains(t, string(summary), "Organization invite failed")
	assert.Contains(t, string(summary), "You are not authorized to make this request")
	assert.Contains(t, string(summary), "could not be posted")
	assert.Contains(t, string(summary), "| Field")
	assert.Contains(t, string(summary), "| Error kind")
	assert.Contains(t, string(summary), "unauthorized")
}

func TestSummaryTable(t *testing.T) {
	summary := Summary(&domain.Outcome{
		RunID:         "3f1c",
		Kind:          domain.OutcomeAlreadyMember,
		Org:           "acme",
		Username:      "octocat",
		Comment:       domain.AlreadyMemberComment("octocat", "acme"),
		CommentPosted: true,
	})

	assert.Contains(t, summary, "### Organization invite succeeded")
	assert.Contains(t, summary, "octocat is already member of the acme organization")
	assert.NotContains(t, summary, "could not be posted")
	assert.NotContains(t, summary, "Error kind")

	var rows []string
	for _, line := range strings.Split(summary, "\n") {
		if strings.HasPrefix(line, "|") {
			rows = append(rows, line)
		}
	}
	// header, separator, outcome, username, organization, run id
	require.Len(t, rows, 6)
	assert.Contains(t, rows[0], "Field")
	assert.Regexp(t, `^\|-+\|-+\|$`, rows[1])
	assert.Regexp(t, `^\| Outcome\s+\| already_member\s*\|$`, rows[2])
	assert.Regexp(t, `^\| Username\s+\| octocat\s*\|$`, rows[3])
	assert.Regexp(t, `^\| Organization\s+\| acme\s*\|$`, rows[4])
	assert.Regexp(t, `^\| Run ID\s+\| 3f1c\s*\|$`, rows[5])
}
