// Package actions adapts the GitHub Actions runtime: workflow-command
// logging, step outputs and the job summary.
package actions

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/sethvargo/go-githubactions"

	"github.com/kurihiro0119/org-invite/internal/domain"
)

// Logger writes workflow-command log lines. *githubactions.Action satisfies it.
type Logger interface {
	Infof(format string, args ...any)
	Warningf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Runtime wraps the Actions toolkit for one run
type Runtime struct {
	*githubactions.Action
}

// New creates a runtime writing workflow commands to w and reading
// inputs through getenv. Nil arguments fall back to stdout and os.Getenv.
func New(w io.Writer, getenv func(string) string) *Runtime {
	var opts []githubactions.Option
	if w != nil {
		opts = append(opts, githubactions.WithWriter(w))
	}
	if getenv != nil {
		opts = append(opts, githubactions.WithGetenv(getenv))
	}
	return &Runtime{Action: githubactions.New(opts...)}
}

// Report publishes the outcome as step outputs and a job summary
func (r *Runtime) Report(outcome *domain.Outcome) {
	r.SetOutput("outcome", string(outcome.Kind))
	r.SetOutput("username", outcome.Username)
	r.SetOutput("run-id", outcome.RunID)
	if outcome.ErrorKind != domain.ErrorKindNone {
		r.SetOutput("error-kind", string(outcome.ErrorKind))
	}

	r.AddStepSummary(Summary(outcome))
}

// Summary renders the outcome as markdown: a heading, the posted comment
// and a table of the run's details.
func Summary(outcome *domain.Outcome) string {
	status := "succeeded"
	if outcome.Failed() {
		status = "failed"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "### Organization invite %s\n\n%s\n\n", status, outcome.Comment)

	table := tablewriter.NewWriter(&sb)
	table.SetHeader([]string{"Field", "Value"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.Append([]string{"Outcome", string(outcome.Kind)})
	table.Append([]string{"Username", outcome.Username})
	table.Append([]string{"Organization", outcome.Org})
	if outcome.ErrorKind != domain.ErrorKindNone {
		table.Append([]string{"Error kind", string(outcome.ErrorKind)})
	}
	table.Append([]string{"Run ID", outcome.RunID})
	table.Render()

	if !outcome.CommentPosted {
		sb.WriteString("\n_The issue comment could not be posted._\n")
	}
	return sb.String()
}
