package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kurihiro0119/org-invite/internal/actions"
	"github.com/kurihiro0119/org-invite/internal/config"
	"github.com/kurihiro0119/org-invite/internal/githubapi"
	"github.com/kurihiro0119/org-invite/internal/inviter"
)

var (
	envFile    string
	apiURL     string
	maxRetries int
	maxWait    time.Duration

	exitCode int
)

var rootCmd = &cobra.Command{
	Use:   "org-invite",
	Short: "Invite the user named in an issue comment to a GitHub organization",
	Long: `Reads the Action inputs BODY, ORG, REPO, ISSUE_NUMBER, TEAM_ID and TOKEN,
checks whether the last word of BODY is a member of ORG, invites the user to
ORG and TEAM_ID if not, and reports the result as a comment on the issue.

The command exits 0 only when the user was already a member.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runInvite,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file with INPUT_* variables (default is .env)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "GitHub API base URL (default is $GITHUB_API_URL or https://api.github.com)")
	rootCmd.PersistentFlags().IntVar(&maxRetries, "max-retries", githubapi.DefaultMaxRetries, "retries for rate-limited requests")
	rootCmd.PersistentFlags().DurationVar(&maxWait, "max-wait", githubapi.DefaultMaxWait, "longest wait before a single retry")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}

func runInvite(cmd *cobra.Command, args []string) error {
	rt := actions.New(cmd.OutOrStdout(), nil)

	cfg, err := config.Load(rt, envFile)
	if err != nil {
		rt.Errorf("failed to load config: %v", err)
		return err
	}
	if cfg.Token != "" {
		rt.AddMask(cfg.Token)
	}
	if err := cfg.Validate(); err != nil {
		rt.Errorf("invalid config: %v", err)
		return err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}

	ctx := context.Background()
	api, err := githubapi.New(ctx, cfg.Token, githubapi.Options{
		BaseURL:    cfg.APIURL,
		MaxRetries: maxRetries,
		MaxWait:    maxWait,
		Logger:     rt,
	})
	if err != nil {
		rt.Errorf("failed to initialize GitHub client: %v", err)
		return err
	}

	outcome := inviter.New(api, cfg, rt).Run(ctx)
	rt.Report(outcome)

	exitCode = outcome.ExitCode()
	return nil
}
