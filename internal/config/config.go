package config

import (
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Source provides Action inputs and environment variables.
// *githubactions.Action satisfies it.
type Source interface {
	GetInput(name string) string
	Getenv(key string) string
}

// Input names declared in action.yml
const (
	InputBody        = "BODY"
	InputOrg         = "ORG"
	InputRepo        = "REPO"
	InputIssueNumber = "ISSUE_NUMBER"
	InputTeamID      = "TEAM_ID"
	InputToken       = "TOKEN"
)

// Config holds the inputs of a single run
type Config struct {
	// Issue comment
	Body        string
	Org         string
	Repo        string
	IssueNumber int

	// Invitation
	TeamID int64

	// GitHub
	Token  string
	APIURL string
}

// Load reads the configuration from Action inputs. A .env file is loaded
// first so the step can be run locally; envFile overrides the default path.
func Load(src Source, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, &ConfigError{Field: "env-file", Message: err.Error()}
		}
	} else {
		// Load .env file if it exists (ignore error if not found)
		_ = godotenv.Load()
	}

	cfg := &Config{
		Body:   strings.TrimSpace(src.GetInput(InputBody)),
		Org:    strings.TrimSpace(src.GetInput(InputOrg)),
		Repo:   strings.TrimSpace(src.GetInput(InputRepo)),
		Token:  strings.TrimSpace(src.GetInput(InputToken)),
		APIURL: strings.TrimSpace(src.Getenv("GITHUB_API_URL")),
	}

	if v := strings.TrimSpace(src.GetInput(InputIssueNumber)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, &ConfigError{Field: InputIssueNumber, Message: "must be an integer"}
		}
		cfg.IssueNumber = n
	}

	if v := strings.TrimSpace(src.GetInput(InputTeamID)); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, &ConfigError{Field: InputTeamID, Message: "must be an integer"}
		}
		cfg.TeamID = n
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Body == "" {
		return &ConfigError{Field: InputBody, Message: "input required and not supplied"}
	}
	if c.Org == "" {
		return &ConfigError{Field: InputOrg, Message: "input required and not supplied"}
	}
	if c.Repo == "" {
		return &ConfigError{Field: InputRepo, Message: "input required and not supplied"}
	}
	if c.IssueNumber <= 0 {
		return &ConfigError{Field: InputIssueNumber, Message: "must be a positive integer"}
	}
	if c.TeamID <= 0 {
		return &ConfigError{Field: InputTeamID, Message: "must be a positive integer"}
	}
	if c.Token == "" {
		return &ConfigError{Field: InputToken, Message: "input required and not supplied"}
	}
	return nil
}

// Username returns the last whitespace-separated token of the comment body
func (c *Config) Username() string {
	fields := strings.Fields(c.Body)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
