package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MembersScope-Werte: "all" enthält geerbte Mitglieder, "direct" nur direkte.
const (
	MembersScopeAll    = "all"
	MembersScopeDirect = "direct"
)

type Config struct {
	GitLabURL       string `env:"GITLAB_URL" envDefault:"https://gitlab.com"`
	GitLabToken     string `env:"GITLAB_TOKEN"`
	OutDir          string `env:"OUTPUT_DIR" envDefault:"."`
	MembersScope    string `env:"MEMBERS_SCOPE" envDefault:"all"`
	IncludeArchived bool
	SSLVerify       bool
	SleepSeconds    float64
	Verbose         bool `env:"VERBOSE" envDefault:"false"`
}

func NewConfig() (*Config, error) {
	// .env laden (ignoriere Fehler wenn Datei nicht existiert)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("⚠️  Warnung beim Laden der .env: %v\n", err)
	}

	cfg := &Config{SSLVerify: true}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("umgebungsvariablen ungültig: %w", err)
	}

	if cfg.Verbose {
		cfg.printDebugInfo()
	}

	return cfg, nil
}

func (c *Config) printDebugInfo() {
	fmt.Printf("🔧 Configuration loaded:\n")
	fmt.Printf("   GitLab URL: %s\n", c.GitLabURL)
	fmt.Printf("   Output Dir: %s\n", c.OutDir)
	fmt.Printf("   Members Scope: %s\n", c.MembersScope)
	fmt.Printf("   Include Archived: %t\n", c.IncludeArchived)
	fmt.Printf("   Has GitLab Token: %t (length: %d)\n",
		c.GitLabToken != "", len(c.GitLabToken))
}

func (c *Config) Validate() error {
	if c.GitLabURL == "" {
		return fmt.Errorf("GitLab URL fehlt (GITLAB_URL)")
	}
	if c.GitLabToken == "" {
		return fmt.Errorf("GitLab Token fehlt (GITLAB_TOKEN)")
	}
	if c.MembersScope != MembersScopeAll && c.MembersScope != MembersScopeDirect {
		return fmt.Errorf("ungültiger members-scope %q (erlaubt: all, direct)", c.MembersScope)
	}
	return nil
}

func (c *Config) GetGitLabBaseURL() string {
	return strings.TrimSuffix(c.GitLabURL, "/")
}
