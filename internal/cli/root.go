package cli

import (
	"github.com/spf13/cobra"

	"hufschlaeger.net/gitlab-audit-exporter/internal/config"
	"hufschlaeger.net/gitlab-audit-exporter/internal/service"
)

type rootFlags struct {
	url      string
	token    string
	outDir   string
	archived bool
	scope    string
	noVerify bool
	sleep    float64
	verbose  bool
}

func newRootCmd() (*cobra.Command, *rootFlags) {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "gitlab-audit-exporter",
		Short: "Exportiert GitLab Projekte, Gruppen und Benutzer als CSV",
		Long: `Exportiert Inventarlisten einer selbstgehosteten GitLab-Instanz für
Audit-Zwecke: Projekte, Gruppen (jeweils mit Mitgliedern und Rollen)
und Benutzer landen als flache CSV-Dateien im Ausgabeverzeichnis.

Auth über GITLAB_URL und GITLAB_TOKEN (oder --url/--token); ein
Admin-Token macht bei Benutzern zusätzliche Felder sichtbar.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, flags)
			if err != nil {
				return err
			}
			return service.NewExporter(cfg).Export()
		},
	}

	cmd.Flags().BoolVar(&flags.archived, "archived-projects", false,
		"Archivierte Projekte zusätzlich nach archived_projects.csv exportieren")
	cmd.Flags().StringVar(&flags.url, "url", "",
		"GitLab Basis-URL (Fallback: GITLAB_URL)")
	cmd.Flags().StringVar(&flags.token, "token", "",
		"GitLab Personal Access Token (Fallback: GITLAB_TOKEN)")
	cmd.Flags().StringVar(&flags.outDir, "outdir", "",
		"Ausgabeverzeichnis (Standard: aktuelles Verzeichnis)")
	cmd.Flags().StringVar(&flags.scope, "members-scope", "",
		"Mitglieder-Scope: 'all' inkl. geerbter Mitglieder, 'direct' nur direkte")
	cmd.Flags().BoolVar(&flags.noVerify, "no-ssl-verify", false,
		"TLS-Zertifikatsprüfung deaktivieren (nicht empfohlen)")
	cmd.Flags().Float64Var(&flags.sleep, "sleep", 0,
		"Pause in Sekunden zwischen API-Aufrufen (gegen Rate Limits)")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false,
		"Geladene Konfiguration ausgeben")

	return cmd, flags
}

// buildConfig baut die Konfiguration aus Umgebung und Flags; gesetzte
// Flags gewinnen gegen Umgebungsvariablen.
func buildConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("url") {
		cfg.GitLabURL = flags.url
	}
	if cmd.Flags().Changed("token") {
		cfg.GitLabToken = flags.token
	}
	if cmd.Flags().Changed("outdir") {
		cfg.OutDir = flags.outDir
	}
	if cmd.Flags().Changed("members-scope") {
		cfg.MembersScope = flags.scope
	}
	if flags.noVerify {
		cfg.SSLVerify = false
	}
	if flags.verbose {
		cfg.Verbose = true
	}
	cfg.IncludeArchived = flags.archived
	cfg.SleepSeconds = flags.sleep

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Execute() error {
	cmd, _ := newRootCmd()
	return cmd.Execute()
}
