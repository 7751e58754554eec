package service

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"hufschlaeger.net/gitlab-audit-exporter/internal/config"
	domain "hufschlaeger.net/gitlab-audit-exporter/internal/domain/gitlab"
	apperrors "hufschlaeger.net/gitlab-audit-exporter/internal/errors"
	gitlabRepo "hufschlaeger.net/gitlab-audit-exporter/internal/repository/gitlab"
)

const (
	FileProjects         = "projects.csv"
	FileArchivedProjects = "archived_projects.csv"
	FileGroups           = "groups.csv"
	FileUsers            = "users.csv"
)

type Exporter struct {
	config     *config.Config
	gitlabRepo *gitlabRepo.Repository
	mapper     *Mapper
}

func NewExporter(cfg *config.Config) *Exporter {
	return &Exporter{
		config:     cfg,
		gitlabRepo: gitlabRepo.NewRepository(cfg),
		mapper:     NewMapper(cfg),
	}
}

// fileResult hält die Statistik einer geschriebenen Datei für die
// Zusammenfassung am Ende.
type fileResult struct {
	file string
	rows int
}

// Export fährt alle Phasen nacheinander: Projekte, optional archivierte
// Projekte, Gruppen, Benutzer. Ein fataler Fehler bricht den Lauf ab und
// benennt die Phase; Dateien späterer Phasen werden dann nicht angelegt.
func (e *Exporter) Export() error {
	// 1. Konfiguration validieren
	if err := e.config.Validate(); err != nil {
		return fmt.Errorf("konfiguration ungültig: %w", err)
	}

	// 2. Token prüfen bevor irgendeine Datei entsteht
	fmt.Printf("🔍 Verbinde mit GitLab: %s\n", e.config.GetGitLabBaseURL())
	username, err := e.gitlabRepo.ValidateConnection()
	if err != nil {
		return fmt.Errorf("GitLab-Verbindung fehlgeschlagen: %w", err)
	}
	fmt.Printf("🔑 Angemeldet als: %s\n", username)

	if err := os.MkdirAll(e.config.OutDir, 0755); err != nil {
		return fmt.Errorf("ausgabeverzeichnis nicht anlegbar: %w", err)
	}

	var results []fileResult

	// 3. Aktive Projekte
	rows, err := e.exportProjects(false, FileProjects)
	if err != nil {
		return fmt.Errorf("projekt-export fehlgeschlagen: %w", err)
	}
	results = append(results, fileResult{FileProjects, rows})

	// 4. Archivierte Projekte nur auf Wunsch, in eigene Datei
	if e.config.IncludeArchived {
		rows, err := e.exportProjects(true, FileArchivedProjects)
		if err != nil {
			return fmt.Errorf("archiv-export fehlgeschlagen: %w", err)
		}
		results = append(results, fileResult{FileArchivedProjects, rows})
	}

	// 5. Gruppen
	rows, err = e.exportGroups()
	if err != nil {
		return fmt.Errorf("gruppen-export fehlgeschlagen: %w", err)
	}
	results = append(results, fileResult{FileGroups, rows})

	// 6. Benutzer
	rows, err = e.exportUsers()
	if err != nil {
		return fmt.Errorf("benutzer-export fehlgeschlagen: %w", err)
	}
	results = append(results, fileResult{FileUsers, rows})

	e.printSummary(results)
	return nil
}

func (e *Exporter) exportProjects(archived bool, filename string) (int, error) {
	label := "Projekte"
	if archived {
		label = "Archivierte Projekte"
	}
	fmt.Printf("📋 Exportiere %s -> %s ...\n", label, filename)

	projects, err := e.gitlabRepo.ListProjects(archived)
	if err != nil {
		return 0, err
	}

	var rows [][]string
	for i, project := range projects {
		members, err := e.resolveMembers(project.PathWithNamespace, func() ([]domain.Member, error) {
			return e.gitlabRepo.ListProjectMembers(project.ID)
		})
		if err != nil {
			return 0, err
		}
		rows = append(rows, e.mapper.ProjectRows(project, members)...)

		if (i+1)%50 == 0 {
			fmt.Fprintf(os.Stderr, "  ...%d Projekte verarbeitet\n", i+1)
		}
	}

	if err := e.writeCSV(filename, e.mapper.ProjectHeader(), rows); err != nil {
		return 0, err
	}

	fmt.Printf("✅ %d %s, %d Zeilen\n", len(projects), label, len(rows))
	return len(rows), nil
}

func (e *Exporter) exportGroups() (int, error) {
	fmt.Printf("📋 Exportiere Gruppen -> %s ...\n", FileGroups)

	groups, err := e.gitlabRepo.ListGroups()
	if err != nil {
		return 0, err
	}

	var rows [][]string
	for i, group := range groups {
		members, err := e.resolveMembers(group.FullPath, func() ([]domain.Member, error) {
			return e.gitlabRepo.ListGroupMembers(group.ID)
		})
		if err != nil {
			return 0, err
		}
		rows = append(rows, e.mapper.GroupRows(group, members)...)

		if (i+1)%100 == 0 {
			fmt.Fprintf(os.Stderr, "  ...%d Gruppen verarbeitet\n", i+1)
		}
	}

	if err := e.writeCSV(FileGroups, e.mapper.GroupHeader(), rows); err != nil {
		return 0, err
	}

	fmt.Printf("✅ %d Gruppen, %d Zeilen\n", len(groups), len(rows))
	return len(rows), nil
}

func (e *Exporter) exportUsers() (int, error) {
	fmt.Printf("📋 Exportiere Benutzer -> %s ...\n", FileUsers)

	users, err := e.gitlabRepo.ListUsers()
	if err != nil {
		return 0, err
	}

	rows := make([][]string, 0, len(users))
	for i, user := range users {
		rows = append(rows, e.mapper.UserRow(user))

		if (i+1)%200 == 0 {
			fmt.Fprintf(os.Stderr, "  ...%d Benutzer verarbeitet\n", i+1)
		}
	}

	if err := e.writeCSV(FileUsers, e.mapper.UserHeader(), rows); err != nil {
		return 0, err
	}

	fmt.Printf("✅ %d Benutzer\n", len(users))
	return len(rows), nil
}

// resolveMembers holt die Mitgliederliste und degradiert Sichtbarkeits-
// und Strukturfehler zu einer leeren Liste statt den Lauf abzubrechen.
// Auth- und Netzwerkfehler bleiben fatal.
func (e *Exporter) resolveMembers(label string, fetch func() ([]domain.Member, error)) ([]domain.Member, error) {
	members, err := fetch()
	if err != nil {
		if apperrors.IsUnauthorized(err) || apperrors.IsNetwork(err) {
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "⚠️  Mitglieder von %s nicht lesbar: %v\n", label, err)
		return nil, nil
	}
	return members, nil
}

// writeCSV schreibt Header plus Zeilen; eine leere Zeilenmenge ergibt
// eine Datei mit reinem Header.
func (e *Exporter) writeCSV(filename string, header []string, rows [][]string) error {
	path := filepath.Join(e.config.OutDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("datei %s nicht anlegbar: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "⚠️  Fehler beim Schliessen von %s: %v\n", path, cerr)
		}
	}()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("header-Schreiben fehlgeschlagen: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("zeilen-Schreiben fehlgeschlagen: %w", err)
	}

	writer.Flush()
	return writer.Error()
}

func (e *Exporter) printSummary(results []fileResult) {
	fmt.Printf("\n🎉 Export abgeschlossen: %s\n", e.config.OutDir)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Datei", "Zeilen"})
	for _, result := range results {
		table.Append([]string{result.file, strconv.Itoa(result.rows)})
	}
	table.Render()
}
