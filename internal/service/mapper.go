package service

import (
	"fmt"
	"sort"
	"strconv"

	"hufschlaeger.net/gitlab-audit-exporter/internal/config"
	domain "hufschlaeger.net/gitlab-audit-exporter/internal/domain/gitlab"
	"hufschlaeger.net/gitlab-audit-exporter/pkg/utils"
)

// accessLevels bildet die numerischen GitLab Access Levels auf Rollennamen ab.
var accessLevels = map[int]string{
	10: "Guest",
	20: "Reporter",
	30: "Developer",
	40: "Maintainer",
	50: "Owner",
}

// AccessLevelName liefert den Rollennamen zu einem Access Level. Unbekannte
// Werte kommen als Zahl-String zurück damit die Zeile trotzdem emittiert
// wird — nie leer, nie Panic.
func AccessLevelName(level int) string {
	if name, ok := accessLevels[level]; ok {
		return name
	}
	return strconv.Itoa(level)
}

type Mapper struct {
	config *config.Config
}

func NewMapper(cfg *config.Config) *Mapper {
	return &Mapper{config: cfg}
}

func (m *Mapper) ProjectHeader() []string {
	return []string{
		"name", "path_with_namespace", "http_url_to_repo", "default_branch",
		"visibility", "archived", "member_name", "member_role",
	}
}

func (m *Mapper) GroupHeader() []string {
	return []string{
		"name", "full_path", "web_url", "visibility", "parent_id",
		"member_name", "member_role",
	}
}

func (m *Mapper) UserHeader() []string {
	return []string{
		"username", "name", "state", "is_admin", "is_external", "is_bot",
		"email", "created_at", "last_sign_in_at",
	}
}

// ProjectRows erzeugt eine Zeile pro Mitglied. Ein Projekt ohne sichtbare
// Mitglieder ergibt genau eine Zeile mit leeren Member-Spalten, damit es
// im Audit nicht verschwindet.
func (m *Mapper) ProjectRows(project domain.Project, members []domain.Member) [][]string {
	base := []string{
		project.Name,
		project.PathWithNamespace,
		project.HTTPURLToRepo,
		project.DefaultBranch,
		project.Visibility,
		strconv.FormatBool(project.Archived),
	}
	return appendMemberRows(base, members)
}

// GroupRows erzeugt eine Zeile pro Mitglied; parent_id bleibt bei
// Top-Level-Gruppen leer.
func (m *Mapper) GroupRows(group domain.Group, members []domain.Member) [][]string {
	parentID := ""
	if group.ParentID != nil {
		parentID = strconv.Itoa(*group.ParentID)
	}
	base := []string{
		group.Name,
		group.FullPath,
		group.WebURL,
		group.Visibility,
		parentID,
	}
	return appendMemberRows(base, members)
}

// UserRow erzeugt die Benutzerzeile. Felder die das Token nicht sehen darf
// (email, Zeitstempel) werden zur leeren Spalte, nie zum Fehler.
func (m *Mapper) UserRow(user domain.User) []string {
	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	return []string{
		user.Username,
		user.Name,
		user.State,
		strconv.FormatBool(user.IsAdmin),
		strconv.FormatBool(user.External),
		strconv.FormatBool(user.Bot),
		email,
		utils.FormatTimestampPtr(user.CreatedAt),
		utils.FormatTimestampPtr(user.LastSignInAt),
	}
}

func appendMemberRows(base []string, members []domain.Member) [][]string {
	pairs := memberPairs(members)
	if len(pairs) == 0 {
		row := append(append([]string{}, base...), "", "")
		return [][]string{row}
	}

	rows := make([][]string, 0, len(pairs))
	for _, pair := range pairs {
		row := append(append([]string{}, base...), pair[0], pair[1])
		rows = append(rows, row)
	}
	return rows
}

// memberPairs sortiert und dedupliziert (ident, rolle) für deterministische
// Reruns, unabhängig von der API-Reihenfolge.
func memberPairs(members []domain.Member) [][2]string {
	seen := make(map[string]bool)
	var pairs [][2]string

	for _, member := range members {
		ident := memberIdent(member)
		role := AccessLevelName(member.AccessLevel)
		key := ident + ":" + role
		if seen[key] {
			continue
		}
		seen[key] = true
		pairs = append(pairs, [2]string{ident, role})
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	return pairs
}

// memberIdent bevorzugt den Username, fällt auf den Anzeigenamen zurück
// und zur Not auf die numerische ID.
func memberIdent(member domain.Member) string {
	if member.Username != "" {
		return member.Username
	}
	if member.Name != "" {
		return member.Name
	}
	return fmt.Sprintf("user_id_%d", member.ID)
}
