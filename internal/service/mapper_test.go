package service

import (
	"reflect"
	"testing"

	"hufschlaeger.net/gitlab-audit-exporter/internal/config"
	domain "hufschlaeger.net/gitlab-audit-exporter/internal/domain/gitlab"
)

func TestAccessLevelName_StandardLevels(t *testing.T) {
	cases := []struct {
		level int
		want  string
	}{
		{10, "Guest"},
		{20, "Reporter"},
		{30, "Developer"},
		{40, "Maintainer"},
		{50, "Owner"},
	}

	for _, c := range cases {
		if got := AccessLevelName(c.level); got != c.want {
			t.Fatalf("level %d: expected %q, got %q", c.level, c.want, got)
		}
	}
}

func TestAccessLevelName_UnknownLevelsFallBackToNumber(t *testing.T) {
	// Unknown levels must never yield an empty role, so the row still gets emitted.
	for _, level := range []int{0, 5, 15, 60, -1} {
		got := AccessLevelName(level)
		if got == "" {
			t.Fatalf("level %d: fallback must not be empty", level)
		}
		if want := map[int]string{0: "0", 5: "5", 15: "15", 60: "60", -1: "-1"}[level]; got != want {
			t.Fatalf("level %d: expected stringified level %q, got %q", level, want, got)
		}
	}
}

func TestProjectRows_OneRowPerMember(t *testing.T) {
	m := NewMapper(&config.Config{})
	project := domain.Project{
		Name:              "api",
		PathWithNamespace: "team/api",
		HTTPURLToRepo:     "https://gitlab.example.com/team/api.git",
		DefaultBranch:     "main",
		Visibility:        "private",
		Archived:          false,
	}
	members := []domain.Member{
		{ID: 2, Username: "bob", Name: "Bob", AccessLevel: 30},
		{ID: 1, Username: "alice", Name: "Alice", AccessLevel: 40},
	}

	rows := m.ProjectRows(project, members)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	// Sorted by member ident, project columns identical across rows
	want0 := []string{"api", "team/api", "https://gitlab.example.com/team/api.git", "main", "private", "false", "alice", "Maintainer"}
	want1 := []string{"api", "team/api", "https://gitlab.example.com/team/api.git", "main", "private", "false", "bob", "Developer"}
	if !reflect.DeepEqual(rows[0], want0) {
		t.Fatalf("row 0 mismatch: %v", rows[0])
	}
	if !reflect.DeepEqual(rows[1], want1) {
		t.Fatalf("row 1 mismatch: %v", rows[1])
	}
}

func TestProjectRows_ZeroMembersStillEmitOneRow(t *testing.T) {
	m := NewMapper(&config.Config{})
	project := domain.Project{Name: "empty", PathWithNamespace: "team/empty", Visibility: "internal", Archived: true}

	rows := m.ProjectRows(project, nil)

	if len(rows) != 1 {
		t.Fatalf("expected exactly 1 fallback row, got %d", len(rows))
	}
	row := rows[0]
	if row[5] != "true" {
		t.Fatalf("archived column: expected true, got %q", row[5])
	}
	if row[6] != "" || row[7] != "" {
		t.Fatalf("member columns should be empty, got %q/%q", row[6], row[7])
	}
}

func TestGroupRows_ParentIDColumn(t *testing.T) {
	m := NewMapper(&config.Config{})

	// Top-level group: parent_id column stays empty
	top := domain.Group{Name: "root", FullPath: "root", WebURL: "https://gitlab.example.com/groups/root", Visibility: "private"}
	rows := m.GroupRows(top, nil)
	if rows[0][4] != "" {
		t.Fatalf("top-level group: expected empty parent_id, got %q", rows[0][4])
	}

	// Subgroup: numeric parent id
	parent := 7
	sub := domain.Group{Name: "sub", FullPath: "root/sub", ParentID: &parent}
	rows = m.GroupRows(sub, []domain.Member{{Username: "carol", AccessLevel: 50}})
	if rows[0][4] != "7" {
		t.Fatalf("subgroup: expected parent_id 7, got %q", rows[0][4])
	}
	if rows[0][5] != "carol" || rows[0][6] != "Owner" {
		t.Fatalf("member columns mismatch: %v", rows[0])
	}
}

func TestUserRow_OptionalFieldsDegradeToEmpty(t *testing.T) {
	m := NewMapper(&config.Config{})

	// Restricted token: no email, never signed in
	user := domain.User{Username: "dave", Name: "Dave", State: "active"}
	row := m.UserRow(user)

	want := []string{"dave", "Dave", "active", "false", "false", "false", "", "", ""}
	if !reflect.DeepEqual(row, want) {
		t.Fatalf("restricted user row mismatch: %v", row)
	}
}

func TestUserRow_AdminVisibleFields(t *testing.T) {
	m := NewMapper(&config.Config{})

	email := "eve@example.com"
	created := "2023-05-01T12:00:00.000Z"
	signIn := "2024-01-02T08:30:00Z"
	user := domain.User{
		Username: "eve", Name: "Eve", State: "blocked",
		IsAdmin: true, External: true, Bot: false,
		Email: &email, CreatedAt: &created, LastSignInAt: &signIn,
	}

	row := m.UserRow(user)
	want := []string{
		"eve", "Eve", "blocked", "true", "true", "false",
		"eve@example.com", "2023-05-01T12:00:00Z", "2024-01-02T08:30:00Z",
	}
	if !reflect.DeepEqual(row, want) {
		t.Fatalf("admin user row mismatch: %v", row)
	}
}

func TestMemberPairs_SortDedupeAndIdentFallback(t *testing.T) {
	members := []domain.Member{
		{ID: 3, Username: "zoe", AccessLevel: 20},
		{ID: 1, Username: "", Name: "Anna Admin", AccessLevel: 50},
		{ID: 3, Username: "zoe", AccessLevel: 20}, // duplicate from inherited listing
		{ID: 9, Username: "", Name: "", AccessLevel: 77},
	}

	pairs := memberPairs(members)

	want := [][2]string{
		{"Anna Admin", "Owner"},
		{"user_id_9", "77"},
		{"zoe", "Reporter"},
	}
	if !reflect.DeepEqual(pairs, want) {
		t.Fatalf("pairs mismatch: %v", pairs)
	}
}
