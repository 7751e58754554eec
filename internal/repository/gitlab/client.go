package gitlab

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"hufschlaeger.net/gitlab-audit-exporter/internal/config"
	domain "hufschlaeger.net/gitlab-audit-exporter/internal/domain/gitlab"
	apperrors "hufschlaeger.net/gitlab-audit-exporter/internal/errors"
)

const perPage = 100

type Repository struct {
	config     *config.Config
	httpClient *http.Client
	baseURL    string
}

// authTransport setzt den Bearer-Token auf jeden Request.
type authTransport struct {
	token string
	base  http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+t.token)
	return t.base.RoundTrip(req)
}

func NewRepository(cfg *config.Config) *Repository {
	var base http.RoundTripper = http.DefaultTransport
	if !cfg.SSLVerify {
		base = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &Repository{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &authTransport{
				token: cfg.GitLabToken,
				base:  base,
			},
		},
		baseURL: cfg.GetGitLabBaseURL() + "/api/v4",
	}
}

// ListProjects holt alle Projekte mit serverseitigem Archived-Filter.
// Die Pagination wird vollständig abgearbeitet bevor die Liste zurückkommt.
func (r *Repository) ListProjects(archived bool) ([]domain.Project, error) {
	query := url.Values{}
	query.Set("archived", strconv.FormatBool(archived))

	var projects []domain.Project
	err := r.listAll("/projects", query, func(body []byte) error {
		var page []domain.Project
		if err := json.Unmarshal(body, &page); err != nil {
			return err
		}
		projects = append(projects, page...)
		return nil
	})
	return projects, err
}

// ListGroups holt alle sichtbaren Gruppen.
func (r *Repository) ListGroups() ([]domain.Group, error) {
	var groups []domain.Group
	err := r.listAll("/groups", url.Values{}, func(body []byte) error {
		var page []domain.Group
		if err := json.Unmarshal(body, &page); err != nil {
			return err
		}
		groups = append(groups, page...)
		return nil
	})
	return groups, err
}

// ListUsers holt die globale Benutzerliste. Welche Felder sichtbar sind
// hängt vom Token ab (Admin sieht email/is_admin), fehlende Felder
// dekodieren zu nil bzw. Zero-Values.
func (r *Repository) ListUsers() ([]domain.User, error) {
	var users []domain.User
	err := r.listAll("/users", url.Values{}, func(body []byte) error {
		var page []domain.User
		if err := json.Unmarshal(body, &page); err != nil {
			return err
		}
		users = append(users, page...)
		return nil
	})
	return users, err
}

// ListProjectMembers holt die Mitgliederliste eines Projekts gemäß
// konfiguriertem Scope ("all" inkl. geerbter Mitglieder, "direct" nur direkte).
func (r *Repository) ListProjectMembers(projectID int) ([]domain.Member, error) {
	return r.listMembers(fmt.Sprintf("/projects/%d", projectID))
}

// ListGroupMembers holt die Mitgliederliste einer Gruppe.
func (r *Repository) ListGroupMembers(groupID int) ([]domain.Member, error) {
	return r.listMembers(fmt.Sprintf("/groups/%d", groupID))
}

func (r *Repository) listMembers(resourcePath string) ([]domain.Member, error) {
	path := resourcePath + "/members"
	if r.config.MembersScope == config.MembersScopeAll {
		path = resourcePath + "/members/all"
	}

	var members []domain.Member
	err := r.listAll(path, url.Values{}, func(body []byte) error {
		var page []domain.Member
		if err := json.Unmarshal(body, &page); err != nil {
			return err
		}
		members = append(members, page...)
		return nil
	})
	return members, err
}

// listAll arbeitet eine paginierte Collection über den X-Next-Page Header
// vollständig ab; decode hängt den Body jeder Seite an die Ergebnisliste an.
func (r *Repository) listAll(path string, query url.Values, decode func([]byte) error) error {
	page := 1
	for {
		body, nextPage, err := r.getPage(path, query, page)
		if err != nil {
			return err
		}

		if err := decode(body); err != nil {
			return apperrors.NewDataShapeError(
				fmt.Sprintf("unerwartete Antwortstruktur von %s", path), err)
		}

		if nextPage == "" {
			return nil
		}
		next, err := strconv.Atoi(nextPage)
		if err != nil {
			return nil
		}
		page = next
	}
}

func (r *Repository) getPage(path string, query url.Values, page int) ([]byte, string, error) {
	req, err := http.NewRequest(http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return nil, "", err
	}

	q := req.URL.Query()
	for key, values := range query {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("page", strconv.Itoa(page))
	req.URL.RawQuery = q.Encode()

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, "", apperrors.NewNetworkError("GitLab API nicht erreichbar", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Printf("fehler beim Schliessen des Response Bodies.")
		}
	}()

	// Rate-Limit-Schonung
	if r.config.SleepSeconds > 0 {
		time.Sleep(time.Duration(r.config.SleepSeconds * float64(time.Second)))
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, "", apperrors.NewUnauthorizedError("invalid GitLab token")
	case http.StatusForbidden:
		return nil, "", apperrors.NewForbiddenError(
			fmt.Sprintf("token darf %s nicht lesen", path))
	default:
		return nil, "", apperrors.NewNetworkError(
			fmt.Sprintf("GitLab API error: %d (%s)", resp.StatusCode, path), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", apperrors.NewNetworkError("antwort unvollständig", err)
	}

	return body, resp.Header.Get("X-Next-Page"), nil
}
