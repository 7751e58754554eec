package gitlab

import (
	"context"

	graphql "github.com/hasura/go-graphql-client"

	apperrors "hufschlaeger.net/gitlab-audit-exporter/internal/errors"
)

type currentUserQuery struct {
	CurrentUser struct {
		Username graphql.String
	} `graphql:"currentUser"`
}

// ValidateConnection prüft Token und Erreichbarkeit über die GraphQL API
// (currentUser), bevor der eigentliche Export startet. GitLab antwortet
// bei ungültigem Token mit currentUser == null, nicht mit einem Fehler.
func (r *Repository) ValidateConnection() (string, error) {
	client := graphql.NewClient(r.config.GetGitLabBaseURL()+"/api/graphql", r.httpClient)

	var query currentUserQuery
	if err := client.Query(context.Background(), &query, nil); err != nil {
		return "", apperrors.NewNetworkError("GitLab-Verbindung fehlgeschlagen", err)
	}

	username := string(query.CurrentUser.Username)
	if username == "" {
		return "", apperrors.NewUnauthorizedError("invalid GitLab token")
	}

	return username, nil
}
