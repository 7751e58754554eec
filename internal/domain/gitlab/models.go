package gitlab

// Project ist ein Projekt-Datensatz aus der REST API. Felder werden
// einmal beim Fetch befüllt und danach nicht mehr verändert.
type Project struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	PathWithNamespace string `json:"path_with_namespace"`
	HTTPURLToRepo     string `json:"http_url_to_repo"`
	DefaultBranch     string `json:"default_branch"`
	Visibility        string `json:"visibility"`
	Archived          bool   `json:"archived"`
}

// Group ist ein Gruppen-Datensatz. ParentID ist nil für Top-Level-Gruppen.
type Group struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	FullPath   string `json:"full_path"`
	WebURL     string `json:"web_url"`
	Visibility string `json:"visibility"`
	ParentID   *int   `json:"parent_id"`
}

// User ist ein Benutzer-Datensatz. Email und die Zeitstempel sind nur
// mit Admin-Token sichtbar und deshalb Pointer: fehlende Felder
// dekodieren zu nil und landen als leere Spalte im Export. Zeitstempel
// bleiben Strings, damit ein unerwartetes Format nicht die ganze Seite
// verwirft.
type User struct {
	ID           int     `json:"id"`
	Username     string  `json:"username"`
	Name         string  `json:"name"`
	State        string  `json:"state"`
	IsAdmin      bool    `json:"is_admin"`
	External     bool    `json:"external"`
	Bot          bool    `json:"bot"`
	Email        *string `json:"email"`
	CreatedAt    *string `json:"created_at"`
	LastSignInAt *string `json:"last_sign_in_at"`
}

// Member ist ein Projekt- oder Gruppenmitglied inkl. Access Level.
type Member struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	AccessLevel int    `json:"access_level"`
}
