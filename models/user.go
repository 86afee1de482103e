package models

// UserInfo is the record built from directory attributes at login time.
// It is never persisted server-side; the client keeps it for the session.
// CostCenter is always empty here: the user picks it at checkout, the
// directory does not know it.
type UserInfo struct {
	Username   string `json:"username"`
	FullName   string `json:"fullName"`
	Department string `json:"department"`
	Email      string `json:"email"`
	CostCenter string `json:"costCenter"`
	IsAdmin    bool   `json:"isAdmin"`
}
