package model

// Identity is the durable local user record. It is keyed by id, but email
// is also unique by definition; identity resolution uses email as the
// natural key. Identities are created on first login and never deleted.
type Identity struct {
	ID         int64  `json:"id"         db:"id"`
	Name       string `json:"name"       db:"name"`
	Email      string `json:"email"      db:"email"`
	PictureURL string `json:"picture_url" db:"picture_url"`
}

// CreateIdentityRequest carries the profile fields captured at first login.
type CreateIdentityRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	PictureURL string `json:"picture_url"`
}
