package domain

import "time"

// User holds one mail account and the OAuth credentials needed to fetch it.
// The Email address is also the key under which the user's corpus is cached.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Name         string    `json:"name"`
	Provider     string    `json:"provider"` // "gmail" or "imap"
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`

	// IMAP accounts only
	ImapServer   string `json:"imap_server,omitempty"`
	ImapPort     int    `json:"imap_port,omitempty"`
	ImapPassword string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
