package models

import "time"

// User represents an authenticated calendar owner.
type User struct {
	ID        string    `bson:"id" json:"id"`
	GoogleID  string    `bson:"googleId" json:"-"`
	Email     string    `bson:"email" json:"email"`
	Name      string    `bson:"name" json:"name"`
	Picture   string    `bson:"picture" json:"picture,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`

	// RefreshToken is the AES-GCM sealed Google refresh token, base64 encoded.
	// Never serialized to clients.
	RefreshToken string `bson:"refreshToken,omitempty" json:"-"`
}
