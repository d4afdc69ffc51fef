package apikey

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/quoteflow/quote-service/internal/types"
)

// APIKey grants programmatic access to the owner's account. Only the SHA-256
// hash is stored; the full key is shown once at creation.
type APIKey struct {
	ID     string `db:"id" json:"id"`
	UserID string `db:"user_id" json:"user_id"`
	Name   string `db:"name" json:"name"`
	// Prefix is the first characters of the key, kept for display.
	Prefix     string     `db:"prefix" json:"prefix"`
	HashedKey  string     `db:"hashed_key" json:"-"`
	LastUsedAt *time.Time `db:"last_used_at" json:"last_used_at,omitempty"`

	types.BaseModel
}

// HashKey returns the hex SHA-256 digest stored and compared on lookup.
func HashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
