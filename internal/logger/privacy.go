package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

const defaultHashSalt = "default-salt-change-in-production"

var hashSalt = defaultHashSalt

// InitHashSalt loads the salt used by HashUserID from LOG_HASH_SALT.
// Call it after the environment (including .env) has been loaded.
func InitHashSalt() {
	if salt := os.Getenv("LOG_HASH_SALT"); salt != "" {
		hashSalt = salt
		return
	}
	hashSalt = defaultHashSalt
}

// HashUserID creates a privacy-preserving hash of a user ID.
// This allows tracking user actions without exposing actual user IDs.
func HashUserID(userID string) string {
	hash := sha256.Sum256([]byte(userID + ":" + hashSalt))
	return hex.EncodeToString(hash[:])[:8]
}

// SanitizeDescription redacts an expense description but keeps its size for debugging.
func SanitizeDescription(desc string) string {
	if desc == "" {
		return "<empty>"
	}
	return fmt.Sprintf("<redacted: %d words, %d chars>", len(strings.Fields(desc)), len(desc))
}
