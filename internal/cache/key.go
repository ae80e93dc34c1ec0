package cache

import (
	"strconv"
	"strings"
	"time"
)

// Namespaces used by the application.
const (
	NamespaceChat       = "chat"
	NamespaceGeneration = "generation"
	NamespaceProfile    = "profile"
	NamespaceRevoked    = "revoked"
)

const sep = ":"

var partEscaper = strings.NewReplacer("%", "%25", sep, "%3A")

// Key is a namespaced cache key. Build keys with the constructors below rather than by hand.
type Key struct {
	Namespace string
	Parts     []string
}

// String joins the namespace and escaped parts with ":".
func (k Key) String() string {
	var b strings.Builder
	b.WriteString(k.Namespace)
	for _, p := range k.Parts {
		b.WriteString(sep)
		b.WriteString(partEscaper.Replace(p))
	}
	return b.String()
}

// ChatKey addresses one chat exchange of a user.
func ChatKey(userID string, at time.Time) Key {
	return Key{Namespace: NamespaceChat, Parts: []string{userID, millis(at)}}
}

// GenerationKey addresses one generation result of a user.
func GenerationKey(kind, userID string, at time.Time) Key {
	return Key{Namespace: NamespaceGeneration, Parts: []string{kind, userID, millis(at)}}
}

// ProfileKey addresses the cached profile of a user.
func ProfileKey(userID string) Key {
	return Key{Namespace: NamespaceProfile, Parts: []string{userID}}
}

// RevokedTokenKey marks a revoked token id.
func RevokedTokenKey(jti string) Key {
	return Key{Namespace: NamespaceRevoked, Parts: []string{jti}}
}

func millis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
