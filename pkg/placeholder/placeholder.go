// Package placeholder generates and recognizes the bracketed tokens that
// stand in for redacted text, e.g. [REDACTED_EMAIL_3f2a9c1d].
package placeholder

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

const (
	prefix  = "[REDACTED_"
	suffix  = "]"
	hashLen = 8 // first 8 hex chars of SHA-256; fixed for compatibility with issued tokens
)

// Generator handles placeholder generation and recognition
type Generator struct {
	pattern *regexp.Regexp
}

// NewGenerator creates a new placeholder generator
func NewGenerator() *Generator {
	// Category segment is optional: an uppercased label plus underscore
	// between the prefix and the hex digest.
	pattern := regexp.MustCompile(
		regexp.QuoteMeta(prefix) + `(?:[A-Z0-9_]+_)?` + fmt.Sprintf(`[a-f0-9]{%d}`, hashLen) + regexp.QuoteMeta(suffix))

	return &Generator{pattern: pattern}
}

// Generate creates a placeholder for the given text. The token embeds the
// truncated SHA-256 digest of the text and, when category is non-empty, the
// uppercased category label. The same text and category always produce the
// same token.
func (g *Generator) Generate(text, category string) string {
	hash := sha256.Sum256([]byte(text))
	digest := hex.EncodeToString(hash[:])[:hashLen]

	if category != "" {
		return prefix + strings.ToUpper(category) + "_" + digest + suffix
	}
	return prefix + digest + suffix
}

// IsPlaceholder checks if a string is a valid placeholder
func (g *Generator) IsPlaceholder(s string) bool {
	return g.pattern.MatchString(s)
}

// FindAll finds all placeholders in a text
func (g *Generator) FindAll(text string) []string {
	return g.pattern.FindAllString(text, -1)
}

// FindAllIndex finds all placeholders and their positions
func (g *Generator) FindAllIndex(text string) [][]int {
	return g.pattern.FindAllStringIndex(text, -1)
}
