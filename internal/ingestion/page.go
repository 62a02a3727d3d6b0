// Package ingestion turns job links, pasted job text and uploaded résumé
// files into clean text for the extractors.
package ingestion

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// Page is the sanitized text of an ingested job posting.
type Page struct {
	Text   string       `json:"text"`
	Source types.Source `json:"source"`
	Hash   string       `json:"hash"` // SHA256 hex digest of Text
}

func newPage(text string, src types.Source) *Page {
	return &Page{Text: text, Source: src, Hash: ContentHash(text)}
}

// ContentHash returns the SHA256 hex digest of content.
func ContentHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
