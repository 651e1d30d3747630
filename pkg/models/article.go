package models

import (
	"crypto/md5"
	"encoding/hex"
)

// ArticleRecord is one ingested feed item in its canonical form.
// The JSON field names are the wire shape shared by the article store
// and the search index; they must not change.
type ArticleRecord struct {
	SourceFeedURL     string    `json:"sourceFeedURL"`
	SourcePageURL     string    `json:"sourcePageURL"`
	PublishedAt       string    `json:"publishedAt"` // feed-native date string, may be empty
	Title             string    `json:"title"`       // lowercased
	Summary           string    `json:"summary"`     // lowercased, may be empty
	Language          string    `json:"language"`    // ISO 639-1, "fr" or "en" once persisted
	Content           string    `json:"content"`     // extracted body text, may be empty
	Category          string    `json:"category"`
	PredictedCategory string    `json:"predictedCategory"` // empty until a classifier runs
	PredictionScores  []float64 `json:"predictionScores"`  // empty until a classifier runs
}

// Fingerprint computes the deduplication identity of an article from its
// raw (pre-normalization) title, link and description. It is an MD5 digest
// of the three strings concatenated in that order with no delimiter, so
// identical inputs produce the identical fingerprint across runs.
func Fingerprint(title, link, description string) string {
	sum := md5.Sum([]byte(title + link + description))
	return hex.EncodeToString(sum[:])
}
