package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/veilleproject/veille/internal/corpus"
)

// ExportPrefix builds the object prefix for one analysis run,
// e.g. "corpora/en/2024-12-04T17-30-00-a1b2c3d4".
func ExportPrefix(language string, now time.Time) string {
	var buf [4]byte
	rand.Read(buf[:])
	stamp := now.UTC().Format("2006-01-02T15-04-05")
	return path.Join("corpora", language, stamp+"-"+hex.EncodeToString(buf[:]))
}

// ExportVocabulary uploads a vocabulary's term list, count matrix and a
// run manifest under a fresh prefix. Returns the prefix used.
func (c *Client) ExportVocabulary(ctx context.Context, vocab *corpus.Vocabulary) (string, error) {
	if err := c.EnsureBucket(ctx); err != nil {
		return "", err
	}

	prefix := ExportPrefix(vocab.Language, time.Now())

	terms, err := json.Marshal(vocab.Terms)
	if err != nil {
		return "", fmt.Errorf("failed to marshal terms: %w", err)
	}
	matrix, err := json.Marshal(vocab.Matrix)
	if err != nil {
		return "", fmt.Errorf("failed to marshal matrix: %w", err)
	}

	termsName := fmt.Sprintf("terms_%s.json", vocab.Language)
	matrixName := fmt.Sprintf("matrix_%s.json", vocab.Language)

	if err := c.PutArtifact(ctx, prefix, termsName, terms); err != nil {
		return "", err
	}
	if err := c.PutArtifact(ctx, prefix, matrixName, matrix); err != nil {
		return "", err
	}

	manifest := Manifest{
		Language:  vocab.Language,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DocCount:  len(vocab.Matrix),
		TermCount: len(vocab.Terms),
		Files:     []string{termsName, matrixName},
	}
	if err := c.PutManifest(ctx, prefix, manifest); err != nil {
		return "", err
	}

	return prefix, nil
}
