package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Artifact file names per language. The two files are a pair: one is
// meaningless without the other.
func termsFilename(lang string) string  { return fmt.Sprintf("terms_%s.json", lang) }
func matrixFilename(lang string) string { return fmt.Sprintf("matrix_%s.json", lang) }

// Save persists the vocabulary as its two paired artifacts under dir,
// creating the directory if needed.
func (v *Vocabulary) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}

	if err := writeJSON(filepath.Join(dir, termsFilename(v.Language)), v.Terms); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, matrixFilename(v.Language)), v.Matrix)
}

// Load reads the paired artifacts for lang back from dir. It fails when
// either file is missing or when the matrix shape does not match the term
// list, so a half-written or mismatched pair is never usable.
func Load(dir, lang string) (*Vocabulary, error) {
	var terms []string
	if err := readJSON(filepath.Join(dir, termsFilename(lang)), &terms); err != nil {
		return nil, err
	}

	var matrix [][]int
	if err := readJSON(filepath.Join(dir, matrixFilename(lang)), &matrix); err != nil {
		return nil, err
	}

	for i, row := range matrix {
		if len(row) != len(terms) {
			return nil, fmt.Errorf("artifact pair mismatch for %q: row %d has %d columns, vocabulary has %d terms",
				lang, i, len(row), len(terms))
		}
	}

	return &Vocabulary{Language: lang, Terms: terms, Matrix: matrix}, nil
}

func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}
