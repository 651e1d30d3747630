package language

import (
	"strings"
	"sync"

	lingua "github.com/pemistahl/lingua-go"
)

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// Detector classifies the natural language of a text sample.
type Detector struct{}

// NewDetector returns a detector backed by a process-wide lingua model.
// The underlying models are loaded once and shared read-only.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the lowercase ISO 639-1 code of the detected language,
// or "" when no language can be determined.
func (d *Detector) Detect(text string) string {
	sample := strings.TrimSpace(text)
	if sample == "" {
		return ""
	}

	lang, exists := shared().DetectLanguageOf(sample)
	if !exists {
		return ""
	}

	code := strings.ToLower(lang.IsoCode639_1().String())
	if len(code) != 2 {
		return ""
	}
	return code
}

func shared() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			WithPreloadedLanguageModels().
			Build()
	})
	return detector
}
