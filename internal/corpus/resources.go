package corpus

import (
	"fmt"

	"github.com/kljensen/snowball/english"
	"github.com/kljensen/snowball/french"
)

// Resources bundles the linguistic tables for one language: the stop-word
// set and the stemmer. A Resources value is loaded once and shared
// read-only across analysis calls.
type Resources struct {
	Language  string
	stopwords map[string]struct{}
	stem      func(word string) string
}

// ResourcesFor returns the linguistic resources for a supported language
// code ("fr" or "en").
func ResourcesFor(lang string) (*Resources, error) {
	switch lang {
	case "en":
		return &Resources{
			Language:  "en",
			stopwords: toSet(englishStopwords),
			stem:      func(w string) string { return english.Stem(w, false) },
		}, nil
	case "fr":
		return &Resources{
			Language:  "fr",
			stopwords: toSet(frenchStopwords),
			stem:      func(w string) string { return french.Stem(w, false) },
		}, nil
	default:
		return nil, fmt.Errorf("no linguistic resources for language %q", lang)
	}
}

// IsStopword reports whether the token is in the language's stop list.
func (r *Resources) IsStopword(token string) bool {
	_, ok := r.stopwords[token]
	return ok
}

// Stem reduces a token to its root form.
func (r *Resources) Stem(token string) string {
	return r.stem(token)
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
