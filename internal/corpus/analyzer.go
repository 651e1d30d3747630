package corpus

import (
	"log/slog"
	"sort"
	"strings"
	"unicode"

	"github.com/veilleproject/veille/internal/store"
	"github.com/veilleproject/veille/pkg/models"
)

// Vocabulary is the paired analyzer output for one language: the ordered
// term list and the term-document matrix aligned to it by column. Rows
// correspond one-to-one to the documents fed into the analysis.
type Vocabulary struct {
	Language string   `json:"language"`
	Terms    []string `json:"terms"`
	Matrix   [][]int  `json:"matrix"`
}

// TermCount is one term with its total occurrence count across all
// documents of the language.
type TermCount struct {
	Term  string
	Count int
}

// Analyzer builds per-language vocabularies from the article store.
type Analyzer struct {
	res *Resources
}

// NewAnalyzer creates an Analyzer for the language the resources cover.
func NewAnalyzer(res *Resources) *Analyzer {
	return &Analyzer{res: res}
}

// Analyze selects every record of the analyzer's language, cleans and
// stems its text, and builds the vocabulary and term-document matrix.
// The store is read-only for this pass.
func (a *Analyzer) Analyze(st *store.Store) (*Vocabulary, error) {
	var docs [][]string

	err := st.Iterate(func(_ string, rec models.ArticleRecord) error {
		if rec.Language != a.res.Language {
			return nil
		}
		combined := rec.Title + " " + rec.Summary + " " + rec.Content
		docs = append(docs, a.processText(combined))
		return nil
	})
	if err != nil {
		return nil, err
	}

	vocab := vectorize(a.res.Language, docs)
	slog.Info("corpus analyzed",
		"language", a.res.Language,
		"documents", len(vocab.Matrix),
		"terms", len(vocab.Terms))
	return vocab, nil
}

// processText cleans one document into its stemmed token sequence:
// punctuation stripped, lowercased, digits removed, whitespace-tokenized,
// stop-words dropped, remaining tokens stemmed.
func (a *Analyzer) processText(text string) []string {
	var cleaned strings.Builder
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || r == '_' || unicode.IsSpace(r):
			cleaned.WriteRune(unicode.ToLower(r))
		case unicode.IsDigit(r):
			// dropped
		}
	}

	var tokens []string
	for _, word := range strings.Fields(cleaned.String()) {
		if a.res.IsStopword(word) {
			continue
		}
		tokens = append(tokens, a.res.Stem(word))
	}
	return tokens
}

// vectorize builds the sorted vocabulary and the count matrix, one row
// per document in input order.
func vectorize(language string, docs [][]string) *Vocabulary {
	terms := make(map[string]int)
	for _, doc := range docs {
		for _, tok := range doc {
			terms[tok] = 0
		}
	}

	ordered := make([]string, 0, len(terms))
	for term := range terms {
		ordered = append(ordered, term)
	}
	sort.Strings(ordered)
	for i, term := range ordered {
		terms[term] = i
	}

	matrix := make([][]int, len(docs))
	for i, doc := range docs {
		row := make([]int, len(ordered))
		for _, tok := range doc {
			row[terms[tok]]++
		}
		matrix[i] = row
	}

	return &Vocabulary{Language: language, Terms: ordered, Matrix: matrix}
}

// TermTotals sums each term's occurrences across all documents and
// returns them ascending by count (ties broken by term). Callers wanting
// a top-N view reverse the tail themselves.
func (v *Vocabulary) TermTotals() []TermCount {
	totals := make([]TermCount, len(v.Terms))
	for i, term := range v.Terms {
		totals[i] = TermCount{Term: term}
	}
	for _, row := range v.Matrix {
		for i, n := range row {
			totals[i].Count += n
		}
	}

	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Count != totals[j].Count {
			return totals[i].Count < totals[j].Count
		}
		return totals[i].Term < totals[j].Term
	})
	return totals
}
