// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package tfidf

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Options configures a Vectorizer.
type Options struct {
	// StopWords drops common English words before counting.
	StopWords bool

	// MaxFeatures caps the vocabulary to the most frequent terms.
	// Zero means unlimited.
	MaxFeatures int
}

// Vectorizer maps documents to TF-IDF vectors over a vocabulary learned by Fit.
type Vectorizer struct {
	opts  Options
	vocab map[string]int
	terms []string
	idf   []float64
}

// New creates an unfitted Vectorizer.
func New(opts Options) *Vectorizer {
	return &Vectorizer{opts: opts, vocab: map[string]int{}}
}

// Fit learns the vocabulary and inverse document frequencies from docs.
func (v *Vectorizer) Fit(docs []string) *Vectorizer {
	df := make(map[string]int)
	total := make(map[string]int)

	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, tok := range Tokenize(doc, v.opts.StopWords) {
			total[tok]++
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}

	if v.opts.MaxFeatures > 0 && len(terms) > v.opts.MaxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if total[terms[i]] != total[terms[j]] {
				return total[terms[i]] > total[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:v.opts.MaxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(docs))
	v.vocab = make(map[string]int, len(terms))
	v.terms = terms
	v.idf = make([]float64, len(terms))
	for i, t := range terms {
		v.vocab[t] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}
	return v
}

// FitTransform fits the vocabulary on docs and returns their vectors.
func (v *Vectorizer) FitTransform(docs []string) []Vector {
	v.Fit(docs)
	out := make([]Vector, len(docs))
	for i, doc := range docs {
		out[i] = v.Transform(doc)
	}
	return out
}

// Transform returns the L2-normalised TF-IDF vector of doc. Terms outside the
// fitted vocabulary are ignored, so unseen text yields the zero vector.
func (v *Vectorizer) Transform(doc string) Vector {
	counts := make(map[int]float64)
	for _, tok := range Tokenize(doc, v.opts.StopWords) {
		if i, ok := v.vocab[tok]; ok {
			counts[i]++
		}
	}
	for i := range counts {
		counts[i] *= v.idf[i]
	}
	return newVector(counts).Normalize()
}

// Size returns the vocabulary size.
func (v *Vectorizer) Size() int {
	return len(v.terms)
}

// Terms returns the vocabulary in index order.
func (v *Vectorizer) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Tokenize lowercases doc and splits it into runs of two or more word
// characters, optionally dropping English stop words.
func Tokenize(doc string, dropStopWords bool) []string {
	fields := strings.FieldsFunc(strings.ToLower(doc), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
	})

	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) < 2 {
			continue
		}
		if dropStopWords && isStopWord(f) {
			continue
		}
		out = append(out, f)
	}
	return out
}
