// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package tfidf

import (
	"math"
	"reflect"
	"testing"
)

const eps = 1e-9

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		doc       string
		stopWords bool
		want      []string
	}{
		{"lowercases and splits", "The Great Gatsby", false, []string{"the", "great", "gatsby"}},
		{"drops stop words", "The Great Gatsby", true, []string{"great", "gatsby"}},
		{"drops single characters", "Book 1 by J. R. R. Tolkien", false, []string{"book", "by", "tolkien"}},
		{"keeps digits", "1984 George Orwell", true, []string{"1984", "george", "orwell"}},
		{"punctuation separates", "Alice's Adventures-in-Wonderland", false, []string{"alice", "adventures", "in", "wonderland"}},
		{"empty", "", true, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Tokenize(tt.doc, tt.stopWords)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.doc, got, tt.want)
			}
		})
	}
}

func TestVectorizer_FitTransform(t *testing.T) {
	t.Parallel()

	docs := []string{
		"physics textbook",
		"physics novel",
		"romance novel",
	}
	v := New(Options{})
	vecs := v.FitTransform(docs)

	if v.Size() != 4 {
		t.Fatalf("Size() = %d, want 4", v.Size())
	}
	if got, want := v.Terms(), []string{"novel", "physics", "romance", "textbook"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() = %v, want %v", got, want)
	}

	for i, vec := range vecs {
		if n := vec.Norm(); math.Abs(n-1) > eps {
			t.Errorf("doc %d norm = %f, want 1", i, n)
		}
	}

	// "textbook" appears in one document, "physics" in two: the rarer term
	// carries more weight inside doc 0.
	d0 := vecs[0].Dense(v.Size())
	if d0[3] <= d0[1] {
		t.Errorf("rare term weight %f should exceed common term weight %f", d0[3], d0[1])
	}

	if c := Cosine(vecs[0], vecs[2]); c != 0 {
		t.Errorf("disjoint docs cosine = %f, want 0", c)
	}
	if c := Cosine(vecs[0], vecs[1]); c <= 0 || c >= 1 {
		t.Errorf("overlapping docs cosine = %f, want in (0,1)", c)
	}
}

func TestVectorizer_IDF(t *testing.T) {
	t.Parallel()

	v := New(Options{}).Fit([]string{"aa bb", "aa"})
	// idf(aa) = ln(3/3)+1 = 1, idf(bb) = ln(3/2)+1
	vec := v.Transform("aa bb")
	d := vec.Dense(v.Size())
	wantRatio := math.Log(1.5) + 1
	if got := d[1] / d[0]; math.Abs(got-wantRatio) > eps {
		t.Errorf("bb/aa weight ratio = %f, want %f", got, wantRatio)
	}
}

func TestVectorizer_UnknownTermsYieldZero(t *testing.T) {
	t.Parallel()

	v := New(Options{StopWords: true}).Fit([]string{"dystopian fiction"})
	if vec := v.Transform("cooking gardening"); !vec.IsZero() {
		t.Errorf("Transform of unseen text = %+v, want zero vector", vec)
	}
}

func TestVectorizer_MaxFeatures(t *testing.T) {
	t.Parallel()

	docs := []string{"aa aa aa bb", "aa bb cc", "dd"}
	v := New(Options{MaxFeatures: 2}).Fit(docs)
	if got, want := v.Terms(), []string{"aa", "bb"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() = %v, want %v", got, want)
	}
}

func TestVector_SumAndNormalize(t *testing.T) {
	t.Parallel()

	a := newVector(map[int]float64{0: 1, 2: 2})
	b := newVector(map[int]float64{2: 1, 5: 3})
	s := Sum(a, b)

	if want := []int{0, 2, 5}; !reflect.DeepEqual(s.Indices, want) {
		t.Fatalf("Sum indices = %v, want %v", s.Indices, want)
	}
	if want := []float64{1, 3, 3}; !reflect.DeepEqual(s.Values, want) {
		t.Errorf("Sum values = %v, want %v", s.Values, want)
	}

	n := s.Normalize()
	if math.Abs(n.Norm()-1) > eps {
		t.Errorf("Normalize norm = %f, want 1", n.Norm())
	}
	if s.Values[1] != 3 {
		t.Error("Normalize must not modify the receiver")
	}

	zero := Sum()
	if !zero.IsZero() {
		t.Error("Sum() of nothing should be zero")
	}
	if z := zero.Normalize(); !z.IsZero() {
		t.Error("Normalize of zero vector should stay zero")
	}
	if c := Cosine(zero, a); c != 0 {
		t.Errorf("Cosine with zero vector = %f, want 0", c)
	}
}
