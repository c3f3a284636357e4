// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package recommend

import (
	"sort"

	"github.com/tomtom215/bookmarket/internal/models"
	"github.com/tomtom215/bookmarket/internal/tfidf"
)

// Corpus holds the TF-IDF vector of every catalog book, in catalog order.
type Corpus struct {
	vectorizer *tfidf.Vectorizer
	vectors    []tfidf.Vector
	ids        []int64
	pos        map[int64]int
}

// ScoredBook is a catalog position with its similarity to a profile.
type ScoredBook struct {
	Position int
	ID       int64
	Score    float64
}

// BookText is the text a book is vectorised from.
func BookText(b *models.Book) string {
	return b.Title + " " + b.Author + " " + b.Description + " " + b.Genre
}

// BuildCorpus vectorises books with English stop words removed.
func BuildCorpus(books []models.Book) *Corpus {
	docs := make([]string, len(books))
	c := &Corpus{
		ids: make([]int64, len(books)),
		pos: make(map[int64]int, len(books)),
	}
	for i := range books {
		docs[i] = BookText(&books[i])
		c.ids[i] = books[i].ID
		if _, dup := c.pos[books[i].ID]; !dup {
			c.pos[books[i].ID] = i
		}
	}
	c.vectorizer = tfidf.New(tfidf.Options{StopWords: true})
	c.vectors = c.vectorizer.FitTransform(docs)
	return c
}

// Len returns the number of books in the corpus.
func (c *Corpus) Len() int {
	return len(c.vectors)
}

// Vector returns the vector of the book with id.
func (c *Corpus) Vector(id int64) (tfidf.Vector, bool) {
	i, ok := c.pos[id]
	if !ok {
		return tfidf.Vector{}, false
	}
	return c.vectors[i], true
}

// UserProfile sums the vectors of the interacted books and L2-normalises the
// result. Unknown ids are skipped. A zero sum is returned unchanged and
// scores zero against every book.
func UserProfile(interactedIDs []int64, c *Corpus) tfidf.Vector {
	vs := make([]tfidf.Vector, 0, len(interactedIDs))
	for _, id := range interactedIDs {
		if v, ok := c.Vector(id); ok {
			vs = append(vs, v)
		}
	}
	return tfidf.Sum(vs...).Normalize()
}

// Rank scores every catalog book against profile, drops excluded ids and
// sorts by descending score. Equal scores keep catalog order.
func Rank(profile tfidf.Vector, c *Corpus, exclude map[int64]struct{}) []ScoredBook {
	out := make([]ScoredBook, 0, len(c.vectors))
	for i, v := range c.vectors {
		if _, skip := exclude[c.ids[i]]; skip {
			continue
		}
		out = append(out, ScoredBook{Position: i, ID: c.ids[i], Score: tfidf.Cosine(profile, v)})
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Score > out[b].Score
	})
	return out
}
