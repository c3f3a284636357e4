// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package artifacts

import (
	"math"
	"math/rand"
	"strconv"
)

// DefaultSeed is the seed used for the reference bundle when none is given.
const DefaultSeed int64 = 42

// referenceUsers is the number of pivot columns in the reference bundle.
const referenceUsers = 100

var referenceBooks = []struct {
	title  string
	author string
}{
	{"To Kill a Mockingbird", "Harper Lee"},
	{"1984", "George Orwell"},
	{"The Great Gatsby", "F. Scott Fitzgerald"},
	{"Pride and Prejudice", "Jane Austen"},
	{"The Catcher in the Rye", "J.D. Salinger"},
	{"Animal Farm", "George Orwell"},
	{"The Hobbit", "J.R.R. Tolkien"},
	{"The Lord of the Rings", "J.R.R. Tolkien"},
	{"Moby Dick", "Herman Melville"},
	{"War and Peace", "Leo Tolstoy"},
	{"Crime and Punishment", "Fyodor Dostoevsky"},
	{"The Brothers Karamazov", "Fyodor Dostoevsky"},
	{"Don Quixote", "Miguel de Cervantes"},
	{"Les Misérables", "Victor Hugo"},
	{"The Odyssey", "Homer"},
	{"The Iliad", "Homer"},
	{"The Divine Comedy", "Dante Alighieri"},
	{"Ulysses", "James Joyce"},
	{"Hamlet", "William Shakespeare"},
	{"Macbeth", "William Shakespeare"},
}

// Reference builds the reference bundle: twenty classics, the first ten of
// them ranked as popular, and a similarity matrix derived from a random
// user-rating pivot. The same seed always yields the same bundle.
func Reference(seed int64) *Bundle {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic fixture data

	n := len(referenceBooks)
	b := &Bundle{
		Books:   make([]Row, 0, n),
		Popular: make([]Row, 0, 10),
		Pivot: Pivot{
			Index:  make([]string, 0, n),
			Values: make([][]float64, n),
		},
	}

	for i, rb := range referenceBooks {
		b.Books = append(b.Books, Row{
			"Book-Title":  rb.title,
			"Book-Author": rb.author,
			"Image-URL-M": referenceImageURL(i),
		})
		b.Pivot.Index = append(b.Pivot.Index, rb.title)

		row := make([]float64, referenceUsers)
		for j := range row {
			row[j] = rng.Float64()
		}
		b.Pivot.Values[i] = row
	}

	for i := 0; i < 10; i++ {
		rb := referenceBooks[i]
		b.Popular = append(b.Popular, Row{
			"Book-Title":  rb.title,
			"Book-Author": rb.author,
			"Image-URL-M": referenceImageURL(i),
			"num_ratings": popularRatings[i],
			"avg_rating":  math.Round((4.5-0.1*float64(i))*10) / 10,
		})
	}

	b.Similarity = CosineMatrix(b.Pivot.Values)
	return b
}

var popularRatings = [10]int{450, 400, 350, 300, 280, 260, 240, 220, 200, 180}

func referenceImageURL(i int) string {
	return "https://images-na.ssl-images-amazon.com/images/P/reference-" + strconv.Itoa(i+1) + ".M.jpg"
}

// CosineMatrix returns the pairwise cosine similarity of the given rows.
// A zero row has similarity 0 with every row, itself included.
func CosineMatrix(rows [][]float64) [][]float64 {
	n := len(rows)
	norms := make([]float64, n)
	for i, r := range rows {
		var s float64
		for _, v := range r {
			s += v * v
		}
		norms[i] = math.Sqrt(s)
	}

	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if norms[i] == 0 || norms[j] == 0 {
				continue
			}
			var dot float64
			for k := range rows[i] {
				if k < len(rows[j]) {
					dot += rows[i][k] * rows[j][k]
				}
			}
			c := dot / (norms[i] * norms[j])
			out[i][j] = c
			out[j][i] = c
		}
	}
	return out
}
