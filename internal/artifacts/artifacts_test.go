// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package artifacts

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestReference_Shape(t *testing.T) {
	t.Parallel()

	b := Reference(DefaultSeed)
	if err := b.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if b.Size() != 20 {
		t.Errorf("Size() = %d, want 20", b.Size())
	}
	if len(b.Popular) != 10 {
		t.Errorf("popular rows = %d, want 10", len(b.Popular))
	}
	if got := b.Popular[0].Int(ColRatingsCount); got != 450 {
		t.Errorf("first ratings count = %d, want 450", got)
	}
	if got := b.Popular[9].Float(ColAvgRating); math.Abs(got-3.6) > 1e-9 {
		t.Errorf("last avg rating = %f, want 3.6", got)
	}
	for i := 0; i < b.Size(); i++ {
		if math.Abs(b.Similarity[i][i]-1) > 1e-9 {
			t.Errorf("self similarity [%d] = %f, want 1", i, b.Similarity[i][i])
		}
	}
}

func TestReference_Deterministic(t *testing.T) {
	t.Parallel()

	a, b := Reference(7), Reference(7)
	if !reflect.DeepEqual(a.Similarity, b.Similarity) {
		t.Error("same seed produced different matrices")
	}
	c := Reference(8)
	if reflect.DeepEqual(a.Similarity, c.Similarity) {
		t.Error("different seeds produced identical matrices")
	}
}

func TestWriteLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	want := Reference(DefaultSeed)
	if err := Write(dir, want); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got.Pivot.Index, want.Pivot.Index) {
		t.Errorf("pivot index mismatch")
	}
	if got.Size() != want.Size() {
		t.Errorf("Size() = %d, want %d", got.Size(), want.Size())
	}
	if got.Books[1].String(ColTitle) != "1984" {
		t.Errorf("books[1] title = %q", got.Books[1].String(ColTitle))
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(t *testing.T, dir string)
		want  error
	}{
		{
			name:  "empty directory",
			setup: func(t *testing.T, dir string) {},
			want:  ErrMissing,
		},
		{
			name: "similarity file missing",
			setup: func(t *testing.T, dir string) {
				mustWriteBundle(t, dir)
				if err := os.Remove(filepath.Join(dir, SimilarityFile)); err != nil {
					t.Fatal(err)
				}
			},
			want: ErrMissing,
		},
		{
			name: "not json",
			setup: func(t *testing.T, dir string) {
				mustWriteBundle(t, dir)
				mustWriteFile(t, filepath.Join(dir, PopularFile), "{nope")
			},
			want: ErrMalformed,
		},
		{
			name: "non-square matrix",
			setup: func(t *testing.T, dir string) {
				mustWriteBundle(t, dir)
				mustWriteFile(t, filepath.Join(dir, PivotFile), `["a","b"]`)
				mustWriteFile(t, filepath.Join(dir, SimilarityFile), `[[1,0.5],[0.5]]`)
			},
			want: ErrMalformed,
		},
		{
			name: "pivot size mismatch",
			setup: func(t *testing.T, dir string) {
				mustWriteBundle(t, dir)
				mustWriteFile(t, filepath.Join(dir, PivotFile), `{"index":["a"]}`)
			},
			want: ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			tt.setup(t, dir)
			_, err := Load(dir)
			if !errors.Is(err, tt.want) {
				t.Errorf("Load() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoad_BarePivotArray(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, BooksFile), `[]`)
	mustWriteFile(t, filepath.Join(dir, PopularFile), `[]`)
	mustWriteFile(t, filepath.Join(dir, PivotFile), `["x","y"]`)
	mustWriteFile(t, filepath.Join(dir, SimilarityFile), `[[1,0.2],[0.2,1]]`)

	b, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(b.Pivot.Index, []string{"x", "y"}) {
		t.Errorf("pivot index = %v", b.Pivot.Index)
	}
}

func TestRow_ColumnResolution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		row        Row
		wantTitle  string
		wantImage  *string
		wantCount  int
		wantRating float64
	}{
		{
			name:       "canonical names",
			row:        Row{"Book-Title": "Dune", "Image-URL-M": "http://x/1.jpg", "number_of_ratings": 12.0, "avg_rating": 4.2},
			wantTitle:  "Dune",
			wantImage:  strPtr("http://x/1.jpg"),
			wantCount:  12,
			wantRating: 4.2,
		},
		{
			name:       "legacy aliases",
			row:        Row{"title": "Emma", "image_url_m": "http://x/2.jpg", "num_ratings": 7.0},
			wantTitle:  "Emma",
			wantImage:  strPtr("http://x/2.jpg"),
			wantCount:  7,
			wantRating: 0,
		},
		{
			name:      "canonical wins over alias",
			row:       Row{"Book-Title": "A", "title": "B"},
			wantTitle: "A",
		},
		{
			name:      "null falls through to alias",
			row:       Row{"Book-Title": nil, "title": "B", "num_ratings": "15"},
			wantTitle: "B",
			wantCount: 15,
		},
		{
			name: "nothing present",
			row:  Row{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.row.String(ColTitle); got != tt.wantTitle {
				t.Errorf("title = %q, want %q", got, tt.wantTitle)
			}
			got := tt.row.OptString(ColImageURL)
			if (got == nil) != (tt.wantImage == nil) || (got != nil && *got != *tt.wantImage) {
				t.Errorf("image = %v, want %v", got, tt.wantImage)
			}
			if c := tt.row.Int(ColRatingsCount); c != tt.wantCount {
				t.Errorf("ratings count = %d, want %d", c, tt.wantCount)
			}
			if r := tt.row.Float(ColAvgRating); math.Abs(r-tt.wantRating) > 1e-9 {
				t.Errorf("avg rating = %f, want %f", r, tt.wantRating)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	s := Summarize(Reference(DefaultSeed))
	if s.MatrixSize != 20 || s.Books != 20 || s.PopularRows != 10 {
		t.Errorf("Summarize() = %+v", s)
	}
	if s.PivotUsers != 100 {
		t.Errorf("PivotUsers = %d, want 100", s.PivotUsers)
	}
	if len(s.SampleTitles) != 5 || s.SampleTitles[0] != "To Kill a Mockingbird" {
		t.Errorf("SampleTitles = %v", s.SampleTitles)
	}
	want := []string{"Book-Author", "Book-Title", "Image-URL-M", "avg_rating", "num_ratings"}
	if !reflect.DeepEqual(s.PopularColumns, want) {
		t.Errorf("PopularColumns = %v, want %v", s.PopularColumns, want)
	}
	if len(s.Unresolved) != 0 {
		t.Errorf("Unresolved = %v, want none", s.Unresolved)
	}
}

func TestSummarize_UnresolvedFields(t *testing.T) {
	t.Parallel()

	b := Reference(DefaultSeed)
	b.Popular = []Row{
		{"title": "Dune", "ratings_count": 12.0},
		{"Book-Title": "Emma", "Book-Author": "Jane Austen", "Image-URL-M": nil},
	}
	s := Summarize(b)
	want := []string{"image_url", "avg_rating"}
	if !reflect.DeepEqual(s.Unresolved, want) {
		t.Errorf("Unresolved = %v, want %v", s.Unresolved, want)
	}
}

func TestCosineMatrix_ZeroRow(t *testing.T) {
	t.Parallel()

	m := CosineMatrix([][]float64{{1, 0}, {0, 0}, {2, 0}})
	if m[1][1] != 0 || m[0][1] != 0 {
		t.Errorf("zero row similarities = %v", m[1])
	}
	if math.Abs(m[0][2]-1) > 1e-9 {
		t.Errorf("parallel rows similarity = %f, want 1", m[0][2])
	}
}

func mustWriteBundle(t *testing.T, dir string) {
	t.Helper()
	if err := Write(dir, Reference(DefaultSeed)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func strPtr(s string) *string { return &s }
