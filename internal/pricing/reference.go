// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package pricing

import "math/rand"

// Reference dataset defaults.
const (
	DefaultReferenceSeed    = 42
	DefaultReferenceSamples = 1000
)

// ReferenceSample is one synthetic priced listing.
type ReferenceSample struct {
	Title     string
	Author    string
	Genre     string
	Condition string
	Price     float64
}

// referenceTitles, referenceAuthors and referenceGenres are parallel.
var referenceTitles = []string{
	"The Great Gatsby", "To Kill a Mockingbird", "1984", "Pride and Prejudice",
	"The Catcher in the Rye", "Animal Farm", "Lord of the Flies", "The Hobbit",
	"Brave New World", "Fahrenheit 451", "Jane Eyre", "Wuthering Heights",
	"The Grapes of Wrath", "The Old Man and the Sea", "Moby Dick",
	"Crime and Punishment", "War and Peace", "The Odyssey", "The Iliad",
	"Don Quixote", "Les Misérables", "Anna Karenina", "Ulysses",
	"The Divine Comedy", "One Hundred Years of Solitude", "Hamlet",
	"Frankenstein", "The Picture of Dorian Gray", "Alice's Adventures in Wonderland",
	"Little Women", "The Brothers Karamazov", "The Count of Monte Cristo",
	"A Tale of Two Cities", "Great Expectations", "Dracula", "The Scarlet Letter",
	"The Adventures of Huckleberry Finn", "Gone with the Wind", "The Alchemist",
}

var referenceAuthors = []string{
	"F. Scott Fitzgerald", "Harper Lee", "George Orwell", "Jane Austen",
	"J.D. Salinger", "George Orwell", "William Golding", "J.R.R. Tolkien",
	"Aldous Huxley", "Ray Bradbury", "Charlotte Brontë", "Emily Brontë",
	"John Steinbeck", "Ernest Hemingway", "Herman Melville",
	"Fyodor Dostoevsky", "Leo Tolstoy", "Homer", "Homer",
	"Miguel de Cervantes", "Victor Hugo", "Leo Tolstoy", "James Joyce",
	"Dante Alighieri", "Gabriel García Márquez", "William Shakespeare",
	"Mary Shelley", "Oscar Wilde", "Lewis Carroll",
	"Louisa May Alcott", "Fyodor Dostoevsky", "Alexandre Dumas",
	"Charles Dickens", "Charles Dickens", "Bram Stoker", "Nathaniel Hawthorne",
	"Mark Twain", "Margaret Mitchell", "Paulo Coelho",
}

var referenceGenres = []string{
	"Fiction", "Fiction", "Dystopian", "Romance",
	"Fiction", "Political Satire", "Fiction", "Fantasy",
	"Dystopian", "Dystopian", "Gothic", "Gothic",
	"Historical Fiction", "Fiction", "Adventure",
	"Philosophical Fiction", "Historical Fiction", "Epic", "Epic",
	"Satire", "Historical Fiction", "Realist Fiction", "Modernist",
	"Epic Poetry", "Magical Realism", "Tragedy",
	"Gothic", "Gothic", "Fantasy",
	"Coming of Age", "Philosophical Fiction", "Adventure",
	"Historical Fiction", "Coming of Age", "Gothic", "Romantic",
	"Adventure", "Historical Fiction", "Fantasy",
}

// EducationalSubjects are genres priced above fiction. No reference title
// carries one, but their multipliers apply to any sample that does.
var EducationalSubjects = []string{
	"Mathematics", "Physics", "Chemistry", "Biology", "English Literature",
	"Computer Science", "History", "Geography", "Economics", "Linguistics",
	"Psychology", "Sociology", "Political Science", "Philosophy", "Engineering",
	"Medicine", "Law", "Architecture", "Business", "Accountancy",
}

var conditionBasePrices = map[string]float64{
	ConditionNew:        110,
	ConditionLikeNew:    85,
	ConditionVeryGood:   65,
	ConditionGood:       50,
	ConditionAcceptable: 35,
	ConditionPoor:       20,
}

var genreMultipliers = map[string]float64{
	"Fiction": 1.1, "Romance": 1.0, "Dystopian": 1.3, "Fantasy": 1.4,
	"Political Satire": 1.2, "Gothic": 1.25, "Historical Fiction": 1.35,
	"Adventure": 1.2, "Philosophical Fiction": 1.4, "Epic": 1.3,
	"Satire": 1.15, "Realist Fiction": 1.1, "Modernist": 1.3,
	"Epic Poetry": 1.4, "Magical Realism": 1.35, "Tragedy": 1.2,
	"Coming of Age": 1.05, "Romantic": 1.0,

	"Mathematics": 1.75, "Physics": 1.85, "Chemistry": 1.75, "Biology": 1.65,
	"English Literature": 1.55, "Computer Science": 1.95, "History": 1.55,
	"Geography": 1.65, "Economics": 1.75, "Linguistics": 1.65,
	"Psychology": 1.65, "Sociology": 1.55, "Political Science": 1.55,
	"Philosophy": 1.45, "Engineering": 1.95, "Medicine": 2.15,
	"Law": 2.05, "Architecture": 1.85, "Business": 1.65, "Accountancy": 1.75,
}

// GenreMultiplier returns the price multiplier for genre, 1.0 when unknown.
func GenreMultiplier(genre string) float64 {
	if m, ok := genreMultipliers[genre]; ok {
		return m
	}
	return 1.0
}

// authorPopularity is 1 + (i mod 10)/10 where i is the author's first
// position in the reference list.
func authorPopularity(author string) float64 {
	for i, a := range referenceAuthors {
		if a == author {
			return 1.0 + float64(i%10)/10
		}
	}
	return 1.0
}

// ReferenceDataset generates n priced samples. Titles and conditions are
// drawn uniformly; each price is the condition base times the genre
// multiplier times author popularity times Normal(1, 0.2) noise. The same
// seed always yields the same dataset.
func ReferenceDataset(seed int64, n int) []ReferenceSample {
	rng := rand.New(rand.NewSource(seed))

	out := make([]ReferenceSample, n)
	for i := range out {
		t := rng.Intn(len(referenceTitles))
		out[i].Title = referenceTitles[t]
		out[i].Author = referenceAuthors[t]
		out[i].Genre = referenceGenres[t]
	}
	for i := range out {
		out[i].Condition = Conditions[rng.Intn(len(Conditions))]
	}
	for i := range out {
		s := &out[i]
		noise := 1.0 + 0.2*rng.NormFloat64()
		s.Price = conditionBasePrices[s.Condition] * GenreMultiplier(s.Genre) * authorPopularity(s.Author) * noise
	}
	return out
}
