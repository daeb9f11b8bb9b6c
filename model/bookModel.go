// model/bookModel.go
package model

import "strings"

// Named is a row of a single-column lookup table.
type Named struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Language struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Author struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth *Date  `json:"date_of_birth,omitempty"`
	DateOfDeath *Date  `json:"date_of_death,omitempty"`
}

// String is how an author is shown next to a book.
func (a Author) String() string { return a.LastName }

type Book struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	GenreID    *int64  `json:"genre_id,omitempty"`
	LanguageID *int64  `json:"language_id,omitempty"`
	AuthorIDs  []int64 `json:"author_ids"`
	Summary    string  `json:"summary"`
	ISBN       string  `json:"isbn"`
}

// BookSummary is a row of the book list.
type BookSummary struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Genre         string   `json:"genre,omitempty"`
	Language      string   `json:"language,omitempty"`
	Authors       []Author `json:"authors"`
	DisplayAuthor string   `json:"display_author"`
	URL           string   `json:"url"`
}

// BookDetail is the book-detail page: the book with its related rows joined.
type BookDetail struct {
	ID            int64          `json:"id"`
	Title         string         `json:"title"`
	Genre         *Genre         `json:"genre,omitempty"`
	Language      *Language      `json:"language,omitempty"`
	Authors       []Author       `json:"authors"`
	DisplayAuthor string         `json:"display_author"`
	Summary       string         `json:"summary"`
	ISBN          string         `json:"isbn"`
	Instances     []BookInstance `json:"instances"`
}

// DisplayAuthor joins the authors' last names the way the catalog lists them.
func DisplayAuthor(authors []Author) string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		names = append(names, a.String())
	}
	return strings.Join(names, ", ")
}

// BookURL is the absolute URL of the book-detail page.
func BookURL(id int64) string {
	return "/book/" + itoa(id)
}

// CatalogCounts backs the index page.
type CatalogCounts struct {
	NumBooks              int64 `json:"num_books"`
	NumInstances          int64 `json:"num_instances"`
	NumInstancesAvailable int64 `json:"num_instances_available"`
	NumAuthors            int64 `json:"num_authors"`
}
