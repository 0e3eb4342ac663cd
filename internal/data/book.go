// Package data provides the book records and the in-memory store that owns them
// for the bookshelf API.
package data

import (
	"time"

	"github.com/aoideee/bookshelf-api/internal/validator"
)

// Book represents a single book record held by the store.
type Book struct {
	ID         string    `json:"id"`         // 16-character nanoid, assigned on insert
	Name       string    `json:"name"`       // Title of the book, never empty
	Year       int       `json:"year"`       // Year of publication
	Author     string    `json:"author"`     // Author name
	Summary    string    `json:"summary"`    // Short synopsis
	Publisher  string    `json:"publisher"`  // Name of the publishing company
	PageCount  int       `json:"pageCount"`  // Total number of pages
	ReadPage   int       `json:"readPage"`   // Pages read so far, never above PageCount
	Finished   bool      `json:"finished"`   // PageCount == ReadPage, derived on every write
	Reading    bool      `json:"reading"`    // Whether the book is currently being read
	InsertedAt Timestamp `json:"insertedAt"` // Set once on insert
	UpdatedAt  Timestamp `json:"updatedAt"`  // Refreshed on every successful update
}

// timestampLayout is ISO-8601 with exactly three fractional digits.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp is an instant that marshals as UTC with millisecond precision,
// e.g. "2024-03-01T10:00:01.120Z".
type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(timestampLayout) + `"`), nil
}

// BookSummary is the projection returned by list requests.
type BookSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Publisher string `json:"publisher"`
}

// BookInput holds the fields a client supplies when creating or replacing a book.
// Finished is never taken from the client; it is derived from PageCount and ReadPage.
type BookInput struct {
	Name      string `json:"name"      validate:"required"`
	Year      int    `json:"year"`
	Author    string `json:"author"`
	Summary   string `json:"summary"`
	Publisher string `json:"publisher"`
	PageCount int    `json:"pageCount"`
	ReadPage  int    `json:"readPage"  validate:"ltefield=PageCount"`
	Reading   bool   `json:"reading"`
}

// Filters holds the optional list constraints parsed from the query string.
// A nil field imposes no constraint.
type Filters struct {
	Name     *string
	Reading  *bool
	Finished *bool
}

// summary projects b down to the fields exposed by list requests.
func (b *Book) summary() BookSummary {
	return BookSummary{ID: b.ID, Name: b.Name, Publisher: b.Publisher}
}

// apply copies the client-controlled fields of input onto b and recomputes Finished.
func (b *Book) apply(input BookInput) {
	b.Name = input.Name
	b.Year = input.Year
	b.Author = input.Author
	b.Summary = input.Summary
	b.Publisher = input.Publisher
	b.PageCount = input.PageCount
	b.ReadPage = input.ReadPage
	b.Reading = input.Reading
	b.Finished = input.PageCount == input.ReadPage
}

// ValidateBook checks input and returns the first failure in reporting order:
// a missing name is reported before a read page past the page count.
// It returns nil when input is acceptable.
func ValidateBook(input BookInput) error {
	v := validator.New()
	if err := v.Struct(input); err != nil {
		return err
	}

	field, msg, failed := v.First("name", "readPage")
	if !failed {
		return nil
	}
	return &ValidationError{Field: field, Message: msg}
}
