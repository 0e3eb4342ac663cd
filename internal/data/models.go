// internal/data/models.go
package data

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// idLength is the number of characters in a generated book id.
const idLength = 16

// ErrRecordNotFound is returned when no book has the requested id.
var ErrRecordNotFound = errors.New("record not found")

// ValidationError reports client input that breaks a required constraint.
// Field is the json name of the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

//go:generate mockgen -destination=../../cmd/api/mock_store_test.go -package=main github.com/aoideee/bookshelf-api/internal/data BookStore

// BookStore is the set of operations the HTTP layer needs from a book store.
type BookStore interface {
	Insert(input BookInput) (string, error)
	GetAll(filters Filters) ([]BookSummary, error)
	Get(id string) (*Book, error)
	Update(id string, input BookInput) error
	Delete(id string) error
	Len() int
}

// Models is a top-level container that groups all model types together.
// It is passed around the application via applicationDependencies so every
// handler reaches the store through the same value.
type Models struct {
	Books BookStore
}

// NewModels constructs a Models value backed by a fresh, empty in-memory store.
// Call this once during application startup and store the result in applicationDependencies.
func NewModels(opts ...Option) Models {
	return Models{
		Books: NewBookModel(opts...),
	}
}

// Option customises a BookModel.
type Option func(*BookModel)

// WithClock replaces the time source used for insertedAt and updatedAt.
func WithClock(now func() time.Time) Option {
	return func(m *BookModel) { m.now = now }
}

// WithIDGenerator replaces the book id generator.
func WithIDGenerator(newID func() (string, error)) Option {
	return func(m *BookModel) { m.newID = newID }
}

// BookModel is an ordered, in-memory collection of books.
// All methods are safe for concurrent use.
type BookModel struct {
	mu    sync.RWMutex
	books []*Book
	now   func() time.Time
	newID func() (string, error)
}

// NewBookModel returns an empty store.
func NewBookModel(opts ...Option) *BookModel {
	m := &BookModel{
		now:   time.Now,
		newID: func() (string, error) { return gonanoid.New(idLength) },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *BookModel) timestamp() Timestamp {
	return Timestamp{m.now().UTC().Truncate(time.Millisecond)}
}

// indexOf returns the position of the book with the given id, or -1.
// The caller must hold m.mu.
func (m *BookModel) indexOf(id string) int {
	for i, b := range m.books {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// Insert validates input, appends a new book and returns its generated id.
func (m *BookModel) Insert(input BookInput) (string, error) {
	if err := ValidateBook(input); err != nil {
		return "", err
	}

	id, err := m.newID()
	if err != nil {
		return "", err
	}

	ts := m.timestamp()
	book := &Book{ID: id, InsertedAt: ts, UpdatedAt: ts}
	book.apply(input)

	m.mu.Lock()
	m.books = append(m.books, book)
	m.mu.Unlock()

	return id, nil
}

// GetAll returns, in insertion order, the summaries of every book matching all
// of the supplied filters.
func (m *BookModel) GetAll(filters Filters) ([]BookSummary, error) {
	var name string
	if filters.Name != nil {
		name = strings.ToLower(*filters.Name)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	books := []BookSummary{}
	for _, b := range m.books {
		if filters.Name != nil && !strings.Contains(strings.ToLower(b.Name), name) {
			continue
		}
		if filters.Reading != nil && b.Reading != *filters.Reading {
			continue
		}
		if filters.Finished != nil && b.Finished != *filters.Finished {
			continue
		}
		books = append(books, b.summary())
	}
	return books, nil
}

// Get returns a copy of the book with the given id.
// Returns ErrRecordNotFound if no such book exists.
func (m *BookModel) Get(id string) (*Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(id)
	if i == -1 {
		return nil, ErrRecordNotFound
	}
	book := *m.books[i]
	return &book, nil
}

// Update replaces the client-controlled fields of the book with the given id.
// The lookup happens before validation, so an unknown id is always reported as
// ErrRecordNotFound whatever the input.
func (m *BookModel) Update(id string, input BookInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i == -1 {
		return ErrRecordNotFound
	}
	if err := ValidateBook(input); err != nil {
		return err
	}

	updated := *m.books[i]
	updated.apply(input)
	updated.UpdatedAt = m.timestamp()
	m.books[i] = &updated

	return nil
}

// Delete removes the book with the given id, keeping the remaining books in order.
// Returns ErrRecordNotFound if no such book exists.
func (m *BookModel) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i == -1 {
		return ErrRecordNotFound
	}
	m.books = slices.Delete(m.books, i, i+1)
	return nil
}

// Len returns the number of stored books.
func (m *BookModel) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.books)
}
