// cmd/api/handlers.go
// This file contains all HTTP request handlers for the books resource.
// Each handler is a method on *applicationDependencies so it has access
// to the logger and the book store.
package main

import (
	"errors"
	"net/http"

	"github.com/aoideee/bookshelf-api/internal/data"
)

// Message prefixes for failed writes, one per operation.
const (
	createFailedPrefix = "Gagal menambahkan buku. "
	updateFailedPrefix = "Gagal memperbarui buku. "
)

// validationMessage turns a store validation failure into the client-facing
// message for the operation identified by prefix.
func validationMessage(prefix string, verr *data.ValidationError) string {
	switch verr.Field {
	case "name":
		return prefix + "Mohon isi nama buku"
	case "readPage":
		return prefix + "readPage tidak boleh lebih besar dari pageCount"
	default:
		return prefix + verr.Error()
	}
}

// createBookHandler handles POST /books.
// It reads a JSON body containing the new book's details, stores it and
// responds 201 Created with the generated id.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var input data.BookInput

	// Decode the incoming JSON body into the input struct.
	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, createFailedPrefix+err.Error())
		return
	}

	// Validate and persist the book; the store assigns the id and timestamps.
	id, err := app.models.Books.Insert(input)
	if err != nil {
		var verr *data.ValidationError
		switch {
		case errors.As(err, &verr):
			app.badRequestResponse(w, r, validationMessage(createFailedPrefix, verr))
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.logger.Info("book created", "book_id", id, "request_id", requestIDFrom(r))

	// Respond with 201 Created and the new id.
	err = app.writeJSON(w, http.StatusCreated, envelope{
		Status:  statusSuccess,
		Message: "Buku berhasil ditambahkan",
		Data:    payload{"bookId": id},
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listBooksHandler handles GET /books.
// The optional name, reading and finished query parameters narrow the result;
// each book is returned as its {id, name, publisher} summary.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	// Absent parameters leave the matching filter nil.
	var filters data.Filters
	if name, ok := app.readString(qs, "name"); ok {
		filters.Name = &name
	}
	filters.Reading = app.readBool(qs, "reading")
	filters.Finished = app.readBool(qs, "finished")

	books, err := app.models.Books.GetAll(filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{
		Status:  statusSuccess,
		Message: "Books retrieved",
		Data:    payload{"books": books},
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showBookHandler handles GET /books/:id.
// Responds with the full record, or 404 if no book with that id exists.
func (app *applicationDependencies) showBookHandler(w http.ResponseWriter, r *http.Request) {
	id := app.readIDParam(r)

	book, err := app.models.Books.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.failResponse(w, r, http.StatusNotFound, "Buku tidak ditemukan")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{
		Status:  statusSuccess,
		Message: "Buku ditemukan",
		Data:    payload{"book": book},
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateBookHandler handles PUT /books/:id.
// The body replaces every client-controlled field of the book. An unknown id
// is reported as 404 before anything about the body is checked.
func (app *applicationDependencies) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	id := app.readIDParam(r)

	var input data.BookInput
	err := app.readJSON(w, r, &input)
	if err != nil {
		// A missing book wins over a bad body.
		if _, getErr := app.models.Books.Get(id); errors.Is(getErr, data.ErrRecordNotFound) {
			app.failResponse(w, r, http.StatusNotFound, updateFailedPrefix+"Id tidak ditemukan")
			return
		}
		app.badRequestResponse(w, r, updateFailedPrefix+err.Error())
		return
	}

	err = app.models.Books.Update(id, input)
	if err != nil {
		var verr *data.ValidationError
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.failResponse(w, r, http.StatusNotFound, updateFailedPrefix+"Id tidak ditemukan")
		case errors.As(err, &verr):
			app.badRequestResponse(w, r, validationMessage(updateFailedPrefix, verr))
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{Status: statusSuccess, Message: "Buku berhasil diperbarui"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteBookHandler handles DELETE /books/:id.
// Responds 404 if no book with that id exists.
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	id := app.readIDParam(r)

	err := app.models.Books.Delete(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.failResponse(w, r, http.StatusNotFound, "Buku gagal dihapus. Id tidak ditemukan")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.logger.Info("book deleted", "book_id", id, "request_id", requestIDFrom(r))

	err = app.writeJSON(w, http.StatusOK, envelope{Status: statusSuccess, Message: "Buku berhasil dihapus"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// healthcheckHandler handles GET /healthz and reports basic service state.
func (app *applicationDependencies) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	err := app.writeJSON(w, http.StatusOK, envelope{
		Status:  statusSuccess,
		Message: "available",
		Data: payload{
			"environment": app.config.environment,
			"version":     appVersion,
			"books":       app.models.Books.Len(),
		},
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
