// Copyright (c) 2026 Gutenshelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/gutenshelf/internal/platform/constants"
	requestutil "github.com/taibuivan/gutenshelf/internal/platform/request"
	"github.com/taibuivan/gutenshelf/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the book HTTP endpoints.
type Handler struct {
	bookService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{bookService: service}
}

// Routes returns a [chi.Router] for the book endpoints.
//
// Mount behind authentication; every endpoint needs the caller's identity.
//
// # Endpoints
//   - GET /list          : The caller's books, most recent first.
//   - GET /{id}          : Book detail, ingested on first view.
//   - GET /{id}/analyze  : Cached or fresh analysis (?rerun=true to force).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/list", handler.list)
	router.Get("/{id}", handler.detail)
	router.Get("/{id}/analyze", handler.analyze)

	return router
}

/*
Detail returns a book, fetching it from Project Gutenberg on first view.

GET /api/book/{id}

Response:
  - 200: Book
  - 400: Invalid book id
  - 404: User not found
  - 500: Upstream or storage failure
*/
func (handler *Handler) detail(writer http.ResponseWriter, request *http.Request) {
	id, err := ParseID(requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.bookService.GetBook(request.Context(), userID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, book)
}

/*
Analyze returns the literary analysis of a stored book.

GET /api/book/{id}/analyze?rerun=true

Response:
  - 200: {"analysis": Result}
  - 400: Invalid book id
  - 404: Book not found
  - 500: Model unreachable or malformed output
*/
func (handler *Handler) analyze(writer http.ResponseWriter, request *http.Request) {
	id, err := ParseID(requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	rerun := requestutil.Query(request, "rerun") == "true"

	result, err := handler.bookService.Analyze(request.Context(), id, rerun)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{constants.FieldAnalysis: result})
}

/*
List returns the caller's books ordered by last access.

GET /api/book/list

Response:
  - 200: [{id, title, author}]
  - 404: User not found
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, err := handler.bookService.ListForUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}
