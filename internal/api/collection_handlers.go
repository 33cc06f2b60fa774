package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/figerout/figerout/internal/collection"
)

// SaveColourRequest is the body of POST /collection.
type SaveColourRequest struct {
	Hex  string `json:"hex" validate:"required,hexcolour"`
	Note string `json:"note" validate:"max=500"`
}

// UpdateNoteRequest is the body of PATCH /collection/{id}.
type UpdateNoteRequest struct {
	Note string `json:"note" validate:"max=500"`
}

// CollectionResponse is a page of saved colours.
type CollectionResponse struct {
	Colours []*collection.Colour `json:"colours"`
	Limit   int                  `json:"limit"`
	Offset  int                  `json:"offset"`
}

func (s *Server) requireCollection(w http.ResponseWriter) bool {
	if s.collection == nil {
		writeError(w, http.StatusServiceUnavailable, "collection storage is not configured", s.logger)
		return false
	}
	return true
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &ValidationError{Fields: map[string]string{"body": "must be a valid JSON object"}}
	}
	return nil
}

func (s *Server) handleListCollection(w http.ResponseWriter, r *http.Request) {
	if !s.requireCollection(w) {
		return
	}

	opts := collection.ListOptions{}
	fields := map[string]string{}
	for name, dst := range map[string]*int{"limit": &opts.Limit, "offset": &opts.Offset} {
		v := r.URL.Query().Get(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			fields[name] = "must be a non-negative integer"
			continue
		}
		*dst = n
	}
	if len(fields) > 0 {
		handleError(w, &ValidationError{Fields: fields}, s.logger)
		return
	}

	colours, err := s.collection.List(r.Context(), opts)
	if err != nil {
		handleError(w, err, s.logger)
		return
	}
	writeJSON(w, http.StatusOK, CollectionResponse{Colours: colours, Limit: opts.Limit, Offset: opts.Offset}, s.logger)
}

func (s *Server) handleSaveColour(w http.ResponseWriter, r *http.Request) {
	if !s.requireCollection(w) {
		return
	}

	var req SaveColourRequest
	if err := decodeBody(r, &req); err != nil {
		handleError(w, err, s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		handleError(w, err, s.logger)
		return
	}

	c, err := s.collection.Save(r.Context(), req.Hex, req.Note)
	if err != nil {
		handleError(w, err, s.logger)
		return
	}
	writeJSON(w, http.StatusCreated, c, s.logger)
}

func (s *Server) handleGetSaved(w http.ResponseWriter, r *http.Request) {
	if !s.requireCollection(w) {
		return
	}

	c, err := s.collection.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err, s.logger)
		return
	}
	writeJSON(w, http.StatusOK, c, s.logger)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	if !s.requireCollection(w) {
		return
	}

	var req UpdateNoteRequest
	if err := decodeBody(r, &req); err != nil {
		handleError(w, err, s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		handleError(w, err, s.logger)
		return
	}

	c, err := s.collection.UpdateNote(r.Context(), chi.URLParam(r, "id"), req.Note)
	if err != nil {
		handleError(w, err, s.logger)
		return
	}
	writeJSON(w, http.StatusOK, c, s.logger)
}

func (s *Server) handleDeleteSaved(w http.ResponseWriter, r *http.Request) {
	if !s.requireCollection(w) {
		return
	}

	if err := s.collection.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, err, s.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
