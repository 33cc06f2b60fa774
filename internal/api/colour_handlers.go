package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/figerout/figerout/internal/colour"
	"github.com/figerout/figerout/internal/describe"
)

// ColourResponse describes one colour and its nearest reference name.
type ColourResponse struct {
	Hex      string     `json:"hex"`
	Name     string     `json:"name"`
	Exact    bool       `json:"exact"`
	Distance float64    `json:"distance"`
	RGB      colour.RGB `json:"rgb"`
	HSL      colour.HSL `json:"hsl"`
}

func newColourResponse(rgb colour.RGB) ColourResponse {
	m := colour.Nearest(rgb)
	return ColourResponse{
		Hex:      rgb.Hex(),
		Name:     m.Entry.Name,
		Exact:    m.Exact,
		Distance: m.Distance,
		RGB:      rgb,
		HSL:      rgb.HSL(),
	}
}

// ShadesResponse is a shade set plus the full dark-to-light ramp.
type ShadesResponse struct {
	*colour.ShadeSet
	Ramp []string `json:"ramp"`
}

// hexParam reads the {hex} path segment. Clients may send "FF0000" or an
// escaped "%23FF0000".
func hexParam(r *http.Request) (colour.RGB, error) {
	raw := chi.URLParam(r, "hex")
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}
	return colour.ParseHex(raw)
}

func (s *Server) handleGetColour(w http.ResponseWriter, r *http.Request) {
	rgb, err := hexParam(r)
	if err != nil {
		handleError(w, err, s.logger)
		return
	}
	writeJSON(w, http.StatusOK, newColourResponse(rgb), s.logger)
}

// shadesQuery holds the optional shade parameters.
type shadesQuery struct {
	Count int     `json:"count" validate:"gte=0,lte=20"`
	Step  float64 `json:"step" validate:"gte=0,lte=100"`
}

func (s *Server) handleGetShades(w http.ResponseWriter, r *http.Request) {
	rgb, err := hexParam(r)
	if err != nil {
		handleError(w, err, s.logger)
		return
	}

	q := shadesQuery{Count: colour.DefaultShadeCount, Step: colour.DefaultShadeStep}
	fields := map[string]string{}
	if v := r.URL.Query().Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fields["count"] = "must be an integer"
		}
		q.Count = n
	}
	if v := r.URL.Query().Get("step"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			fields["step"] = "must be a number"
		}
		q.Step = f
	}
	if len(fields) > 0 {
		handleError(w, &ValidationError{Fields: fields}, s.logger)
		return
	}
	if err := s.validator.Validate(q); err != nil {
		handleError(w, err, s.logger)
		return
	}

	set, err := colour.GenerateShades(rgb.Hex(), q.Count, q.Step)
	if err != nil {
		handleError(w, err, s.logger)
		return
	}
	writeJSON(w, http.StatusOK, ShadesResponse{ShadeSet: set, Ramp: set.Ramp()}, s.logger)
}

func (s *Server) handleGetDescription(w http.ResponseWriter, r *http.Request) {
	rgb, err := hexParam(r)
	if err != nil {
		handleError(w, err, s.logger)
		return
	}

	mode, err := describe.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		handleError(w, &ValidationError{Fields: map[string]string{"mode": "must be one of: describe history"}}, s.logger)
		return
	}

	desc, err := s.describer.Describe(r.Context(), describe.Request{
		Hex:  rgb.Hex(),
		Name: colour.Nearest(rgb).Entry.Name,
		Mode: mode,
	})
	if err != nil {
		handleError(w, err, s.logger)
		return
	}
	writeJSON(w, http.StatusOK, desc, s.logger)
}
