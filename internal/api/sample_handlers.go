package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	imgload "github.com/figerout/figerout/internal/image"
	"github.com/figerout/figerout/internal/sampler"
)

// sampleForm holds the multipart fields of a sample request.
type sampleForm struct {
	X         int `json:"x"`
	Y         int `json:"y"`
	Radius    int `json:"radius" validate:"gte=0,lte=50"`
	MaxWidth  int `json:"maxWidth"`
	MaxHeight int `json:"maxHeight"`
}

// SampleResponse is the colour picked from an uploaded image.
type SampleResponse struct {
	ColourResponse
	Point   sampler.Point `json:"point"`
	Source  sampler.Point `json:"source"`
	Surface struct {
		Width  int     `json:"width"`
		Height int     `json:"height"`
		Scale  float64 `json:"scale"`
	} `json:"surface"`
}

// parseSampleForm reads the form fields. maxWidth and maxHeight default to
// maxSurface and must lie in [1, maxSurface].
func parseSampleForm(r *http.Request, maxSurface int) (sampleForm, error) {
	form := sampleForm{MaxWidth: maxSurface, MaxHeight: maxSurface}
	fields := map[string]string{}

	intField := func(name string, dst *int, required bool) {
		v := r.FormValue(name)
		if v == "" {
			if required {
				fields[name] = "is required"
			}
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			fields[name] = "must be an integer"
			return
		}
		*dst = n
	}
	intField("x", &form.X, true)
	intField("y", &form.Y, true)
	intField("radius", &form.Radius, false)
	intField("maxWidth", &form.MaxWidth, false)
	intField("maxHeight", &form.MaxHeight, false)

	surfaceField := func(name string, v int) {
		if _, bad := fields[name]; !bad && (v < 1 || v > maxSurface) {
			fields[name] = fmt.Sprintf("must be between 1 and %d", maxSurface)
		}
	}
	surfaceField("maxWidth", form.MaxWidth)
	surfaceField("maxHeight", form.MaxHeight)

	if len(fields) > 0 {
		return form, &ValidationError{Fields: fields}
	}
	return form, nil
}

// handleSample draws an uploaded image onto a surface and picks the colour
// at (x, y) in surface coordinates.
func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", s.maxUpload), s.logger)
			return
		}
		writeError(w, http.StatusBadRequest, "expected multipart form with an image field", s.logger)
		return
	}

	form, err := parseSampleForm(r, s.maxSurface)
	if err != nil {
		handleError(w, err, s.logger)
		return
	}
	if err := s.validator.Validate(form); err != nil {
		handleError(w, err, s.logger)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		handleError(w, &ValidationError{Fields: map[string]string{"image": "is required"}}, s.logger)
		return
	}
	defer file.Close()

	img, format, err := imgload.DecodeLimited(file, s.maxPixels)
	if err != nil {
		handleError(w, err, s.logger)
		return
	}

	surface := sampler.NewImageSurface(sampler.WithMaxSize(form.MaxWidth, form.MaxHeight))
	surface.Draw(img)

	sample, err := sampler.New(surface).SampleArea(form.X, form.Y, form.Radius)
	if err != nil {
		handleError(w, err, s.logger)
		return
	}

	resp := SampleResponse{
		ColourResponse: newColourResponse(sample.RGB),
		Point:          sample.Point,
		Source:         surface.ToSource(sample.Point),
	}
	bounds := surface.Bounds()
	resp.Surface.Width = bounds.Dx()
	resp.Surface.Height = bounds.Dy()
	resp.Surface.Scale = surface.Scale()

	s.logger.Debug("sampled upload", "format", format, "x", sample.Point.X, "y", sample.Point.Y, "hex", sample.Hex)
	writeJSON(w, http.StatusOK, resp, s.logger)
}
