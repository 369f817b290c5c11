package server

import (
	"bytes"
	"errors"
	"image/png"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/df07/go-raykernel/pkg/renderer"
	"github.com/df07/go-raykernel/pkg/scene"
)

// handleRender renders a scene and responds with a PNG. Render statistics
// are returned in X-Render-* headers.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	shading, err := renderer.ParseShading(req.Shading)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sceneObj, err := s.loadScene(req)
	if err != nil {
		writeError(w, sceneErrorStatus(err), err.Error())
		return
	}

	raycaster := renderer.NewRaycaster(sceneObj, sceneObj.Width, sceneObj.Height)
	raycaster.SetLogger(s.logger)
	config := renderer.DefaultConfig()
	config.Shading = shading
	raycaster.SetConfig(config)

	// Cancelled when the client disconnects
	img, stats, err := raycaster.Render(r.Context())
	if err != nil {
		s.logger.Warn("render failed", zap.String("scene", req.Scene), zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Pixels", strconv.Itoa(stats.Pixels))
	w.Header().Set("X-Render-Hits", strconv.Itoa(stats.Hits))
	w.Header().Set("X-Render-Luminance", strconv.FormatFloat(stats.Luminance, 'f', 4, 64))
	w.Header().Set("X-Render-Elapsed-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// sceneErrorStatus maps scene loading errors to HTTP status codes
func sceneErrorStatus(err error) int {
	switch {
	case errors.Is(err, scene.ErrUnknownScene):
		return http.StatusNotFound
	case errors.Is(err, scene.ErrInvalidScene):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
