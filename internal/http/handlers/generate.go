package handlers

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"io"
	"net/http"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"

	"mockupgen/internal/domain"
)

const maxUploadBytes = 32 << 20

type generateResponse struct {
	SessionID string `json:"session_id"`
	Zip       string `json:"zip"`
	Requested int    `json:"requested"`
	Generated int    `json:"generated"`
}

// GenerateMockups accepts the uploaded artwork plus title/collection
// metadata, runs the full batch, and responds with the session id and the
// archive as a base64 data URL. The batch runs synchronously within the
// request; progress streams separately via the session's subscription. The
// caller may pre-pick session_id so it can subscribe before submitting.
func (a *App) GenerateMockups(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("artwork")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "artwork file is required")
		return
	}
	defer file.Close()
	artwork, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "failed to read artwork")
		return
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(artwork)); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "artwork must be a PNG, JPEG, or GIF image")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		title = "Untitled"
	}
	collection := strings.TrimSpace(r.FormValue("collection"))
	if collection == "" {
		collection = "Default"
	}
	sessionID := strings.TrimSpace(r.FormValue("session_id"))
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	session := domain.GenerationSession{ID: sessionID, Title: title, Collection: collection}

	if a.Store != nil {
		if _, err := a.Store.StoreUpload(r.Context(), sessionID, header.Filename, artwork); err != nil {
			a.Logger.Warn().Err(err).Str("session_id", sessionID).Msg("failed to persist uploaded artwork")
		}
	}

	archive, err := a.Orchestrator.RunBatch(r.Context(), session)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyBatch) {
			a.error(w, http.StatusBadGateway, "generation_failed", "all mockup generations failed")
			return
		}
		a.Logger.Error().Err(err).Str("session_id", sessionID).Msg("batch failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to build archive")
		return
	}

	specs := a.Orchestrator.Specs()
	a.json(w, http.StatusOK, generateResponse{
		SessionID: sessionID,
		Zip:       "data:application/zip;base64," + base64.StdEncoding.EncodeToString(archive),
		Requested: len(specs),
		Generated: countArchiveEntries(archive),
	})
}

func countArchiveEntries(archive []byte) int {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return 0
	}
	return len(zr.File)
}
