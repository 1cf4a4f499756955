package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/blagoySimandov/synthdata/internal/errs"
	"github.com/blagoySimandov/synthdata/internal/generator"
	"github.com/blagoySimandov/synthdata/internal/logging"
	"github.com/blagoySimandov/synthdata/internal/models"
)

const (
	formFieldFile   = "file"
	formFieldRows   = "numRows"
	formFieldPrompt = "customPrompt"

	// multipart parts beyond this are spooled to disk.
	maxMemoryBytes = 32 << 20
)

type GenerateHandler struct {
	generator      generator.IGenerator
	defaultRows    int
	maxRows        int
	maxUploadBytes int64
}

type GenerateHandlerConfig struct {
	DefaultRows    int
	MaxRows        int
	MaxUploadBytes int64
}

func NewGenerateHandler(gen generator.IGenerator, cfg GenerateHandlerConfig) *GenerateHandler {
	return &GenerateHandler{
		generator:      gen,
		defaultRows:    cfg.DefaultRows,
		maxRows:        cfg.MaxRows,
		maxUploadBytes: cfg.MaxUploadBytes,
	}
}

// Generate accepts a multipart upload with a CSV or Excel file and answers
// with the synthetic rows as a JSON array of objects.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	input, err := h.parseInput(w, r)
	if err != nil {
		writeJSONError(w, r, err)
		return
	}

	out, err := h.generator.Generate(r.Context(), input)
	if err != nil {
		writeJSONError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Records())
	logging.EnrichStage(r.Context(), string(models.StageResponded))
}

func (h *GenerateHandler) parseInput(w http.ResponseWriter, r *http.Request) (*models.GenerationInput, error) {
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	if err := r.ParseMultipartForm(maxMemoryBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errs.Errorf(errs.InvalidRequest, models.OpRequest, "upload exceeds %d bytes", tooLarge.Limit)
		}
		return nil, errs.E(errs.InvalidRequest, models.OpRequest, fmt.Errorf("invalid multipart form: %w", err))
	}

	file, header, err := r.FormFile(formFieldFile)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, errs.Errorf(errs.InvalidRequest, models.OpRequest, "no file part")
		}
		return nil, errs.E(errs.InvalidRequest, models.OpRequest, err)
	}
	defer file.Close()

	if header.Filename == "" {
		return nil, errs.Errorf(errs.InvalidRequest, models.OpRequest, "no selected file")
	}

	numRows, err := generator.ResolveRowCount(r.FormValue(formFieldRows), h.defaultRows, h.maxRows)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errs.E(errs.InvalidRequest, models.OpRequest, fmt.Errorf("failed to read upload: %w", err))
	}

	return &models.GenerationInput{
		Filename:    header.Filename,
		Data:        data,
		NumRows:     numRows,
		Instruction: r.FormValue(formFieldPrompt),
	}, nil
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
