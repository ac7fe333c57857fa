package httpapi

import (
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"careerflow-engine/internal/config"
	"careerflow-engine/internal/events"
	"careerflow-engine/internal/rank"
	"careerflow-engine/internal/scrape/linkedin"
	"careerflow-engine/internal/scrape/util"
	"careerflow-engine/internal/store"
)

// multipartSlack covers the multipart framing around the file itself.
const multipartSlack = 64 << 10

type UploadHandler struct {
	DB           *sql.DB
	Hub          *events.Hub
	CfgVal       *atomic.Value // config.Config
	ImportStatus *atomic.Value // httpapi.ImportStatus
}

func (h UploadHandler) Status(w http.ResponseWriter, r *http.Request) {
	st, _ := h.ImportStatus.Load().(ImportStatus)
	writeJSON(w, st)
}

// UploadLinkedIn takes a saved-jobs page in multipart field "file", extracts
// its listings and imports the new ones.
func (h UploadHandler) UploadLinkedIn(w http.ResponseWriter, r *http.Request) {
	cfg := h.CfgVal.Load().(config.Config)
	limit := cfg.Import.MaxUploadBytes

	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartSlack)
	if err := r.ParseMultipartForm(limit + multipartSlack); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) || errors.Is(err, multipart.ErrMessageTooLarge) {
			WriteError(w, r, http.StatusRequestEntityTooLarge, "too_large", "upload exceeds import.max_upload_bytes")
			return
		}
		WriteError(w, r, http.StatusBadRequest, "no_file", "expected multipart form with a file field")
		return
	}

	file, hdr, err := r.FormFile("file")
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "no_file", "no file provided")
		return
	}
	defer file.Close()

	b, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "read_failed", err.Error())
		return
	}
	if int64(len(b)) > limit {
		WriteError(w, r, http.StatusRequestEntityTooLarge, "too_large", "upload exceeds import.max_upload_bytes")
		return
	}

	reqID := RequestIDFrom(r.Context())
	batchID := uuid.NewString()
	log := slog.Default().With("component", "import", "request_id", reqID, "batch_id", batchID)

	started := time.Now().UTC().Format(time.RFC3339)
	prev, _ := h.ImportStatus.Load().(ImportStatus)
	h.ImportStatus.Store(ImportStatus{
		LastRunAt:    started,
		LastOkAt:     prev.LastOkAt,
		LastImported: prev.LastImported,
		LastBatchID:  batchID,
		Running:      true,
	})

	resp, err := h.importPage(r, cfg, b, hdr.Header.Get("Content-Type"), batchID, log)

	next := ImportStatus{
		LastRunAt:    started,
		LastOkAt:     prev.LastOkAt,
		LastImported: resp.Imported,
		LastBatchID:  batchID,
	}
	if err != nil {
		next.LastError = err.Error()
		h.ImportStatus.Store(next)
		log.Error("import failed", "file", hdr.Filename, "err", err)
		WriteError(w, r, http.StatusInternalServerError, "import_failed", err.Error())
		return
	}
	next.LastOkAt = time.Now().UTC().Format(time.RFC3339)
	h.ImportStatus.Store(next)

	if resp.Imported > 0 {
		h.Hub.Publish(events.MakeEvent(reqID, events.TypeJobsImported, 1, events.JobsImported{
			Imported: resp.Imported,
			Skipped:  resp.Skipped,
			IDs:      resp.IDs,
		}))
	}
	log.Info("import done",
		"file", hdr.Filename,
		"bytes", len(b),
		"found", resp.Found,
		"imported", resp.Imported,
		"skipped", resp.Skipped,
	)
	writeJSON(w, resp)
}

func (h UploadHandler) importPage(r *http.Request, cfg config.Config, b []byte, contentType, batchID string, log *slog.Logger) (UploadResponse, error) {
	resp := UploadResponse{BatchID: batchID, IDs: []int64{}}

	ex := linkedin.New(
		linkedin.WithWorkers(cfg.Import.Workers),
		linkedin.WithLogger(log),
	)
	listings, err := ex.Extract(util.DecodeDocument(b, contentType))
	if err != nil {
		return resp, err
	}
	resp.Found = len(listings)

	res, err := store.Importer{
		DB:            h.DB,
		Categorize:    rank.Categorizer{Rules: cfg.Scoring.TitleRules}.Category,
		GenericTitles: []string{linkedin.DefaultTitle},
	}.Import(r.Context(), listings)
	resp.Imported = res.Imported
	resp.Skipped = res.Skipped
	resp.IDs = res.IDs
	if err != nil {
		return resp, err
	}

	jobs, err := store.ListJobs(r.Context(), h.DB, store.ListJobsOpts{})
	if err != nil {
		return resp, err
	}
	resp.Jobs = jobs
	return resp, nil
}
