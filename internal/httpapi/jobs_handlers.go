package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"careerflow-engine/internal/config"
	"careerflow-engine/internal/coverletter"
	"careerflow-engine/internal/events"
	"careerflow-engine/internal/store"
)

type JobsHandler struct {
	DB     *sql.DB
	Hub    *events.Hub
	CfgVal *atomic.Value // stores config.Config
}

func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := store.ListJobsOpts{
		Sort:   q.Get("sort"),
		Order:  q.Get("order"),
		Status: q.Get("status"),
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			WriteError(w, r, http.StatusBadRequest, "bad_request", "limit must be a non-negative integer")
			return
		}
		opts.Limit = n
	}

	jobs, err := store.ListJobs(r.Context(), h.DB, opts)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	writeJSON(w, jobs)
}

// ByPath serves GET/PATCH/DELETE /jobs/{id} and GET /jobs/{id}/cover-letter.
func (h JobsHandler) ByPath(w http.ResponseWriter, r *http.Request) {
	id, sub, ok := jobPath(r.URL.Path)
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	switch {
	case sub == "" && r.Method == http.MethodGet:
		h.get(w, r, id)
	case sub == "" && r.Method == http.MethodPatch:
		h.patch(w, r, id)
	case sub == "" && r.Method == http.MethodDelete:
		h.delete(w, r, id)
	case sub == "cover-letter" && r.Method == http.MethodGet:
		h.coverLetter(w, r, id)
	case sub == "" || sub == "cover-letter":
		WriteError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	default:
		WriteError(w, r, http.StatusNotFound, "not_found", "not found")
	}
}

func (h JobsHandler) get(w http.ResponseWriter, r *http.Request, id int64) {
	job, err := store.GetJob(r.Context(), h.DB, id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, job)
}

func (h JobsHandler) patch(w http.ResponseWriter, r *http.Request, id int64) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var p store.JobPatch
	if err := dec.Decode(&p); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if err := p.Validate(); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_patch", err.Error())
		return
	}

	job, err := store.UpdateJob(r.Context(), h.DB, id, p)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeJobUpdated, 1, job))
	writeJSON(w, job)
}

func (h JobsHandler) delete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := store.DeleteJob(r.Context(), h.DB, id); err != nil {
		writeStoreError(w, r, err)
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeJobDeleted, 1, map[string]any{"id": id}))
	writeJSON(w, map[string]any{"ok": true, "id": id})
}

func (h JobsHandler) coverLetter(w http.ResponseWriter, r *http.Request, id int64) {
	job, err := store.GetJob(r.Context(), h.DB, id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	letter := coverletter.Build(job, coverletter.Profile{
		ApplicantName: cfg.CoverLetter.ApplicantName,
		Skills:        cfg.CoverLetter.Skills,
		Closing:       cfg.CoverLetter.Closing,
	}, time.Now())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+letter.Filename+`"`)
	_ = coverletter.Render(w, letter)
}

func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, r, http.StatusNotFound, "not_found", err.Error())
		return
	}
	WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
}
