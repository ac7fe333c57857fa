package httpapi

import "careerflow-engine/internal/domain"

type ImportStatus struct {
	LastRunAt    string `json:"last_run_at"`
	LastOkAt     string `json:"last_ok_at"`
	LastError    string `json:"last_error"`
	LastImported int    `json:"last_imported"`
	LastBatchID  string `json:"last_batch_id"`
	Running      bool   `json:"running"`
}

type UploadResponse struct {
	BatchID  string       `json:"batch_id"`
	Found    int          `json:"found"`
	Imported int          `json:"imported"`
	Skipped  int          `json:"skipped"`
	IDs      []int64      `json:"ids"`
	Jobs     []domain.Job `json:"jobs"`
}
