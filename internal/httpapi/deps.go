package httpapi

import (
	"database/sql"
	"sync/atomic"

	"careerflow-engine/internal/config"
	"careerflow-engine/internal/events"
	"careerflow-engine/internal/scrape/util"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Atomic stores
	CfgVal       *atomic.Value // stores config.Config
	ImportStatus *atomic.Value // stores httpapi.ImportStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// UploadLimiter throttles /upload-linkedin per client. Nil disables it.
	UploadLimiter *util.ClientLimiter
}
