package service

import (
	"database/sql"

	"github.com/mdevries/portfolio-tracker-backend/internal/database"
	"github.com/mdevries/portfolio-tracker-backend/internal/model"
)

// AppVersion is the reported application version.
const AppVersion = "1.0.0"

// SystemService provides health and version information. The database handle
// is nil when the in-memory backend is active.
type SystemService struct {
	db             *sql.DB
	storageBackend string
}

// NewSystemService creates a new SystemService.
func NewSystemService(db *sql.DB, storageBackend string) *SystemService {
	return &SystemService{db: db, storageBackend: storageBackend}
}

// Health reports whether the storage backend is reachable.
func (s *SystemService) Health() error {
	if s.db == nil {
		return nil
	}
	return database.HealthCheck(s.db)
}

// Version reports the application version and active features.
func (s *SystemService) Version() model.VersionInfo {
	return model.VersionInfo{
		AppVersion:     AppVersion,
		StorageBackend: s.storageBackend,
		Features: map[string]bool{
			"price_refresh": true,
			"analytics":     true,
			"price_history": true,
		},
	}
}
