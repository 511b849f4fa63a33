package service

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/crypto"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/database"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Bitcoin-Portfolio-Tracker-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db     *sql.DB
	cipher *crypto.Cipher
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB, cipher *crypto.Cipher) *SystemService {
	return &SystemService{
		db:     db,
		cipher: cipher,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion reports the application version, the applied schema version
// and which optional features are active.
func (s *SystemService) CheckVersion() (model.VersionInfo, error) {
	dbVersion, err := database.SchemaVersion(s.db)
	if err != nil {
		return model.VersionInfo{}, fmt.Errorf("failed to read schema version: %w", err)
	}

	return model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  strconv.FormatInt(dbVersion, 10),
		Features: map[string]bool{
			"futures":         true,
			"exchange_rates":  true,
			"encrypted_notes": s.cipher.Enabled(),
		},
	}, nil
}
