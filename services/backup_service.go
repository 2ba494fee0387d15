package services

import (
	"fmt"
	"time"

	"github.com/sultan-bakery/sultan-orders-api/models"
	"gorm.io/gorm"
)

// BackupVersion is the current backup document format version
const BackupVersion = 1

// Backup is the single JSON document produced by export and consumed by import
type Backup struct {
	Version    int                `json:"version"`
	Date       time.Time          `json:"date"`
	Orders     []models.Order     `json:"orders"`
	Users      []models.User      `json:"users"`
	Facilities []models.Facility  `json:"facilities"`
	Roles      []models.Role      `json:"roles"`
	AlertRules []models.AlertRule `json:"alertRules"`
}

// BackupService exports and restores the locally-owned configuration state.
//
// Restore is destructive for roles and alert rules (replaced wholesale) and
// clears the notification store. Orders, users and facilities appear in the
// export for off-site archival but are never written back on restore.
type BackupService struct {
	db    *gorm.DB
	store *NotificationStore
}

// NewBackupService creates a backup service over the given database and
// notification store
func NewBackupService(db *gorm.DB, store *NotificationStore) *BackupService {
	return &BackupService{db: db, store: store}
}

// Export reads all five collections into a backup document
func (s *BackupService) Export() (*Backup, error) {
	backup := &Backup{
		Version: BackupVersion,
		Date:    time.Now(),
	}

	if err := s.db.Find(&backup.Orders).Error; err != nil {
		return nil, fmt.Errorf("failed to export orders: %w", err)
	}
	if err := s.db.Find(&backup.Users).Error; err != nil {
		return nil, fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.db.Find(&backup.Facilities).Error; err != nil {
		return nil, fmt.Errorf("failed to export facilities: %w", err)
	}
	if err := s.db.Find(&backup.Roles).Error; err != nil {
		return nil, fmt.Errorf("failed to export roles: %w", err)
	}
	if err := s.db.Find(&backup.AlertRules).Error; err != nil {
		return nil, fmt.Errorf("failed to export alert rules: %w", err)
	}

	return backup, nil
}

// Restore replaces the role and alert-rule sets with those in the backup and
// clears the notification store. Runs in one transaction: a failed restore
// leaves the previous state intact.
func (s *BackupService) Restore(backup *Backup) error {
	if backup.Version != BackupVersion {
		return &ValidationError{Field: "version", Message: fmt.Sprintf("unsupported backup version %d", backup.Version)}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("1 = 1").Delete(&models.Role{}).Error; err != nil {
			return fmt.Errorf("failed to clear roles: %w", err)
		}
		if err := tx.Unscoped().Where("1 = 1").Delete(&models.AlertRule{}).Error; err != nil {
			return fmt.Errorf("failed to clear alert rules: %w", err)
		}

		if len(backup.Roles) > 0 {
			if err := tx.Create(&backup.Roles).Error; err != nil {
				return fmt.Errorf("failed to restore roles: %w", err)
			}
		}
		if len(backup.AlertRules) > 0 {
			if err := tx.Create(&backup.AlertRules).Error; err != nil {
				return fmt.Errorf("failed to restore alert rules: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.store.Clear()
	return nil
}
