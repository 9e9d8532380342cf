package usecase

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/younes-radi/order-app/internal/domain"
	"github.com/younes-radi/order-app/pkg/db"
)

var _ domain.MaintenanceUseCase = (*maintenanceUseCase)(nil)

type maintenanceUseCase struct {
	dbPath string
	log    *logrus.Logger
}

func NewMaintenanceUseCase(dbPath string, logger *logrus.Logger) domain.MaintenanceUseCase {
	return &maintenanceUseCase{
		dbPath: dbPath,
		log:    logger,
	}
}

func (uc *maintenanceUseCase) BackupDatabase(destPath string) error {
	if destPath == "" {
		return fmt.Errorf("%w: backup path is required", domain.ErrInvalidInput)
	}

	if err := db.Backup(uc.dbPath, destPath); err != nil {
		uc.log.Errorf("Use Case: Backup to %s failed: %v", destPath, err)
		return err
	}

	uc.log.Infof("Use Case: Database backed up to %s", destPath)
	return nil
}

func (uc *maintenanceUseCase) RestoreDatabase(srcPath string) error {
	if srcPath == "" {
		return fmt.Errorf("%w: backup path is required", domain.ErrInvalidInput)
	}

	if err := db.Restore(uc.dbPath, srcPath); err != nil {
		uc.log.Errorf("Use Case: Restore from %s failed: %v", srcPath, err)
		return err
	}

	uc.log.Infof("Use Case: Database restored from %s", srcPath)
	return nil
}
