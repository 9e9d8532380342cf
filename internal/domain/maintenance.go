package domain

type MaintenanceUseCase interface {
	BackupDatabase(destPath string) error
	RestoreDatabase(srcPath string) error
}
