package audio

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileStore сохраняет синтезированное аудио в файл, указанный диалпланом
type FileStore struct {
	logger *zap.Logger
}

// NewFileStore создает новое файловое хранилище
func NewFileStore(logger *zap.Logger) *FileStore {
	return &FileStore{logger: logger}
}

// Save атомарно записывает data в path и выставляет права mode.
// Данные пишутся во временный файл рядом с path и переименовываются поверх него,
// поэтому при ошибке path остается нетронутым. Каталог должен существовать.
func (s *FileStore) Save(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("ошибка создания временного файла: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("ошибка записи аудио: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("ошибка синхронизации файла: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("ошибка переименования временного файла: %w", err)
	}

	// Chmod после записи: umask процесса не должен урезать права
	if err := os.Chmod(path, mode); err != nil {
		return fmt.Errorf("ошибка установки прав доступа: %w", err)
	}

	s.logger.Debug("аудио сохранено",
		zap.String("path", path),
		zap.Int("size", len(data)),
		zap.Stringer("mode", mode))

	return nil
}
