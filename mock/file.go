package mock

import (
	"context"

	"github.com/ukmetdata/midas"
)

var _ midas.FileService = (*FileService)(nil)

// FileService is a mock implementation of midas.FileService.
type FileService struct {
	CreateFileFn     func(ctx context.Context, file *midas.ProcessedFile) error
	FindFileByPathFn func(ctx context.Context, path string) (*midas.ProcessedFile, error)
	FindFilesFn      func(ctx context.Context, filter midas.FileFilter) ([]*midas.ProcessedFile, error)
}

func (s *FileService) CreateFile(ctx context.Context, file *midas.ProcessedFile) error {
	return s.CreateFileFn(ctx, file)
}

func (s *FileService) FindFileByPath(ctx context.Context, path string) (*midas.ProcessedFile, error) {
	return s.FindFileByPathFn(ctx, path)
}

func (s *FileService) FindFiles(ctx context.Context, filter midas.FileFilter) ([]*midas.ProcessedFile, error) {
	return s.FindFilesFn(ctx, filter)
}
