package mock

import "github.com/ukmetdata/midas"

var _ midas.FileReader = (*FileReader)(nil)

// FileReader is a mock implementation of midas.FileReader.
type FileReader struct {
	ReadFileFn func(path string) (*midas.StationFile, error)
}

func (r *FileReader) ReadFile(path string) (*midas.StationFile, error) {
	return r.ReadFileFn(path)
}
