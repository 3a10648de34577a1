package proc

import "os"

//go:generate mockgen -destination=mocks/mock_file_reader.go -package=mocks github.com/pranshuparmar/memtree/internal/proc FileReader

// FileReader is the seam between the procfs source and the filesystem.
type FileReader interface {
	ReadFile(name string) ([]byte, error)
	ReadLink(name string) (string, error)
	ReadDirNames(name string) ([]string, error)
}

type RealFileReader struct{}

func (r *RealFileReader) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (r *RealFileReader) ReadLink(name string) (string, error) {
	return os.Readlink(name)
}

func (r *RealFileReader) ReadDirNames(name string) ([]string, error) {
	entries, err := os.ReadDir(name)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

var reader FileReader = &RealFileReader{}

func SetFileReader(r FileReader) {
	reader = r
}

func ResetFileReader() {
	reader = &RealFileReader{}
}
