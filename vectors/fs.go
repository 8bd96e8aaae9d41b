package vectors

import (
	"fmt"

	"github.com/spf13/afero"
)

const (
	OsType  = "os"
	MemType = "mem"
)

var supportedTypes = []string{OsType, MemType}

// GetFs returns the filesystem named fs.
func GetFs(fs string) (afero.Fs, error) {
	switch fs {
	case OsType:
		return afero.NewOsFs(), nil
	case MemType:
		return afero.NewMemMapFs(), nil
	}
	return nil, fmt.Errorf("unknown filesystem type provided: %s (supported types: %v)", fs, supportedTypes)
}
