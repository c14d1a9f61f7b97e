package util

import (
	"fmt"
	"os"
	"syscall"
	"time"
)

// FileInfo carries the file identity fields the export scanner and watch
// mode compare: modification time, size, and inode number.
type FileInfo struct {
	ModTime time.Time
	Size    int64
	Inode   uint64
}

// GetFileInfo retrieves detailed file information, including inode number.
// Supported on Linux and macOS.
func GetFileInfo(path string) (*FileInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	sysStat, ok := stat.Sys().(*syscall.Stat_t)
	if !ok {
		return nil, fmt.Errorf("failed to get file system information: %s", path)
	}

	return &FileInfo{
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Inode:   sysStat.Ino,
	}, nil
}

// Changed reports whether other describes different on-disk content,
// including replace-by-rename where the inode moves.
func (fi *FileInfo) Changed(other *FileInfo) bool {
	if fi == nil || other == nil {
		return true
	}
	return fi.Inode != other.Inode || fi.Size != other.Size || !fi.ModTime.Equal(other.ModTime)
}
