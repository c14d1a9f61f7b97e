package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/penwyp/go-weight-trend/internal/util"
)

// FileScanner locates weight export files in the specified directory
type FileScanner struct {
	baseDir string
	suffix  string
}

// NewFileScanner creates a new FileScanner instance
func NewFileScanner(baseDir string) *FileScanner {
	return &FileScanner{
		baseDir: baseDir,
		suffix:  ".txt",
	}
}

// Scan walks the directory and returns all export file paths
func (s *FileScanner) Scan() ([]string, error) {
	start := time.Now()
	var files []string
	dirCount := 0
	totalCount := 0

	util.LogDebug(fmt.Sprintf("Start scanning directory: %s", s.baseDir))

	err := filepath.Walk(s.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			util.LogDebug(fmt.Sprintf("Skip file (error): %s - %v", path, err))
			return nil
		}

		if info.IsDir() {
			dirCount++
			return nil
		}

		totalCount++
		if strings.HasSuffix(strings.ToLower(path), s.suffix) {
			files = append(files, path)
		}

		return nil
	})

	duration := time.Since(start)
	util.LogDebug(fmt.Sprintf("File scan completed: duration %v, scanned %d directories, %d files, found %d export files",
		duration, dirCount, totalCount, len(files)))

	return files, err
}

// LatestExport returns the single most recently modified export file
// under the base directory. Analysis always runs over exactly one file;
// exports are never merged.
func (s *FileScanner) LatestExport() (string, error) {
	files, err := s.Scan()
	if err != nil {
		return "", fmt.Errorf("scan %s: %w", s.baseDir, err)
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no export files (*%s) found under %s", s.suffix, s.baseDir)
	}

	latest := ""
	var latestMod time.Time
	for _, f := range files {
		info, err := util.GetFileInfo(f)
		if err != nil {
			util.LogDebug(fmt.Sprintf("Skip file (stat error): %s - %v", f, err))
			continue
		}
		if latest == "" || info.ModTime.After(latestMod) {
			latest = f
			latestMod = info.ModTime
		}
	}
	if latest == "" {
		return "", fmt.Errorf("no readable export files under %s", s.baseDir)
	}

	util.LogDebug(fmt.Sprintf("Latest export: %s (modified %s)", latest, latestMod.Format(time.RFC3339)))
	return latest, nil
}
