// Package pathutil provides centralized path management for the local data
// directory: the fetch cache database and exported journal files.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathResolver manages paths under the data root.
type PathResolver struct {
	dataRoot    string
	cacheDBPath string
	exportDir   string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// DataRoot is the root directory for local client data.
	DataRoot string
	// CacheDBPath is the path to the SQLite fetch cache database.
	CacheDBPath string
	// ExportDir is the directory exported journal files are written to.
	ExportDir string
}

// New creates a new PathResolver with the given configuration.
// If CacheDBPath is empty, it defaults to {DataRoot}/.cache/fetch.db.
// If ExportDir is empty, it defaults to {DataRoot}/exports.
func New(config Config) *PathResolver {
	cacheDBPath := config.CacheDBPath
	if cacheDBPath == "" {
		cacheDBPath = filepath.Join(config.DataRoot, ".cache", "fetch.db")
	}

	exportDir := config.ExportDir
	if exportDir == "" {
		exportDir = filepath.Join(config.DataRoot, "exports")
	}

	return &PathResolver{
		dataRoot:    config.DataRoot,
		cacheDBPath: cacheDBPath,
		exportDir:   exportDir,
	}
}

// GetDataRoot returns the data root directory.
func (p *PathResolver) GetDataRoot() string {
	return p.dataRoot
}

// GetCacheDBPath returns the fetch cache database file path.
func (p *PathResolver) GetCacheDBPath() string {
	return p.cacheDBPath
}

// GetExportDir returns the export directory.
func (p *PathResolver) GetExportDir() string {
	return p.exportDir
}

// GetExportFilePath returns the export file path for a journal title.
// Example: {DataRoot}/exports/business-2025.journal
func (p *PathResolver) GetExportFilePath(journalTitle string) (string, error) {
	name := sanitizeFileName(journalTitle)
	if name == "" {
		return "", fmt.Errorf("journal title %q yields no usable file name", journalTitle)
	}
	return filepath.Join(p.exportDir, name+".journal"), nil
}

// EnsureDir creates a directory if it doesn't exist. It creates all parent
// directories as needed (like mkdir -p).
func (p *PathResolver) EnsureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// EnsureParentDir ensures the parent directory of a file exists.
func (p *PathResolver) EnsureParentDir(filePath string) error {
	return p.EnsureDir(filepath.Dir(filePath))
}

// FileExists checks if a file exists.
func (p *PathResolver) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}

// sanitizeFileName lowercases a title and replaces anything outside
// [a-z0-9._-] with a dash, collapsing runs.
func sanitizeFileName(title string) string {
	var sb strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_':
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				sb.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(sb.String(), "-")
}
