package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// processedDir is the subdirectory of the import dir for ingested files.
const processedDir = "processed"

// FileInfo describes a CSV file waiting in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// FileResult is the outcome of importing one file.
type FileResult struct {
	Name     string
	Inserted int
	Err      error
}

// Scan returns the CSV files directly inside dir. A missing dir yields nil.
func Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from dir to dir/processed/.
func MarkProcessed(dir, fileName string) error {
	src := filepath.Join(dir, fileName)
	dstDir := filepath.Join(dir, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}

// IngestFile reads and ingests a single CSV file.
func (s *Service) IngestFile(ctx context.Context, path, accountHint string) (int, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	return s.Ingest(ctx, blob, accountHint)
}

// ImportDir ingests every CSV in dir, moving each successfully ingested file
// to dir/processed/. A failing file is left in place and reported in its
// FileResult; the remaining files are still attempted.
func (s *Service) ImportDir(ctx context.Context, dir, accountHint string) ([]FileResult, error) {
	files, err := Scan(dir)
	if err != nil {
		return nil, err
	}

	results := make([]FileResult, 0, len(files))
	for _, f := range files {
		n, err := s.IngestFile(ctx, f.Path, accountHint)
		if err == nil {
			err = MarkProcessed(dir, f.Name)
		}
		if err != nil {
			s.log.Error().Err(err).Str("file", f.Name).Msg("Import failed")
		}
		results = append(results, FileResult{Name: f.Name, Inserted: n, Err: err})
	}
	return results, nil
}
