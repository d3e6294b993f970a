package i18n

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// TranslationAdapter is a source of catalogs.
type TranslationAdapter interface {
	Load(ctx context.Context) (Catalogs, error)
}

// MapAdapter serves catalogs held in memory.
type MapAdapter struct {
	Data Catalogs
}

func (a *MapAdapter) Load(context.Context) (Catalogs, error) {
	if a.Data == nil {
		return Catalogs{}, nil
	}
	return a.Data, nil
}

// FileAdapter reads one catalog file; the format follows the extension.
type FileAdapter struct {
	path string
}

func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{path: path}
}

func (a *FileAdapter) Load(ctx context.Context) (Catalogs, error) {
	return readCatalogFile(ctx, a.path)
}

// DirectoryAdapter reads every catalog file directly inside a directory.
// Files are merged in name order, so later files override earlier ones.
// Files of unknown formats and subdirectories are skipped.
type DirectoryAdapter struct {
	path string
}

func NewDirectoryAdapter(path string) *DirectoryAdapter {
	return &DirectoryAdapter{path: path}
}

func (a *DirectoryAdapter) Load(ctx context.Context) (Catalogs, error) {
	entries, err := os.ReadDir(a.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToAccessDirectory, err)
	}

	merged := Catalogs{}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, ok := FormatFor(entry.Name()); entry.IsDir() || !ok {
			continue
		}
		catalogs, err := readCatalogFile(ctx, filepath.Join(a.path, entry.Name()))
		if err != nil {
			return nil, err
		}
		merged.merge(catalogs)
	}

	if len(merged) == 0 {
		return nil, fmt.Errorf("%w in directory %q", ErrNoTranslations, a.path)
	}
	return merged, nil
}

func readCatalogFile(ctx context.Context, path string) (Catalogs, error) {
	format, ok := FormatFor(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	catalogs, err := format.Decode(ctx, content)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseFile, fmt.Errorf("%s: %w", path, err))
	}
	return catalogs, nil
}
