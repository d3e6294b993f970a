package definition

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadFile reads a definition document from disk. The format is chosen by
// extension: .xml documents are parsed directly, .yaml and .yml documents go
// through the generator.
func LoadFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open definition: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return Parse(f)
	case ".yaml", ".yml":
		g, err := LoadYAML(f)
		if err != nil {
			return nil, err
		}
		return g.Node(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
