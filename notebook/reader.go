package notebook

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Read parses a notebook document from r.
func Read(r io.Reader) (*Notebook, error) {
	var nb Notebook
	if err := json.NewDecoder(r).Decode(&nb); err != nil {
		return nil, fmt.Errorf("failed to parse notebook: %w", err)
	}
	return &nb, nil
}

// ReadFile parses the notebook document at path.
func ReadFile(path string) (*Notebook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open notebook: %w", err)
	}
	defer f.Close()

	nb, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return nb, nil
}
