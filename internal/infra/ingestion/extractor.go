package ingestion

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFileType marks files the extractor cannot read.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// ExtractText detects file type and returns plain text.
func ExtractText(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		b, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(b), nil
	case ".pdf":
		return ExtractTextFromPDF(path)
	default:
		return "", ErrUnsupportedFileType
	}
}

// ListCorpusFiles walks root and returns every file the extractor supports.
func ListCorpusFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".txt", ".md", ".pdf":
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
