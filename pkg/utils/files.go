// Package utils provides helpers shared by the command line and the
// display drivers: loading (possibly compressed) ROM files, and
// turning frames into images.
package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// ErrEmptyArchive is returned when an archive holds no files.
var ErrEmptyArchive = errors.New("utils: empty archive")

// LoadFile loads the given file and performs decompression if necessary.
// Archives (.zip and .7z) return the first file they contain, and
// .gz files their decompressed contents. Any other file is returned
// as is.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("utils: %w", err)
	}

	// try to assert the compression type from the file extension
	var decoder io.ReadCloser
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".gz":
		decoder, err = gzip.NewReader(bytes.NewReader(data))
	case ".zip":
		decoder, err = openZip(data)
	case ".7z":
		decoder, err = open7z(data)
	default:
		// return the data as is
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("utils: decompressing %s: %w", filename, err)
	}
	defer decoder.Close()

	// read the decompressed data into a byte slice
	data, err = io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("utils: decompressing %s: %w", filename, err)
	}

	return data, nil
}

// openZip opens the first file in the zip archive.
func openZip(data []byte) (io.ReadCloser, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	for _, f := range r.File {
		if !f.FileInfo().IsDir() {
			return f.Open()
		}
	}
	return nil, ErrEmptyArchive
}

// open7z opens the first file in the 7z archive.
func open7z(data []byte) (io.ReadCloser, error) {
	r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	for _, f := range r.File {
		if !f.FileInfo().IsDir() {
			return f.Open()
		}
	}
	return nil, ErrEmptyArchive
}
