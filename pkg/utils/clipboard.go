package utils

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sync"

	"golang.design/x/clipboard"
)

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

func initClipboard() error {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	if clipboardErr != nil {
		return fmt.Errorf("utils: clipboard unavailable: %w", clipboardErr)
	}
	return nil
}

// CopyImage copies img to the system clipboard as a PNG.
func CopyImage(img image.Image) error {
	if err := initClipboard(); err != nil {
		return err
	}

	// encode image to byte slice
	var b bytes.Buffer
	if err := png.Encode(&b, img); err != nil {
		return err
	}

	clipboard.Write(clipboard.FmtImage, b.Bytes())
	return nil
}

// CopyText copies text to the system clipboard.
func CopyText(text string) error {
	if err := initClipboard(); err != nil {
		return err
	}

	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
