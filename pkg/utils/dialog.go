//go:build !headless

package utils

import (
	"errors"

	"github.com/sqweek/dialog"
)

// AskForFile shows a native dialog to pick a ROM, starting in
// startingDir. An empty path is returned if the dialog is cancelled.
func AskForFile(title, startingDir string) (string, error) {
	builder := dialog.File().SetStartDir(startingDir).Title(title)
	builder.Filter("Game Boy ROM", "gb", "zip", "gz", "7z")

	// show the dialog
	path, err := builder.Load()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", nil
	}
	return path, err
}

// AskForSaveFile shows a native dialog to pick where to save a
// PNG image. An empty path is returned if the dialog is cancelled.
func AskForSaveFile(title, startingDir string) (string, error) {
	builder := dialog.File().SetStartDir(startingDir).Title(title)
	builder.Filter("PNG image", "png")

	path, err := builder.Save()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", nil
	}
	return path, err
}
