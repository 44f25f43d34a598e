//go:build !headless

package main

import (
	"os"

	_ "github.com/thelolagemann/shellboy/pkg/display/ebiten"
	"github.com/thelolagemann/shellboy/pkg/utils"
)

func init() {
	askForROM = func() (string, error) {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return utils.AskForFile("Open ROM", wd)
	}
}
