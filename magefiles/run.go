//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs a capture with capture.toml, or the defaults when it is missing.
func (Run) Capture() error {
	fmt.Println("Run capture...")
	if _, err := executeCmd("go", withArgs("run", "main.go", "capture.toml"), withStream()); err != nil {
		return err
	}
	return nil
}
