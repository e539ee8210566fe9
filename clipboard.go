package main

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
)

// copyToClipboard puts the whole content of the output file on the system clipboard.
func copyToClipboard(outputPath string) error {
	content, err := os.ReadFile(outputPath)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", outputPath, err)
	}
	if err := clipboard.WriteAll(string(content)); err != nil {
		return fmt.Errorf("error writing to clipboard: %w", err)
	}
	return nil
}
