package gen

import (
	"fmt"
	"os"
)

// File permission constants.
const filePerm = 0o644

// WriteFiles writes all generated files to their paths. Files are written
// in order; the first failure stops the loop.
func WriteFiles(files []GeneratedFile) error {
	for _, file := range files {
		if err := os.WriteFile(file.Path, file.Content, filePerm); err != nil {
			return fmt.Errorf("writing file %s: %w", file.Path, err)
		}
	}

	return nil
}
