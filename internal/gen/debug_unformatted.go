package gen

import (
	"os"
	"path/filepath"
)

// writeDebugUnformatted writes unformatted code to a sidecar file next to the
// intended output. The sidecar does not end in .go, so a broken rendering
// never breaks the build of the package it sits in.
func writeDebugUnformatted(dir, filename string, content []byte) error {
	if dir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, filename+".unformatted"), content, filePerm)
}
