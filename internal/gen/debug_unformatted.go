package gen

import "os"

// writeDebugUnformatted writes unformatted code to a sidecar file next to the
// intended output. It is best-effort and never replaces the real error. The
// sidecar does not end in .go so the package keeps building.
func writeDebugUnformatted(path string, content []byte) error {
	if path == "" || len(content) == 0 {
		return nil
	}

	return os.WriteFile(path+".unformatted", content, filePerm)
}
