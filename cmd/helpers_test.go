package cmd

import (
	"os"
	"path/filepath"
)

func removeDir(p string) error { return os.RemoveAll(p) }

// writeScript creates an executable shell script under dir.
func writeScript(dir, name, body string) (string, error) {
	p := filepath.Join(dir, name)
	return p, os.WriteFile(p, []byte("#!/bin/sh\n"+body), 0o755)
}
