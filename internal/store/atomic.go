// atomic.go implements the temp file + rename write path.

package store

import (
	"os"
	"path/filepath"
)

// staged is a fully written temp file waiting to be renamed over target.
type staged struct {
	tmp    string
	target string
}

// stage writes data to a temp file beside target, flushes and closes it.
// The temp file is removed if any step fails.
func (s *Store) stage(target string, data []byte) (*staged, error) {
	f, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return nil, storageErr("create temp file for", target, err)
	}
	tmp := f.Name()

	fail := func(op string, err error) (*staged, error) {
		f.Close()
		os.Remove(tmp)
		return nil, storageErr(op, target, err)
	}

	if err := s.write(f, data); err != nil {
		return fail("write", err)
	}
	if err := f.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return nil, storageErr("close", target, err)
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return nil, storageErr("chmod", target, err)
	}
	return &staged{tmp: tmp, target: target}, nil
}

// commit renames the temp file into place.
func (st *staged) commit() error {
	if err := os.Rename(st.tmp, st.target); err != nil {
		os.Remove(st.tmp)
		return storageErr("replace", st.target, err)
	}
	return nil
}

// discard removes the temp file without touching the target.
func (st *staged) discard() {
	os.Remove(st.tmp)
}
