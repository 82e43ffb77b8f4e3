package singbox

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/pretty"
)

var prettyOptions = &pretty.Options{
	Width:    80,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: false,
}

// Store is the sing-box configuration file on disk.
type Store struct {
	Path string
}

func NewStore(path string) *Store {
	return &Store{Path: path}
}

func (s *Store) Load() ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, &StoreError{Kind: StorageReadFailure, Path: s.Path, Cause: err}
	}
	return data, nil
}

// Save pretty-prints doc and replaces the file atomically: the new content
// goes to a temp file next to the real file and is renamed over it. A
// symlinked Path is followed, so the link stays and its target is updated.
// When the directory is not writable but the file is, the file is
// rewritten in place instead. The original file mode is kept.
func (s *Store) Save(doc []byte) error {
	out := pretty.PrettyOptions(doc, prettyOptions)

	target, err := s.resolve()
	if err != nil {
		return s.writeErr(err)
	}

	mode := fs.FileMode(0o644)
	if fi, err := os.Stat(target); err == nil {
		mode = fi.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return s.writeErr(err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if errors.Is(err, fs.ErrPermission) {
		if werr := os.WriteFile(target, out, mode); werr != nil {
			return s.writeErr(werr)
		}
		return nil
	}
	if err != nil {
		return s.writeErr(err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		cleanup()
		return s.writeErr(err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return s.writeErr(err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return s.writeErr(err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		cleanup()
		return s.writeErr(err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		cleanup()
		return s.writeErr(err)
	}
	return nil
}

// resolve returns the file Path points at. A Path that does not exist yet
// is used as is.
func (s *Store) resolve() (string, error) {
	target, err := filepath.EvalSymlinks(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return s.Path, nil
	}
	return target, err
}

func (s *Store) writeErr(err error) error {
	return &StoreError{Kind: StorageWriteFailure, Path: s.Path, Cause: err}
}
