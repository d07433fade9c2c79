package snapcache

import (
	"errors"
	"fmt"
)

var (
	// ErrDirectoryUnavailable means the platform cache directory could not
	// be resolved. Fatal to the save/load call, never to the process.
	ErrDirectoryUnavailable = errors.New("snapcache: cache directory unavailable")

	// ErrSnapshotNotFound means no snapshot file exists under the given
	// name. Load failures with this cause also match fs.ErrNotExist.
	ErrSnapshotNotFound = errors.New("snapcache: snapshot not found")
)

// Op identifies the persistence phase a SnapshotError occurred in.
type Op string

const (
	OpEncode Op = "encode"
	OpWrite  Op = "write"
	OpRead   Op = "read"
	OpDecode Op = "decode"
)

// SnapshotError reports a failed save or load of a named snapshot.
// Op distinguishes serialization failures from IO failures from
// malformed-document failures, so callers can inspect without string
// matching.
type SnapshotError struct {
	Name string
	Op   Op
	Err  error
}

func (e *SnapshotError) Error() string {
	return fmt.Sprintf("snapcache: snapshot %q: %s failed: %v", e.Name, e.Op, e.Err)
}

func (e *SnapshotError) Unwrap() error { return e.Err }
