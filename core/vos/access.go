package vos

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Access is a set of capabilities a caller needs on a file.
type Access uint8

const (
	CanRead Access = 1 << iota
	CanWrite
	CanExecute
)

const (
	ownerRead  fs.FileMode = 0400
	ownerWrite fs.FileMode = 0200
	ownerExec  fs.FileMode = 0100
)

// ErrPermissionDenied is returned when the permission gate rejects access.
var ErrPermissionDenied = errors.New("insufficient permissions")

func (a Access) String() string {
	var sb strings.Builder
	for _, flag := range []struct {
		access Access
		char   byte
	}{
		{CanRead, 'r'},
		{CanWrite, 'w'},
		{CanExecute, 'x'},
	} {
		if a&flag.access != 0 {
			sb.WriteByte(flag.char)
		} else {
			sb.WriteByte('-')
		}
	}
	return sb.String()
}

// ownerBits converts the access set into the owner permission bits it needs.
func (a Access) ownerBits() fs.FileMode {
	var out fs.FileMode
	if a&CanRead != 0 {
		out |= ownerRead
	}
	if a&CanWrite != 0 {
		out |= ownerWrite
	}
	if a&CanExecute != 0 {
		out |= ownerExec
	}
	return out
}

// CanAccess reports whether the owner permission bits of name grant every
// capability in want. A failed stat is treated as a denial and the error is
// returned alongside false.
func CanAccess(vfs VFS, name string, want Access) (bool, error) {
	stat, err := vfs.Stat(name)
	if err != nil {
		return false, err
	}

	need := want.ownerBits()
	return stat.Mode().Perm()&need == need, nil
}

// CheckAccess is like CanAccess but folds a denial into an error wrapping
// ErrPermissionDenied.
func CheckAccess(vfs VFS, name string, want Access) error {
	ok, err := CanAccess(vfs, name, want)
	switch {
	case err != nil:
		return err
	case !ok:
		return fmt.Errorf("%s: %w (need %s)", name, ErrPermissionDenied, want)
	default:
		return nil
	}
}
