package fsoracle

import (
	"os"
	"path/filepath"

	"github.com/xuanyiying/movr/pkg/fileutil"
)

// OSFileSystem is the Oracle backed by the real operating system.
type OSFileSystem struct{}

// NewOSFileSystem returns the real-filesystem Oracle.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// Exists implements Oracle. strict=false is a plain os.Stat (follows
// symlinks, matches whatever case/encoding the file system resolves).
// strict=true additionally confirms that path's exact basename appears in
// a directory listing of its parent, which is what lets a case-only
// rename be distinguished from a no-op on a case-insensitive file system:
// `FILE` "exists" loosely if `file` is on disk, but not strictly.
func (OSFileSystem) Exists(path string, strict bool) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if !strict {
		return true
	}
	return exactCaseMatch(path, info.IsDir())
}

func exactCaseMatch(path string, isDir bool) bool {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return true
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		// Parent unreadable: fall back to the loose result rather than
		// failing strict existence outright.
		return true
	}
	for _, e := range entries {
		if e.Name() == base {
			return true
		}
	}
	return false
}

// Kind implements Oracle.
func (OSFileSystem) Kind(path string) Kind {
	info, err := os.Stat(path)
	if err != nil {
		return Absent
	}
	switch {
	case info.Mode().IsRegular():
		return File
	case info.IsDir():
		return Dir
	default:
		return Other
	}
}

// Rename implements Oracle: fails if dst exists, unless dst resolves to
// src itself (a case-only rename on a case-insensitive file system).
func (OSFileSystem) Rename(src, dst string) error {
	if dstInfo, err := os.Lstat(dst); err == nil {
		if srcInfo, serr := os.Lstat(src); serr == nil && os.SameFile(srcInfo, dstInfo) {
			return fileutil.Replace(src, dst)
		}
		return &fileutil.TargetExistsError{Path: dst}
	}
	return fileutil.Rename(src, dst)
}

// Replace implements Oracle: overwrites dst if present.
func (OSFileSystem) Replace(src, dst string) error {
	return fileutil.Replace(src, dst)
}

// MkdirParents implements Oracle.
func (OSFileSystem) MkdirParents(path string) error {
	return fileutil.MkdirParents(path)
}
