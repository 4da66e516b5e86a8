package filesystem

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"music-vault/internal/logging"
)

// CopyFile copies src to dst byte for byte. An existing dst is silently
// overwritten; the managed folder keys files by name and the newest
// ingestion wins.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copying to %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("copying to %s: %w", dst, err)
	}
	return nil
}

// RemoveIfExists deletes path if it is present. A missing file is not an
// error; any other failure is returned for the caller to log or swallow.
func RemoveIfExists(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// FolderSize recursively sums the sizes of all regular files under root.
// Symlinked directories are not descended into, so cycles cannot inflate
// the total. Traversal errors (permission denied, vanished entries) are
// logged and skipped: the result is a best-effort lower bound, never an
// error once the root itself is readable.
func FolderSize(root string) int64 {
	var total int64

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.Warn("folder size: skipping %s: %v", path, err)
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			logging.Warn("folder size: skipping %s: %v", path, err)
			return nil
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		logging.Warn("folder size: walk of %s stopped early: %v", root, err)
	}

	return total
}

// FormatSize renders a byte count in the largest base-1024 unit that is
// at least 1.0, with two decimal places. The Bytes tier has no decimals.
func FormatSize(bytes int64) string {
	const (
		kb = 1024.0
		mb = kb * 1024.0
		gb = mb * 1024.0
		tb = gb * 1024.0
	)

	size := float64(bytes)

	switch {
	case size >= tb:
		return fmt.Sprintf("%.2f TB", size/tb)
	case size >= gb:
		return fmt.Sprintf("%.2f GB", size/gb)
	case size >= mb:
		return fmt.Sprintf("%.2f MB", size/mb)
	case size >= kb:
		return fmt.Sprintf("%.2f KB", size/kb)
	default:
		return fmt.Sprintf("%d Bytes", bytes)
	}
}
