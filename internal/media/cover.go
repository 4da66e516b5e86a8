package media

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"music-vault/internal/logging"
	"music-vault/internal/metrics"

	// Input cover decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // WebP input support
)

// CoverSize is the canonical edge length of a stored cover. Covers are
// resampled to exactly CoverSize x CoverSize; the source aspect ratio is
// not preserved and consumers treat every stored cover as a square.
const CoverSize = 500

var (
	// ErrDecodeFailed indicates the source image could not be opened or
	// decoded by any available codec.
	ErrDecodeFailed = errors.New("cannot decode cover image")
	// ErrEncodeFailed indicates the normalized cover could not be written.
	ErrEncodeFailed = errors.New("cannot encode cover image")
)

// StagedCover is a normalized cover written to a staging file inside the
// media folder. It becomes addressable under Name only after Commit;
// Discard removes the staging file if the enclosing operation fails.
type StagedCover struct {
	// Name is the file name the cover will have once committed, relative
	// to the media folder.
	Name string

	stagingPath string
	finalPath   string
}

// Commit renames the staged file into its final location. Staging and
// final paths share a directory, so the rename is atomic on POSIX
// filesystems.
func (c *StagedCover) Commit() error {
	if err := os.Rename(c.stagingPath, c.finalPath); err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}
	logging.Info("media: stored cover %s", c.Name)
	return nil
}

// Discard removes the staging file. Safe to call after Commit; the
// staging path no longer exists and the error is ignored.
func (c *StagedCover) Discard() {
	if err := os.Remove(c.stagingPath); err != nil && !os.IsNotExist(err) {
		logging.Warn("media: failed to remove staged cover %s: %v", c.stagingPath, err)
	}
}

// StageCover decodes the image at sourcePath, resamples it to exactly
// CoverSize x CoverSize with Lanczos filtering, and encodes it as WebP
// into a staging file inside mediaDir. The caller commits the result
// after its own persistence succeeds, or discards it.
func StageCover(sourcePath, mediaDir string) (*StagedCover, error) {
	start := time.Now()
	staged, err := stageCover(sourcePath, mediaDir)
	metrics.ObserveCoverProcessed(time.Since(start), err)
	return staged, err
}

func stageCover(sourcePath, mediaDir string) (*StagedCover, error) {
	img, err := decodeCover(sourcePath)
	if err != nil {
		return nil, err
	}

	// Exact square output; aspect ratio is intentionally not preserved.
	thumb := imaging.Resize(img, CoverSize, CoverSize, imaging.Lanczos)

	name := NewCoverName()
	staged := &StagedCover{
		Name:        name,
		stagingPath: filepath.Join(mediaDir, ".staging-"+name),
		finalPath:   filepath.Join(mediaDir, name),
	}

	out, err := os.Create(staged.stagingPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}
	if err := nativewebp.Encode(out, thumb, nil); err != nil {
		out.Close()
		staged.Discard()
		return nil, fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}
	if err := out.Close(); err != nil {
		staged.Discard()
		return nil, fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}

	logging.Debug("media: staged cover %s from %s", name, filepath.Base(sourcePath))
	return staged, nil
}

// decodeCover loads the source image, trying libvips first and falling
// back to pure-Go decoding.
func decodeCover(path string) (image.Image, error) {
	if IsVipsAvailable() {
		img, err := loadWithVips(path, CoverSize, CoverSize)
		if err == nil {
			return img, nil
		}
		logging.Debug("media: vips decode failed for %s, falling back: %v", path, err)
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err == nil {
		return img, nil
	}
	logging.Debug("media: imaging.Open failed for %s: %v, trying registered decoders", path, err)

	img, err = decodeImageFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	return img, nil
}

func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	logging.Debug("media: decoded %s as %s", filepath.Base(path), format)
	return img, nil
}
