// Package sink persists a finished wallpaper.
//
// The canvas is encoded to JPEG in memory before anything touches the
// disk. Both files are then written to temporary siblings, and only when
// both are complete are they renamed into place, image first.
package sink

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/matzehuels/dailywall/pkg/errors"
)

// DefaultQuality is the JPEG quality used when none is configured.
const DefaultQuality = 90

// Provenance records where each ingredient of a wallpaper came from.
type Provenance struct {
	Image   string
	Weather string
	Joke    string
}

// String formats the provenance file: one "Label: url" line per source.
func (p Provenance) String() string {
	return fmt.Sprintf("Image: %s\nWeather: %s\nJoke: %s\n", p.Image, p.Weather, p.Joke)
}

// Setter installs an image as the desktop wallpaper.
type Setter interface {
	SetWallpaper(ctx context.Context, path string) error
}

// SetterFunc adapts a function to the Setter interface.
type SetterFunc func(ctx context.Context, path string) error

// SetWallpaper calls f(ctx, path).
func (f SetterFunc) SetWallpaper(ctx context.Context, path string) error { return f(ctx, path) }

// Writer writes the wallpaper image and its provenance file.
type Writer struct {
	ImagePath      string
	ProvenancePath string
	Quality        int

	// Wallpaper, when set, is called with the absolute image path after
	// both files are written.
	Wallpaper Setter
	Logger    *log.Logger
}

// Output describes what a Writer produced.
type Output struct {
	ImagePath      string
	ProvenancePath string
	ImageBytes     int
	WallpaperSet   bool
}

// Write encodes img, then writes the image and the provenance file.
func (w *Writer) Write(ctx context.Context, img image.Image, prov Provenance) (*Output, error) {
	if err := errors.ValidateOutputPath(w.ImagePath); err != nil {
		return nil, err
	}
	if err := errors.ValidateOutputPath(w.ProvenancePath); err != nil {
		return nil, err
	}

	data, err := Encode(img, w.quality())
	if err != nil {
		return nil, err
	}
	imgFile, err := stage(w.ImagePath, data)
	if err != nil {
		return nil, err
	}
	infoFile, err := stage(w.ProvenancePath, []byte(prov.String()))
	if err != nil {
		imgFile.discard()
		return nil, err
	}
	if err := imgFile.commit(); err != nil {
		imgFile.discard()
		infoFile.discard()
		return nil, err
	}

	out := &Output{
		ImagePath:  w.ImagePath,
		ImageBytes: len(data),
	}
	if err := infoFile.commit(); err != nil {
		infoFile.discard()
		return out, err
	}
	out.ProvenancePath = w.ProvenancePath
	w.logger().Debug("wrote wallpaper", "image", w.ImagePath, "bytes", len(data), "provenance", w.ProvenancePath)

	if w.Wallpaper == nil {
		return out, nil
	}
	abs, err := filepath.Abs(w.ImagePath)
	if err != nil {
		return out, errors.Wrap(errors.ErrCodeWrite, err, "resolve %s", w.ImagePath)
	}
	if err := w.Wallpaper.SetWallpaper(ctx, abs); err != nil {
		return out, errors.Wrap(errors.ErrCodeWrite, err, "set wallpaper")
	}
	out.WallpaperSet = true
	return out, nil
}

func (w *Writer) quality() int {
	if w.Quality <= 0 {
		return DefaultQuality
	}
	return w.Quality
}

func (w *Writer) logger() *log.Logger {
	if w.Logger == nil {
		return log.Default()
	}
	return w.Logger
}

// Encode returns img as a JPEG.
func Encode(img image.Image, quality int) ([]byte, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty image")
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeWrite, err, "encode jpeg")
	}
	return buf.Bytes(), nil
}

// WriteFileAtomic writes data to a temporary file in path's directory and
// renames it over path, creating the directory if needed.
func WriteFileAtomic(path string, data []byte) error {
	f, err := stage(path, data)
	if err != nil {
		return err
	}
	if err := f.commit(); err != nil {
		f.discard()
		return err
	}
	return nil
}

// stagedFile is a complete temporary file waiting to replace path.
type stagedFile struct {
	path string
	tmp  string
}

// stage writes data to a temporary sibling of path. A directory at path
// is rejected here, before anything is replaced.
func stage(path string, data []byte) (*stagedFile, error) {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return nil, errors.New(errors.ErrCodeWrite, "%s is a directory", path)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeWrite, err, "create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeWrite, err, "create temp file in %s", dir)
	}
	f := &stagedFile{path: path, tmp: tmp.Name()}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		f.discard()
		return nil, errors.Wrap(errors.ErrCodeWrite, err, "write %s", path)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		f.discard()
		return nil, errors.Wrap(errors.ErrCodeWrite, err, "chmod %s", path)
	}
	if err := tmp.Close(); err != nil {
		f.discard()
		return nil, errors.Wrap(errors.ErrCodeWrite, err, "close %s", path)
	}
	return f, nil
}

func (f *stagedFile) commit() error {
	if err := os.Rename(f.tmp, f.path); err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "rename into %s", f.path)
	}
	return nil
}

// discard removes the temporary file. It is a no-op after commit.
func (f *stagedFile) discard() {
	_ = os.Remove(f.tmp)
}
