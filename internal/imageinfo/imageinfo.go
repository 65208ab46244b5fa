// Package imageinfo reads wallpaper image headers without decoding pixels.
package imageinfo

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Info describes a wallpaper file.
type Info struct {
	Path   string
	Exists bool
	Format string
	Width  int
	Height int
}

// Readable reports whether the header decoded successfully.
func (i Info) Readable() bool {
	return i.Format != ""
}

// Probe inspects the file at path. A missing file is not an error; it is
// reported through Info.Exists. Unknown or corrupt formats return an
// error alongside Exists=true.
func Probe(path string) (Info, error) {
	info := Info{Path: path}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return info, nil
	}
	if err != nil {
		return info, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	info.Exists = true

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return info, fmt.Errorf("failed to decode image header: %w", err)
	}

	info.Format = format
	info.Width = cfg.Width
	info.Height = cfg.Height
	return info, nil
}

// Describe returns a short status such as "3840x2160 jpeg" or "missing".
func Describe(path string) string {
	info, err := Probe(path)
	switch {
	case !info.Exists:
		return "missing"
	case err != nil || !info.Readable():
		return "unreadable"
	default:
		return fmt.Sprintf("%dx%d %s", info.Width, info.Height, info.Format)
	}
}
