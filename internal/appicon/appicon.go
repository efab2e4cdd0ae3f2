// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Package appicon generates mobile app icon variants from a single
1024×1024 source icon.

# Files

The source and the outputs live in the same directory:

	AppIcon-1024.png   Source icon. Any format the image package can
	                   sniff (PNG, JPEG, GIF, BMP, TIFF) is accepted.
	AppIcon-60@2x.png  120×120 PNG, written by Generate.
	AppIcon-60@3x.png  180×180 PNG, written by Generate.

Outputs are always square. A non-square source is stretched, not cropped.
*/
package appicon

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"go.astrophena.name/base/logger"

	"github.com/disintegration/imaging"
)

// SourceName is the name of the source icon.
const SourceName = "AppIcon-1024.png"

// Variant is a square icon produced from the source.
type Variant struct {
	// Name is the file name of the icon.
	Name string
	// Size is the width and height of the icon in pixels.
	Size int
}

// Variants lists icons written by Generate, in order.
var Variants = []Variant{
	{Name: "AppIcon-60@2x.png", Size: 120},
	{Name: "AppIcon-60@3x.png", Size: 180},
}

// Possible errors.
var (
	// ErrSourceMissing is returned when the source icon does not exist.
	ErrSourceMissing = errors.New(SourceName + " not found")
	// ErrEngineUnavailable is returned when a resampling engine can't be
	// used on this machine.
	ErrEngineUnavailable = errors.New("resampling engine unavailable")
)

// Config represents a generation configuration.
type Config struct {
	// Dir is the directory containing the source icon. Outputs are written
	// there too. If empty, uses the current directory.
	Dir string
	// Engine is the resampling engine. If nil, the imaging engine with a
	// Lanczos filter is used.
	Engine Resampler
}

func (c *Config) dir() string {
	if c.Dir == "" {
		return "."
	}
	return c.Dir
}

func (c *Config) engine() Resampler {
	if c.Engine == nil {
		return defaultEngine
	}
	return c.Engine
}

// Output describes a written icon.
type Output struct {
	Name   string
	Path   string
	Width  int
	Height int
}

// String returns a human-readable form like "AppIcon-60@2x.png: 120x120".
func (o Output) String() string {
	return fmt.Sprintf("%s: %dx%d", o.Name, o.Width, o.Height)
}

// Generate loads the source icon from c.Dir once and writes every variant
// from [Variants] next to it, replacing existing files.
func Generate(ctx context.Context, c *Config) ([]Output, error) {
	if c == nil {
		c = &Config{}
	}
	dir, engine := c.dir(), c.engine()

	if err := engine.Check(); err != nil {
		return nil, err
	}

	src, err := loadSource(dir)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "loaded source icon",
		slog.String("path", filepath.Join(dir, SourceName)),
		slog.Int("width", src.Bounds().Dx()),
		slog.Int("height", src.Bounds().Dy()),
		slog.String("engine", engine.Name()),
	)

	// Nothing is written until every variant is encoded.
	encoded := make([][]byte, len(Variants))
	for i, v := range Variants {
		img, err := engine.Resize(ctx, src, v.Size, v.Size)
		if err != nil {
			return nil, fmt.Errorf("resizing to %dx%d: %w", v.Size, v.Size, err)
		}
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", v.Name, err)
		}
		encoded[i] = buf.Bytes()
	}

	outs := make([]Output, 0, len(Variants))
	for i, v := range Variants {
		path := filepath.Join(dir, v.Name)
		if err := writeFile(path, encoded[i]); err != nil {
			return outs, fmt.Errorf("writing %s: %w", v.Name, err)
		}
		outs = append(outs, Output{
			Name:   v.Name,
			Path:   path,
			Width:  v.Size,
			Height: v.Size,
		})
	}
	return outs, nil
}

// loadSource decodes the source icon and converts it to NRGBA, so that the
// result always carries an alpha channel.
func loadSource(dir string) (*image.NRGBA, error) {
	path := filepath.Join(dir, SourceName)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		loc := dir
		if loc == "." {
			loc = "current directory"
		}
		return nil, fmt.Errorf("%w in %s", ErrSourceMissing, loc)
	} else if err != nil {
		return nil, err
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", SourceName, err)
	}
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Bounds().Min == (image.Point{}) {
		return nrgba, nil
	}
	return imaging.Clone(img), nil
}

// writeFile writes b to a temporary file in the same directory and renames
// it over path.
func writeFile(path string, b []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp) // no-op after a successful rename

	if _, err := f.Write(b); err != nil {
		f.Close()
		return err
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
