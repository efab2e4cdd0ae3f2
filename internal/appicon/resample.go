// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package appicon

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os/exec"
	"slices"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Resampler resizes images.
type Resampler interface {
	// Name returns the name used to select the engine.
	Name() string
	// Check reports whether the engine can run on this machine. Errors wrap
	// ErrEngineUnavailable.
	Check() error
	// Resize returns src scaled to exactly width×height.
	Resize(ctx context.Context, src image.Image, width, height int) (image.Image, error)
}

// ErrUnknownEngine is returned by LookupEngine for names that aren't
// registered.
var ErrUnknownEngine = errors.New("unknown resampling engine")

// DefaultEngine is the name of the engine used when none is configured.
const DefaultEngine = "imaging"

var defaultEngine = imagingEngine{}

var engines = map[string]Resampler{
	"imaging": imagingEngine{},
	"nfnt":    nfntEngine{},
	"xdraw":   xdrawEngine{},
	"magick":  magickEngine{bin: "magick"},
}

// Engines returns the sorted names of available engines.
func Engines() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LookupEngine returns the engine registered under name.
func LookupEngine(name string) (Resampler, error) {
	e, ok := engines[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownEngine, name, strings.Join(Engines(), ", "))
	}
	return e, nil
}

// imagingEngine uses github.com/disintegration/imaging with a Lanczos filter.
type imagingEngine struct{}

func (imagingEngine) Name() string { return "imaging" }
func (imagingEngine) Check() error { return nil }

func (imagingEngine) Resize(_ context.Context, src image.Image, width, height int) (image.Image, error) {
	return imaging.Resize(src, width, height, imaging.Lanczos), nil
}

// nfntEngine uses github.com/nfnt/resize with a Lanczos3 filter.
type nfntEngine struct{}

func (nfntEngine) Name() string { return "nfnt" }
func (nfntEngine) Check() error { return nil }

func (nfntEngine) Resize(_ context.Context, src image.Image, width, height int) (image.Image, error) {
	return resize.Resize(uint(width), uint(height), src, resize.Lanczos3), nil
}

// xdrawEngine uses golang.org/x/image/draw with a Catmull-Rom kernel.
type xdrawEngine struct{}

func (xdrawEngine) Name() string { return "xdraw" }
func (xdrawEngine) Check() error { return nil }

func (xdrawEngine) Resize(_ context.Context, src image.Image, width, height int) (image.Image, error) {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// magickEngine pipes PNG data through ImageMagick.
type magickEngine struct {
	bin string
}

func (magickEngine) Name() string { return "magick" }

func (e magickEngine) Check() error {
	if _, err := exec.LookPath(e.bin); err != nil {
		return fmt.Errorf("%w: ImageMagick (%s command) not found; install ImageMagick and make sure %q is in PATH", ErrEngineUnavailable, e.bin, e.bin)
	}
	return nil
}

func (e magickEngine) Resize(ctx context.Context, src image.Image, width, height int) (image.Image, error) {
	var in bytes.Buffer
	if err := imaging.Encode(&in, src, imaging.PNG); err != nil {
		return nil, err
	}

	var out, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.bin,
		"png:-",
		"-filter", "Lanczos",
		"-resize", fmt.Sprintf("%dx%d!", width, height),
		"png32:-",
	)
	cmd.Stdin = &in
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s failed: %w: %s", e.bin, err, bytes.TrimSpace(stderr.Bytes()))
	}

	img, err := imaging.Decode(&out)
	if err != nil {
		return nil, fmt.Errorf("decoding %s output: %w", e.bin, err)
	}
	return img, nil
}
