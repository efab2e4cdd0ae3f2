// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Appicon resizes the app icon into the variants required by the app.

# Usage

	$ appicon [flags]

Appicon reads AppIcon-1024.png from the current directory (or the
directory given with -C) and writes two PNG icons next to it:

	AppIcon-60@2x.png  120×120
	AppIcon-60@3x.png  180×180

Existing icons are overwritten. The source is stretched to a square if
it isn't one.

# Engines

The -engine flag selects how images are resampled:

	imaging  Lanczos filter from github.com/disintegration/imaging (default).
	nfnt     Lanczos3 filter from github.com/nfnt/resize.
	xdraw    Catmull-Rom kernel from golang.org/x/image/draw.
	magick   Lanczos filter of ImageMagick. Requires the "magick" command
	         to be installed and available in PATH.

# Watching

With -watch, appicon keeps running and regenerates the icons each time
AppIcon-1024.png changes, until interrupted.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/base/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
