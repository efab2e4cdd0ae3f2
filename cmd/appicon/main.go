// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"go.astrophena.name/appicon/internal/appicon"
	"go.astrophena.name/base/cli"
)

func main() { cli.Main(new(app)) }

type app struct {
	dir    string
	engine string
	watch  bool
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.StringVar(&a.dir, "C", "", "Read and write icons in `dir` instead of the current directory.")
	fs.StringVar(&a.engine, "engine", appicon.DefaultEngine, fmt.Sprintf("Resampling `engine` (%s).", strings.Join(appicon.Engines(), ", ")))
	fs.BoolVar(&a.watch, "watch", false, "Regenerate icons each time the source icon changes.")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)
	if len(env.Args) != 0 {
		return fmt.Errorf("%w: no arguments expected", cli.ErrInvalidArgs)
	}

	engine, err := appicon.LookupEngine(a.engine)
	if err != nil {
		return fmt.Errorf("%w: %v", cli.ErrInvalidArgs, err)
	}

	c := &appicon.Config{
		Dir:    a.dir,
		Engine: engine,
	}
	if a.watch {
		return appicon.Watch(ctx, c)
	}

	outs, err := appicon.Generate(ctx, c)
	if err != nil {
		return err
	}
	return report(env.Stdout, outs)
}

func report(w io.Writer, outs []appicon.Output) error {
	var sb strings.Builder
	sb.WriteString("Successfully created app icons with proper transparency\n")
	for _, o := range outs {
		sb.WriteString(o.String() + "\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
