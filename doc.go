// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package appicon holds repository-wide checks for the appicon tool.
//
// The tool itself lives in cmd/appicon and the icon generation code in
// internal/appicon.
package appicon
