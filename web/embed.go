// Package web provides the embedded frontend assets for the local
// upload UI.
package web

import (
	"embed"
	"io/fs"
)

//go:embed all:static all:templates
var assets embed.FS

// Assets returns the embedded assets with "templates" and "static" as
// top-level directories.
func Assets() fs.FS {
	return assets
}

// Static returns the embedded static assets rooted at "static", so files
// are accessed directly (e.g. "app.js" not "static/app.js").
func Static() (fs.FS, error) {
	return fs.Sub(assets, "static")
}
