package web

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed templates/*
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Templates returns the page templates to render.
func Templates() (fs.FS, error) {
	// 1. Dev mode: Serve from disk
	if dir := os.Getenv("FRONTEND_DIR"); dir != "" {
		return os.DirFS(filepath.Join(dir, "templates")), nil
	}

	// 2. Production mode: Serve embedded files
	return fs.Sub(templatesFS, "templates")
}

// Static returns the static assets to serve.
func Static() (fs.FS, error) {
	if dir := os.Getenv("FRONTEND_DIR"); dir != "" {
		return os.DirFS(filepath.Join(dir, "static")), nil
	}
	return fs.Sub(staticFS, "static")
}
