// Package static embeds static files into the binary and copies them to the
// filesystem
package static

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ayoisaiah/cogload/internal/osutil"
)

const (
	filesDir = "files"

	// SampleWeek is the file name of the bundled example week.
	SampleWeek = "sample_week.yml"
)

//go:embed files/*
var embeddedFiles embed.FS

// Install copies the embedded files into dir, leaving existing files alone.
func Install(dir string) error {
	return fs.WalkDir(
		embeddedFiles,
		filesDir,
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			b, err := embeddedFiles.ReadFile(path)
			if err != nil {
				return err
			}

			destPath := filepath.Join(dir, strings.TrimPrefix(path, filesDir+"/"))

			// Only write if file does not already exist
			if _, err := os.Stat(destPath); os.IsNotExist(err) {
				if err := os.MkdirAll(filepath.Dir(destPath), osutil.DirPermission); err != nil {
					return err
				}

				if err := os.WriteFile(destPath, b, 0o644); err != nil {
					return err
				}
			}

			return nil
		},
	)
}
