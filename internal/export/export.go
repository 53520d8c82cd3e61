// Package export renders the site to a directory of static files for hosts
// that serve no backend.
package export

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	g "maragu.dev/gomponents"

	"lfg-site/internal/components"
	"lfg-site/internal/config"
	"lfg-site/internal/contact"
	"lfg-site/internal/site"
	"lfg-site/internal/starfield"
	"lfg-site/web"
)

type Options struct {
	OutDir      string
	Target      string
	BasePath    string
	AssetPrefix string
	APIBase     string
	Stars       starfield.Options
}

// Result lists the files written, relative to OutDir.
type Result struct {
	Files []string
}

// Run writes every catalogue page as <path>/index.html, a 404.html, the
// no-script starfield image and the static assets.
func Run(opts Options) (*Result, error) {
	if opts.OutDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if err := config.ValidateBasePath(opts.BasePath); err != nil {
		return nil, err
	}
	if opts.Stars == (starfield.Options{}) {
		opts.Stars = starfield.PageOptions
	}

	s := site.New(opts.BasePath, opts.AssetPrefix, opts.APIBase)
	s.Stars = opts.Stars
	s.SPARedirect = opts.Target == config.TargetGitHubPages

	w := &writer{root: opts.OutDir}

	for _, p := range site.Pages() {
		name := filepath.Join(strings.Trim(p.Path, "/"), "index.html")
		if err := w.node(name, components.Page(s, p, contact.FormView{})); err != nil {
			return nil, err
		}
	}

	if err := w.node("404.html", components.NotFoundPage(s)); err != nil {
		return nil, err
	}

	err := w.file("starfield.png", func(f io.Writer) error {
		return starfield.RenderPNG(f, starfield.RenderOptions{Options: s.Stars, Width: 1920, Height: 1080, Frames: 30, Seed: 1})
	})
	if err != nil {
		return nil, err
	}

	if err := w.static(web.Static(), "static"); err != nil {
		return nil, err
	}

	if s.SPARedirect {
		// GitHub Pages would otherwise run Jekyll over the output.
		if err := w.file(".nojekyll", func(io.Writer) error { return nil }); err != nil {
			return nil, err
		}
	}

	slog.Info("site exported", "dir", opts.OutDir, "files", len(w.written), "base_path", s.BasePath)
	return &Result{Files: w.written}, nil
}

type writer struct {
	root    string
	written []string
}

func (w *writer) file(name string, fill func(io.Writer) error) error {
	path := filepath.Join(w.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", name, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	if err := fill(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}

	w.written = append(w.written, filepath.ToSlash(name))
	return nil
}

func (w *writer) node(name string, n g.Node) error {
	return w.file(name, n.Render)
}

func (w *writer) static(fsys fs.FS, dir string) error {
	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		return w.file(dir+"/"+path, func(dst io.Writer) error {
			src, err := fsys.Open(path)
			if err != nil {
				return err
			}
			defer src.Close()
			_, err = io.Copy(dst, src)
			return err
		})
	})
}
