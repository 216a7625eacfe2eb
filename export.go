package main

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// bundleFile is a generated file written at the root of the export, in order.
type bundleFile struct {
	name string
	body []byte
}

// export writes a self-contained copy of the page to out. The database is
// not touched: the static bundle has no contact form backend or tracking.
func export(cfg *Config, out string, w io.Writer) error {
	tmpl, err := loadTemplates(cfg.TemplateDir)
	if err != nil {
		return err
	}
	a := &app{cfg: cfg, site: DefaultSite(), tmpl: tmpl, now: time.Now}

	canonical := ""
	if cfg.SiteURL != "" {
		canonical = joinSiteURL(cfg.SiteURL, "/")
	}
	data, err := a.pageData(canonical)
	if err != nil {
		return err
	}
	resume := ""
	if cfg.ResumePath != "" {
		resume = exportedResumeName(cfg.ResumePath)
		data.ResumeURL = resume
	}

	var page bytes.Buffer
	if err := renderPage(&page, tmpl, data); err != nil {
		return err
	}

	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	files := []bundleFile{{"index.html", page.Bytes()}}
	if cfg.SiteURL != "" {
		sitemap, err := sitemapXML(cfg.SiteURL)
		if err != nil {
			return err
		}
		files = append(files,
			bundleFile{"robots.txt", []byte(robotsTxt(cfg.SiteURL))},
			bundleFile{"sitemap.xml", sitemap},
		)
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(out, f.name), f.body, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", f.name, err)
		}
		fmt.Fprintf(w, "wrote %s\n", filepath.Join(out, f.name))
	}

	if resume != "" {
		if err := copyFile(cfg.ResumePath, filepath.Join(out, resume)); err != nil {
			return fmt.Errorf("copy résumé: %w", err)
		}
		fmt.Fprintf(w, "wrote %s\n", filepath.Join(out, resume))
	}

	n, err := copyTree(cfg.StaticDir, filepath.Join(out, "static"))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "copied %d static files\n", n)
	return nil
}

// exportedResumeName is the résumé's file name inside the bundle; the page
// links to it relatively.
func exportedResumeName(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		ext = ".pdf"
	}
	return "resume" + ext
}

// copyTree copies the regular files under src into dst, creating
// directories as needed, and returns how many files it copied.
func copyTree(src, dst string) (int, error) {
	count := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if err := copyFile(path, target); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return count, fmt.Errorf("copy %s: %w", src, err)
	}
	return count, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
