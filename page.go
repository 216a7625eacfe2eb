package main

import (
	"encoding/xml"
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strings"
)

// NavLink is an in-page anchor in the header. Href is always "#<section id>".
type NavLink struct {
	Label string
	Href  string
}

var navLinks = []NavLink{
	{Label: "About", Href: "#about"},
	{Label: "Experience", Href: "#experience"},
	{Label: "Projects", Href: "#projects"},
	{Label: "Contact", Href: "#contact"},
}

// PageData is the view model of index.html.
type PageData struct {
	Head      Head
	Site      Site
	Nav       []NavLink
	ResumeURL string
	Year      int

	// ContactForm enables the HTMX contact form; off for static exports.
	ContactForm bool
}

func (a *app) pageData(canonical string) (PageData, error) {
	head, err := BuildHead(a.site, canonical)
	if err != nil {
		return PageData{}, err
	}
	resume := "#"
	if a.cfg.ResumePath != "" {
		resume = "/resume"
	}
	return PageData{
		Head:      head,
		Site:      a.site,
		Nav:       navLinks,
		ResumeURL: resume,
		Year:      a.now().Year(),
	}, nil
}

var templateFuncs = template.FuncMap{
	"mailto": func(addr string) template.URL { return template.URL("mailto:" + addr) },
}

// loadTemplates parses every *.html under dir. Templates are addressed by
// file name, as gin's LoadHTMLGlob does.
func loadTemplates(dir string) (*template.Template, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("parse templates in %s: %w", dir, err)
	}
	return tmpl, nil
}

func renderPage(w io.Writer, tmpl *template.Template, data PageData) error {
	if err := tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

func robotsTxt(siteURL string) string {
	var b strings.Builder
	b.WriteString("User-agent: *\nAllow: /\nDisallow: /admin/\n")
	if siteURL != "" {
		b.WriteString("Sitemap: " + joinSiteURL(siteURL, "/sitemap.xml") + "\n")
	}
	return b.String()
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

func sitemapXML(siteURL string) ([]byte, error) {
	set := urlSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  []sitemapURL{{Loc: joinSiteURL(siteURL, "/")}},
	}
	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
