package main

import (
	"strings"

	"github.com/gosimple/slug"
)

// Profile describes the person the site is about.
type Profile struct {
	Name           string
	Initials       string
	JobTitle       string
	Employer       string
	AlmaMater      string
	GraduationYear string
	Email          string
	SameAs         []string
}

// SEOCopy holds the document title and description.
type SEOCopy struct {
	Title       string
	Description string
}

// Project is one card in the projects section.
type Project struct {
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Stack   []string `json:"stack"`
}

// StackLine is the card subtitle, e.g. "Kafka • Node.js".
func (p Project) StackLine() string {
	return strings.Join(p.Stack, " • ")
}

// Keywords is the stack as a schema.org keywords value.
func (p Project) Keywords() string {
	return strings.Join(p.Stack, ", ")
}

// Slug derives a URL-safe identifier from the title.
func (p Project) Slug() string {
	return slug.Make(p.Title)
}

// Experience is one card in the experience section. Entries carry either
// bullets or a single paragraph.
type Experience struct {
	Title     string
	Period    string
	Bullets   []string
	Paragraph string
	Current   bool
}

// Site is everything the page renders. It is built once and never mutated.
type Site struct {
	Profile    Profile
	SEO        SEOCopy
	Headline   string
	Tagline    string
	Intro      string
	Badges     []string
	TechStack  []string
	Experience []Experience
	Projects   []Project
}

// DefaultSite returns the portfolio content.
func DefaultSite() Site {
	return Site{
		Profile: Profile{
			Name:           "Chinmay Jain",
			Initials:       "CJ",
			JobTitle:       "Backend Engineer",
			Employer:       "ConceptDash",
			AlmaMater:      "NIT Raipur",
			GraduationYear: "2023",
			Email:          "chinmaydhariwal1812@gmail.com",
			SameAs: []string{
				"https://www.linkedin.com/in/chinmayjain7/",
			},
		},
		SEO: SEOCopy{
			Title:       SEOTitle,
			Description: SEODescription,
		},
		Headline:   "Backend Engineer",
		Tagline:    " building resilient, low‑latency systems",
		Intro:      HeroIntro,
		Badges:     []string{"2+ yrs @ ConceptDash", "Accenture Intern", "NIT Raipur ’23"},
		TechStack:  []string{"Node.js", "Kafka", "Redis", "gRPC", "TypeScript", "Docker"},
		Experience: experience(),
		Projects:   projects(),
	}
}

// ProjectBySlug looks a project up by its slug.
func (s Site) ProjectBySlug(slug string) (Project, bool) {
	for _, p := range s.Projects {
		if p.Slug() == slug {
			return p, true
		}
	}
	return Project{}, false
}

func experience() []Experience {
	return []Experience{
		{
			Title:   "Backend Engineer — ConceptDash",
			Period:  "2023 — Present • Fast‑paced startup",
			Bullets: ConceptDashBullets,
			Current: true,
		},
		{
			Title:   "Intern — Accenture",
			Period:  "2022 • Internship",
			Bullets: AccentureBullets,
		},
		{
			Title:     "B.Tech — NIT Raipur",
			Period:    "Class of 2023",
			Paragraph: EducationNote,
		},
	}
}

func projects() []Project {
	return []Project{
		{
			Title:   "Real‑Time Analytics Pipeline",
			Summary: ProjectPipeline,
			Stack:   []string{"Kafka", "Node.js", "Redis", "gRPC"},
		},
		{
			Title:   "Distributed Task Orchestrator",
			Summary: ProjectOrchestrator,
			Stack:   []string{"Kafka", "Node.js", "Redis"},
		},
		{
			Title:   "gRPC Microservices + API Gateway",
			Summary: ProjectGateway,
			Stack:   []string{"Node.js", "gRPC", "Redis"},
		},
		{
			Title:   "Realtime Chat & Presence Service",
			Summary: ProjectChat,
			Stack:   []string{"Kafka", "Redis", "gRPC", "Node.js"},
		},
	}
}
