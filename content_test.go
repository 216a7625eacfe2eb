package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectSlug(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Real‑Time Analytics Pipeline", "real-time-analytics-pipeline"},
		{"Distributed Task Orchestrator", "distributed-task-orchestrator"},
		{"gRPC Microservices + API Gateway", "grpc-microservices-api-gateway"},
		{"Realtime Chat & Presence Service", "realtime-chat-and-presence-service"},
		{"Café Déjà Vu", "cafe-deja-vu"},
		{"  Trailing!  ", "trailing"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Project{Title: tt.title}.Slug())
		})
	}
}

func TestProjectStackFormatting(t *testing.T) {
	p := Project{Stack: []string{"Kafka", "Node.js", "Redis"}}
	assert.Equal(t, "Kafka • Node.js • Redis", p.StackLine())
	assert.Equal(t, "Kafka, Node.js, Redis", p.Keywords())

	assert.Equal(t, "", Project{}.StackLine())
}

func TestDefaultSite(t *testing.T) {
	site := DefaultSite()

	assert.Equal(t, "Chinmay Jain — Backend Engineer Portfolio", site.SEO.Title)
	assert.Len(t, site.Projects, 4)
	assert.Len(t, site.Experience, 3)
	assert.Equal(t, []string{"Node.js", "Kafka", "Redis", "gRPC", "TypeScript", "Docker"}, site.TechStack)

	slugs := map[string]bool{}
	for _, p := range site.Projects {
		assert.NotEmpty(t, p.Stack, p.Title)
		assert.False(t, slugs[p.Slug()], "duplicate slug %s", p.Slug())
		slugs[p.Slug()] = true
	}
}

func TestProjectBySlug(t *testing.T) {
	site := DefaultSite()

	p, ok := site.ProjectBySlug("realtime-chat-and-presence-service")
	assert.True(t, ok)
	assert.Equal(t, "Realtime Chat & Presence Service", p.Title)

	_, ok = site.ProjectBySlug("missing")
	assert.False(t, ok)
}
