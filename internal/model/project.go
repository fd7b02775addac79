package model

import "time"

// Project is one entry of the gallery. Slug is assigned on create and never
// changes afterwards.
type Project struct {
	Slug        string    `json:"slug" yaml:"slug,omitempty"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"-"`
	ImageURL    string    `json:"imageUrl" yaml:"imageUrl"`
	LinkURL     string    `json:"linkUrl" yaml:"linkUrl"`
	Tags        []string  `json:"tags" yaml:"tags,omitempty"`
	Status      Status    `json:"status" yaml:"status"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt,omitempty"`
}

// FindProject returns the index of the project with slug, or -1.
func FindProject(projects []Project, slug string) int {
	for i := range projects {
		if projects[i].Slug == slug {
			return i
		}
	}
	return -1
}

func Slugs(projects []Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.Slug
	}
	return out
}
