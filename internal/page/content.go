package page

import (
	"fmt"
	"os"
	"slices"

	"github.com/san-kum/termfolio/internal/reveal"
	"gopkg.in/yaml.v3"
)

type Content struct {
	Name     string    `yaml:"name"`
	Tagline  string    `yaml:"tagline"`
	Phrases  []string  `yaml:"phrases"`
	Sections []Section `yaml:"sections"`
	Links    []Link    `yaml:"links"`
}

type Section struct {
	ID        string   `yaml:"id"`
	Title     string   `yaml:"title"`
	Body      string   `yaml:"body"`
	Items     []string `yaml:"items,omitempty"`
	Animation string   `yaml:"animation,omitempty"`
	Image     string   `yaml:"image,omitempty"`
}

type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

func Default() *Content {
	return &Content{
		Name:    "Alex Morgan",
		Tagline: "software engineer",
		Phrases: []string{
			"Backend Developer",
			"Go Enthusiast",
			"Open Source Contributor",
			"Problem Solver",
		},
		Sections: []Section{
			{
				ID:        "about",
				Title:     "About",
				Body:      "I build software that is useful and a little fun, and I like knowing how things work underneath. Most projects start as a small idea and turn into a reason to learn a new language, tool or trick.",
				Animation: "fadeIn",
				Image:     "images/avatar.png",
			},
			{
				ID:        "projects",
				Title:     "Projects",
				Body:      "A few things I have built recently.",
				Animation: "slideInLeft",
				Items: []string{
					"mailtui: a terminal email client with fuzzy search",
					"tunes: a terminal music player streaming through mpv",
					"recs: a content based game recommender using TF-IDF",
					"termfolio: this portfolio, rendered in your terminal",
				},
			},
			{
				ID:        "experience",
				Title:     "Experience",
				Body:      "Platform engineer working on internal tooling, deploy pipelines and the services that glue them together.",
				Animation: "slideInRight",
				Items: []string{
					"Cut release lead time by moving builds to cached remote runners",
					"Owned the on-call runbooks for three customer facing services",
				},
			},
			{
				ID:        "skills",
				Title:     "Skills",
				Body:      "Go, SQL, Linux, Docker, Kubernetes, Terraform, a working knowledge of TypeScript and a healthy respect for shell scripts.",
				Animation: "scaleUp",
			},
			{
				ID:        "contact",
				Title:     "Contact",
				Body:      "The fastest way to reach me is email. I read everything, even if replies take a day or two.",
				Animation: "fadeIn",
			},
		},
		Links: []Link{
			{Label: "email", URL: "mailto:alex@example.com"},
			{Label: "github", URL: "https://github.com/example"},
		},
	}
}

// Load reads YAML content. Fields missing from the file keep their defaults.
func Load(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

func Save(path string, c *Content) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Content) Validate() error {
	if len(c.Phrases) == 0 {
		return fmt.Errorf("%w: no phrases", ErrConfiguration)
	}
	known := reveal.AnimationNames()
	seen := make(map[string]bool, len(c.Sections))
	for i, s := range c.Sections {
		if s.ID == "" {
			return fmt.Errorf("%w: section %d has no id", ErrConfiguration, i)
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: duplicate section id %q", ErrConfiguration, s.ID)
		}
		seen[s.ID] = true
		if s.Animation != "" && !slices.Contains(known, s.Animation) {
			return fmt.Errorf("%w: section %q uses unknown animation %q", ErrConfiguration, s.ID, s.Animation)
		}
	}
	return nil
}
