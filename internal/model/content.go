package model

import (
	"encoding/json"
	"fmt"
)

// SiteContent holds the editable text of the public page.
type SiteContent struct {
	Brand   Brand   `json:"brand" yaml:"brand"`
	Hero    Hero    `json:"hero" yaml:"hero"`
	About   About   `json:"about" yaml:"about"`
	Contact Contact `json:"contact" yaml:"contact"`
	Footer  Footer  `json:"footer" yaml:"footer"`
}

type Brand struct {
	Name string `json:"name" yaml:"name"`
}

type Hero struct {
	Title       string `json:"title" yaml:"title"`
	TitleAccent string `json:"titleAccent" yaml:"titleAccent"`
	Subtitle    string `json:"subtitle" yaml:"subtitle"`
	ScrollLabel string `json:"scrollLabel" yaml:"scrollLabel"`
}

type About struct {
	Heading string `json:"heading" yaml:"heading"`
	Text    string `json:"text" yaml:"text"`
}

type Contact struct {
	Heading    string `json:"heading" yaml:"heading"`
	Text       string `json:"text" yaml:"text"`
	Email      string `json:"email" yaml:"email"`
	ButtonText string `json:"buttonText" yaml:"buttonText"`
}

type Footer struct {
	Text    string `json:"text" yaml:"text"`
	Subtext string `json:"subtext" yaml:"subtext"`
}

func DefaultSiteContent() SiteContent {
	return SiteContent{
		Brand: Brand{Name: "dieledev"},
		Hero: Hero{
			Title:       "dieledev",
			TitleAccent: "showcase",
			Subtitle:    "Creative development projects\nand digital experiments.",
			ScrollLabel: "Our featured works",
		},
		About: About{
			Heading: "About",
			Text: "I'm Jochem — a developer building digital tools, creative experiments, and everything in between. " +
				"This showcase collects all my active projects in one place.\n\n" +
				"Every project starts as a curiosity. Some grow into full products, others stay experiments. " +
				"All of them teach me something new.",
		},
		Contact: Contact{
			Heading:    "Contact",
			Text:       "Got a question, an idea, or just want to say hi?",
			Email:      "hello@dieledev.work",
			ButtonText: "hello@dieledev.work",
		},
		Footer: Footer{
			Text:    "© {year} dieledev. All rights reserved.",
			Subtext: "Built with Next.js & Tailwind CSS",
		},
	}
}

// DecodeSiteContent decodes data on top of the defaults. Fields present in
// data win; absent fields and sections keep their default values.
func DecodeSiteContent(data []byte) (SiteContent, error) {
	c := DefaultSiteContent()
	if err := json.Unmarshal(data, &c); err != nil {
		return SiteContent{}, fmt.Errorf("decoding site content: %w", err)
	}
	return c, nil
}
