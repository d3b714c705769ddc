// Package content defines the site content collections consumed by the
// assistant and the store they are read from. Records are created and edited
// through the CMS; this package only ever reads a fresh snapshot per
// conversation turn.
package content

import "time"

// Service is one service offering shown on the site. Name and slug are
// unique within the store.
type Service struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
	Image       string `json:"image,omitempty"`
	Featured    bool   `json:"featured"`
}

// Project is a portfolio entry. Title and slug are unique within the store.
type Project struct {
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Types        []string  `json:"types"`
	Technologies []string  `json:"technologies"`
	Image        string    `json:"image,omitempty"`
	Gallery      []string  `json:"gallery,omitempty"`
	LiveURL      string    `json:"liveUrl,omitempty"`
	GithubURL    string    `json:"githubUrl,omitempty"`
	Client       string    `json:"client,omitempty"`
	Featured     bool      `json:"featured"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TechStack is one technology the agency works with.
type TechStack struct {
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Level       string `json:"level,omitempty"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
	Order       int    `json:"order"`
}

// Faq is a frequently asked question. Question is unique within the store.
type Faq struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category,omitempty"`
	Order    int    `json:"order"`
	Active   bool   `json:"active"`
}

// Testimonial is a client quote.
type Testimonial struct {
	Name        string `json:"name"`
	Designation string `json:"designation,omitempty"`
	Message     string `json:"message"`
	Image       string `json:"image,omitempty"`
	Rating      int    `json:"rating"`
	Active      bool   `json:"active"`
	Order       int    `json:"order"`
}
