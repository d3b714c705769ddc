// Package prompt builds the system prompt for the Aiva assistant from a
// snapshot of site content. Build is pure: identical snapshots produce
// byte-identical prompts.
package prompt

import (
	"fmt"
	"strings"

	"github.com/aivrasol/aiva/content"
)

// Placeholder and default literals, kept together so the rendered copy is
// easy to audit without touching the formatting logic.
const (
	noServicesText     = "No services data available yet."
	noProjectsText     = "No projects data available yet."
	noTechStackText    = "No tech stack data available yet."
	noFaqsText         = "No FAQs data available yet."
	noTestimonialsText = "No testimonials data available yet."

	defaultCategory    = "Other"
	defaultDesignation = "Client"
	missingListText    = "N/A"
)

// Per-collection caps, applied while formatting each section.
const (
	maxProjects     = 15
	maxFaqs         = 10
	maxTestimonials = 5
)

// Tighter caps re-applied to the joined section text before it is inserted
// into the final prompt. Layering both keeps the prompt inside the hosted
// model's token budget no matter how much content an admin adds.
const (
	maxProjectLines     = 10
	maxFaqBlocks        = 5
	maxTestimonialLines = 2
)

// Build renders the content snapshot into the assistant's system prompt.
func Build(snap content.Snapshot) string {
	servicesText := formatServices(snap.Services)
	projectsText := formatProjects(snap.Projects)
	techStackText := formatTechStacks(snap.TechStacks)
	faqsText := formatFaqs(snap.Faqs)
	testimonialsText := formatTestimonials(snap.Testimonials)

	return fmt.Sprintf(template,
		servicesText,
		firstLines(projectsText, maxProjectLines),
		techStackText,
		firstBlocks(faqsText, maxFaqBlocks),
		firstLines(testimonialsText, maxTestimonialLines),
	)
}

const template = `You are **Aiva**, AivraSol's AI assistant — a web, AI & software agency that builds exceptional digital solutions.

**RESPONSE RULES:**
- Keep responses SHORT (2-4 sentences max, unless listing items)
- Be IMPRESSIVE and confident, not verbose
- Use emojis sparingly (max 1-2 per response)
- End with ONE clear call-to-action
- Be conversational, warm, and direct

**COMPANY:**
AivraSol specializes in: Custom Web Development | AI Solutions | MERN Stack | UI/UX Design

**SERVICES:**
%s

**PROJECTS (Top Examples):**
%s

**TECH STACK:**
%s

**QUICK ANSWERS:**
%s

**TESTIMONIALS:**
%s

**RESPONSE EXAMPLES:**
- Services: "We build modern web apps, AI chatbots, and custom software using React, Node.js, and MongoDB. Want to see our portfolio? 🚀"
- Projects: "Check out our AI Chatbot — intelligent customer support with OpenAI integration. Interested in something similar?"
- Contact: "Reach us through our contact form for a free consultation. What's your project idea?"

**KEY:** Be brief, confident, and always include ONE next step.`

func formatServices(services []content.Service) string {
	if len(services) == 0 {
		return noServicesText
	}
	lines := make([]string, len(services))
	for i, s := range services {
		lines[i] = fmt.Sprintf("- **%s**: %s", s.Name, s.Description)
	}
	return strings.Join(lines, "\n")
}

func formatProjects(projects []content.Project) string {
	if len(projects) == 0 {
		return noProjectsText
	}
	if len(projects) > maxProjects {
		projects = projects[:maxProjects]
	}
	lines := make([]string, len(projects))
	for i, p := range projects {
		lines[i] = fmt.Sprintf("- **%s** (%s): %s\n  Technologies: %s",
			p.Title, joinOrMissing(p.Types), p.Description, joinOrMissing(p.Technologies))
	}
	return strings.Join(lines, "\n")
}

func formatTechStacks(stacks []content.TechStack) string {
	if len(stacks) == 0 {
		return noTechStackText
	}
	// group by category, preserving first-seen order rather than sorting
	var order []string
	groups := map[string][]string{}
	for _, t := range stacks {
		category := t.Category
		if category == "" {
			category = defaultCategory
		}
		if _, ok := groups[category]; !ok {
			order = append(order, category)
		}
		groups[category] = append(groups[category], t.Name)
	}
	lines := make([]string, len(order))
	for i, category := range order {
		lines[i] = fmt.Sprintf("**%s**: %s", category, strings.Join(groups[category], ", "))
	}
	return strings.Join(lines, "\n")
}

func formatFaqs(faqs []content.Faq) string {
	if len(faqs) == 0 {
		return noFaqsText
	}
	if len(faqs) > maxFaqs {
		faqs = faqs[:maxFaqs]
	}
	blocks := make([]string, len(faqs))
	for i, f := range faqs {
		blocks[i] = fmt.Sprintf("Q: %s\nA: %s", f.Question, f.Answer)
	}
	return strings.Join(blocks, "\n\n")
}

func formatTestimonials(testimonials []content.Testimonial) string {
	if len(testimonials) == 0 {
		return noTestimonialsText
	}
	if len(testimonials) > maxTestimonials {
		testimonials = testimonials[:maxTestimonials]
	}
	lines := make([]string, len(testimonials))
	for i, t := range testimonials {
		designation := t.Designation
		if designation == "" {
			designation = defaultDesignation
		}
		lines[i] = fmt.Sprintf("\"%s\" - %s, %s (%d/5 stars)", t.Message, t.Name, designation, t.Rating)
	}
	return strings.Join(lines, "\n")
}

func joinOrMissing(items []string) string {
	if len(items) == 0 {
		return missingListText
	}
	return strings.Join(items, ", ")
}

func firstLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}

func firstBlocks(s string, n int) string {
	blocks := strings.Split(s, "\n\n")
	if len(blocks) > n {
		blocks = blocks[:n]
	}
	return strings.Join(blocks, "\n\n")
}
