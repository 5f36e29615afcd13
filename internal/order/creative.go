package order

import (
	"fmt"

	"github.com/psxcreative/engine/internal/catalog"
	"github.com/psxcreative/engine/internal/pricing"
)

// CreativeSubmission is a completed Creative Factory brief.
type CreativeSubmission struct {
	Project    Project    `json:"project"`
	Contact    Contact    `json:"contact"`
	Selections Selections `json:"selections"`
}

// Selection projects the submission onto the pricing engine's input.
func (s CreativeSubmission) Selection() pricing.Selection {
	return pricing.Selection{
		Chain:    s.Project.Chain,
		Timeline: s.Project.Timeline,
		Budget:   s.Project.Budget,
		Channels: s.Selections.Channels,
		Content:  s.Selections.Content,
		Styles:   s.Selections.Styles,
	}
}

// Validate applies the brief's required-field rules. Ids unknown to c are
// rejected.
func (s CreativeSubmission) Validate(c *catalog.Catalog) error {
	p := problems{}

	p.require("project.name", s.Project.Name, "Project name is required")
	p.require("project.chain", s.Project.Chain, "Please select a chain")
	if s.Project.Timeline == "" {
		p.add("project.timeline", "Please select a timeline")
	} else if !s.Project.Timeline.Valid() {
		p.add("project.timeline", fmt.Sprintf("Unknown timeline %q", s.Project.Timeline))
	}
	p.require("project.vision", s.Project.Vision, "Project vision is required")

	if len(s.Selections.Channels) == 0 {
		p.add("selections.channels", "Please select at least one channel")
	}
	for _, id := range s.Selections.Channels {
		if _, ok := c.Channel(id); !ok {
			p.add("selections.channels", fmt.Sprintf("Unknown channel %q", id))
		}
	}

	if len(s.Selections.Content) == 0 {
		p.add("selections.content", "Please select at least one content type")
	}
	for _, id := range s.Selections.Content {
		if _, ok := c.Content(id); !ok {
			p.add("selections.content", fmt.Sprintf("Unknown content type %q", id))
		}
	}

	if len(s.Selections.Styles) == 0 {
		p.add("selections.styles", "Please select at least one style")
	}
	for _, id := range s.Selections.Styles {
		if _, ok := c.Style(id); !ok {
			p.add("selections.styles", fmt.Sprintf("Unknown style %q", id))
		}
	}

	p.require("contact.name", s.Contact.Name, "Contact name is required")
	if !ValidEmail(s.Contact.Email) {
		p.add("contact.email", "Valid email is required")
	}
	p.require("contact.telegram", s.Contact.Telegram, "Telegram username is required")

	return p.err()
}
