// Package admin holds the editable state behind the project create/edit
// form: the local field copy, the scratch technology input, and the tag
// list editing rules. Rendering is out of scope; this is the state the
// views drive.
package admin

import (
	"context"
	"strings"

	"github.com/jcallahan/portfolio-site-backend/client"
	"github.com/jcallahan/portfolio-site-backend/models"
)

// ProjectForm is the local editable copy of a project's fields plus the
// scratch field for composing one new technology tag at a time.
type ProjectForm struct {
	ProjectID string // empty for a new project
	Input     models.ProjectInput

	// TechInput is the one-tag-at-a-time scratch field.
	TechInput string

	// Submitting guards against overlapping submissions; the view disables
	// its submit control while this is set.
	Submitting bool
}

// NewProjectForm returns an empty form for creating a project.
func NewProjectForm() *ProjectForm {
	return &ProjectForm{}
}

// EditProjectForm returns a form pre-filled from an existing project.
func EditProjectForm(p models.Project) *ProjectForm {
	return &ProjectForm{
		ProjectID: p.ID.String(),
		Input: models.ProjectInput{
			Title:           p.Title,
			Description:     p.Description,
			LongDescription: p.LongDescription,
			Technologies:    append(models.TechList{}, p.Technologies...),
			ImageURL:        deref(p.ImageURL),
			DemoURL:         deref(p.DemoURL),
			GithubURL:       deref(p.GithubURL),
			Category:        p.Category,
			Featured:        p.Featured,
		},
	}
}

// AddTechnology appends the scratch tag to the list if it is non-empty and
// not already present (case-sensitive exact match), then clears the scratch
// field.
func (f *ProjectForm) AddTechnology() {
	tag := strings.TrimSpace(f.TechInput)
	if tag == "" {
		return
	}
	for _, existing := range f.Input.Technologies {
		if existing == tag {
			f.TechInput = ""
			return
		}
	}
	f.Input.Technologies = append(f.Input.Technologies, tag)
	f.TechInput = ""
}

// RemoveTechnology removes a tag by exact match.
func (f *ProjectForm) RemoveTechnology(tag string) {
	filtered := f.Input.Technologies[:0]
	for _, existing := range f.Input.Technologies {
		if existing != tag {
			filtered = append(filtered, existing)
		}
	}
	f.Input.Technologies = filtered
}

// Validate runs the same required-field checks the API performs, for fast
// feedback before a round trip.
func (f *ProjectForm) Validate() error {
	return f.Input.Validate()
}

// Submit validates and then creates or updates through the client,
// depending on whether the form edits an existing project. At most one
// submission runs at a time.
func (f *ProjectForm) Submit(ctx context.Context, c *client.Client) (*models.Project, error) {
	if f.Submitting {
		return nil, nil
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	f.Submitting = true
	defer func() { f.Submitting = false }()

	if f.ProjectID == "" {
		return c.CreateProject(ctx, f.Input)
	}
	return c.UpdateProject(ctx, f.ProjectID, f.Input)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
