package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jcallahan/portfolio-site-backend/errs"
)

// Project represents a portfolio project with metadata
type Project struct {
	ID              uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title           string    `json:"title" db:"title" gorm:"type:text;not null"`
	Description     string    `json:"description" db:"description" gorm:"type:text;not null"`
	LongDescription string    `json:"longDescription" db:"long_description" gorm:"type:text;not null"`
	Technologies    TechList  `json:"technologies" db:"technologies" gorm:"type:text;not null"`
	ImageURL        *string   `json:"imageUrl" db:"image_url" gorm:"type:text"`
	DemoURL         *string   `json:"demoUrl" db:"demo_url" gorm:"type:text"`
	GithubURL       *string   `json:"githubUrl" db:"github_url" gorm:"type:text"`
	Category        string    `json:"category" db:"category" gorm:"type:text;not null"`
	Featured        bool      `json:"featured" db:"featured" gorm:"not null;default:false"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at" gorm:"not null;autoUpdateTime"`
}

// BeforeCreate assigns an ID when the caller didn't provide one.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TechList is the ordered technology tag list. It is persisted as a
// JSON-encoded text column but presented as a plain string slice on the wire
// and to all callers; the encoding never leaves this type.
type TechList []string

// Value implements driver.Valuer.
func (t TechList) Value() (driver.Value, error) {
	if t == nil {
		t = TechList{}
	}
	encoded, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(encoded), nil
}

// Scan implements sql.Scanner. A record whose column doesn't hold a valid
// JSON array is corrupted and surfaces as a read error.
func (t *TechList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = nil
		return nil
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("unsupported type %T for technologies column", value)
	}
}

// Categories is the fixed set of project categories accepted by the API.
var Categories = []string{
	"Frontend",
	"Backend",
	"Full Stack",
	"Mobile",
	"Desktop",
	"DevOps",
	"Design",
	"Other",
}

// ValidCategory reports whether category is one of the accepted set.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// ProjectInput is the candidate record for create and update requests:
// everything a caller may set, nothing the store owns (id, timestamps).
type ProjectInput struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	LongDescription string   `json:"longDescription"`
	Technologies    TechList `json:"technologies"`
	ImageURL        string   `json:"imageUrl"`
	DemoURL         string   `json:"demoUrl"`
	GithubURL       string   `json:"githubUrl"`
	Category        string   `json:"category"`
	Featured        bool     `json:"featured"`
}

// Validate checks the required fields and the category set. Category
// membership is enforced here even though the admin UI already restricts the
// dropdown.
func (in ProjectInput) Validate() error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return errs.NewMissingRequiredFieldError("title")
	case strings.TrimSpace(in.Description) == "":
		return errs.NewMissingRequiredFieldError("description")
	case strings.TrimSpace(in.LongDescription) == "":
		return errs.NewMissingRequiredFieldError("longDescription")
	case len(in.Technologies) == 0:
		return errs.NewMissingRequiredFieldError("technologies")
	case strings.TrimSpace(in.Category) == "":
		return errs.NewMissingRequiredFieldError("category")
	}

	if !ValidCategory(in.Category) {
		return errs.NewInvalidFieldError("category", fmt.Sprintf("must be one of %v", Categories))
	}

	return nil
}

// Project builds the entity for persistence. Empty optional URL fields are
// stored as NULL, not as empty strings.
func (in ProjectInput) Project() Project {
	return Project{
		Title:           in.Title,
		Description:     in.Description,
		LongDescription: in.LongDescription,
		Technologies:    in.Technologies,
		ImageURL:        nullable(in.ImageURL),
		DemoURL:         nullable(in.DemoURL),
		GithubURL:       nullable(in.GithubURL),
		Category:        in.Category,
		Featured:        in.Featured,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
