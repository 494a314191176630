package domain

import "context"

// Portfolio is the static content of the page, loaded from YAML.
type Portfolio struct {
	Site       SiteMeta     `yaml:"site" json:"site"`
	Hero       Hero         `yaml:"hero" json:"hero"`
	About      About        `yaml:"about" json:"about"`
	Skills     SkillSet     `yaml:"skills" json:"skills"`
	Projects   []Project    `yaml:"projects" json:"projects" validate:"dive"`
	Experience []Experience `yaml:"experience" json:"experience" validate:"dive"`
	Contact    ContactInfo  `yaml:"contact" json:"contact"`
	Footer     Footer       `yaml:"footer" json:"footer"`
}

type SiteMeta struct {
	Title       string `yaml:"title" json:"title" validate:"required"`
	Description string `yaml:"description" json:"description"`
	Owner       string `yaml:"owner" json:"owner" validate:"required"`
}

type Link struct {
	Label string `yaml:"label" json:"label" validate:"required"`
	URL   string `yaml:"url" json:"url" validate:"required"`
}

type Hero struct {
	Greeting string   `yaml:"greeting" json:"greeting"`
	Name     string   `yaml:"name" json:"name" validate:"required"`
	Roles    []string `yaml:"roles" json:"roles"`
	Tagline  string   `yaml:"tagline" json:"tagline"`
	Actions  []Link   `yaml:"actions" json:"actions" validate:"dive"`
}

type About struct {
	Heading    string      `yaml:"heading" json:"heading"`
	Paragraphs []string    `yaml:"paragraphs" json:"paragraphs"`
	Highlights []Highlight `yaml:"highlights" json:"highlights" validate:"dive"`
}

type Highlight struct {
	Title       string `yaml:"title" json:"title" validate:"required"`
	Description string `yaml:"description" json:"description"`
}

type SkillSet struct {
	Categories []SkillCategory `yaml:"categories" json:"categories" validate:"dive"`
	Expertise  []Highlight     `yaml:"expertise" json:"expertise" validate:"dive"`
}

type SkillCategory struct {
	Title  string  `yaml:"title" json:"title" validate:"required"`
	Skills []Skill `yaml:"skills" json:"skills" validate:"dive"`
}

type Skill struct {
	Name  string `yaml:"name" json:"name" validate:"required"`
	Level int    `yaml:"level" json:"level" validate:"min=0,max=100"`
}

type Project struct {
	Title       string   `yaml:"title" json:"title" validate:"required"`
	Description string   `yaml:"description" json:"description"`
	Tech        []string `yaml:"tech" json:"tech"`
	RepoURL     string   `yaml:"repo_url" json:"repo_url,omitempty"`
	DemoURL     string   `yaml:"demo_url" json:"demo_url,omitempty"`
	Featured    bool     `yaml:"featured" json:"featured"`
}

type Experience struct {
	Role    string   `yaml:"role" json:"role" validate:"required"`
	Company string   `yaml:"company" json:"company" validate:"required"`
	Period  string   `yaml:"period" json:"period"`
	Points  []string `yaml:"points" json:"points"`
}

type ContactInfo struct {
	Intro    string `yaml:"intro" json:"intro"`
	Email    string `yaml:"email" json:"email"`
	Phone    string `yaml:"phone" json:"phone"`
	Location string `yaml:"location" json:"location"`
	Social   []Link `yaml:"social" json:"social" validate:"dive"`
	Stats    []Stat `yaml:"stats" json:"stats" validate:"dive"`
}

type Stat struct {
	Label string `yaml:"label" json:"label" validate:"required"`
	Value string `yaml:"value" json:"value" validate:"required"`
}

type Footer struct {
	Note string `yaml:"note" json:"note"`
}

// ContentRepository provides the current portfolio content.
type ContentRepository interface {
	Current(ctx context.Context) (*Portfolio, error)
}
