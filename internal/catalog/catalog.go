// Package catalog holds the hand-authored lookup tables that the landing-page
// generator joins: skills, locations, industries, roles and use-cases.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type Skill struct {
	Slug        string   `yaml:"slug" json:"slug"`
	Name        string   `yaml:"name" json:"name"`
	Category    string   `yaml:"category" json:"category"`
	Aliases     []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	Description string   `yaml:"description" json:"description"`
	Years       int      `yaml:"years" json:"years"`
	UseCases    []string `yaml:"use_cases,omitempty" json:"use_cases,omitempty"`
	Related     []string `yaml:"related,omitempty" json:"related,omitempty"`
	Priority    int      `yaml:"priority" json:"priority"`
}

type Location struct {
	Slug        string  `yaml:"slug" json:"slug"`
	City        string  `yaml:"city" json:"city"`
	Region      string  `yaml:"region" json:"region"`
	Country     string  `yaml:"country" json:"country"`
	CountryCode string  `yaml:"country_code" json:"country_code"`
	Timezone    string  `yaml:"timezone" json:"timezone"`
	Lat         float64 `yaml:"lat" json:"lat"`
	Lng         float64 `yaml:"lng" json:"lng"`
	TechScene   string  `yaml:"tech_scene" json:"tech_scene"`
	Remote      bool    `yaml:"remote,omitempty" json:"remote,omitempty"`
	Priority    int     `yaml:"priority" json:"priority"`
}

// Name is the display name used in page copy. Remote pseudo-locations have
// no region, so the city alone is returned.
func (l Location) Name() string {
	if l.Remote || l.Region == "" {
		return l.City
	}
	return l.City + ", " + l.Region
}

type Industry struct {
	Slug        string   `yaml:"slug" json:"slug"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Challenges  []string `yaml:"challenges,omitempty" json:"challenges,omitempty"`
	Compliance  []string `yaml:"compliance,omitempty" json:"compliance,omitempty"`
	FocusSkills []string `yaml:"focus_skills,omitempty" json:"focus_skills,omitempty"`
	Priority    int      `yaml:"priority" json:"priority"`
}

// Accepts reports whether a skill is relevant to the industry. An empty
// FocusSkills list accepts every skill.
func (i Industry) Accepts(skill string) bool {
	if len(i.FocusSkills) == 0 {
		return true
	}
	for _, s := range i.FocusSkills {
		if s == skill {
			return true
		}
	}
	return false
}

type Role struct {
	Slug             string   `yaml:"slug" json:"slug"`
	Title            string   `yaml:"title" json:"title"`
	Seniority        string   `yaml:"seniority" json:"seniority"`
	Responsibilities []string `yaml:"responsibilities,omitempty" json:"responsibilities,omitempty"`
	Skills           []string `yaml:"skills,omitempty" json:"skills,omitempty"`
	Priority         int      `yaml:"priority" json:"priority"`
}

type UseCase struct {
	Slug         string   `yaml:"slug" json:"slug"`
	Name         string   `yaml:"name" json:"name"`
	Description  string   `yaml:"description" json:"description"`
	Skills       []string `yaml:"skills,omitempty" json:"skills,omitempty"`
	Deliverables []string `yaml:"deliverables,omitempty" json:"deliverables,omitempty"`
}

// Catalog is the joined set of lookup tables. Slices keep authoring order,
// which is also the order pages are enumerated in.
type Catalog struct {
	Skills     []Skill    `yaml:"skills"`
	Locations  []Location `yaml:"locations"`
	Industries []Industry `yaml:"industries"`
	Roles      []Role     `yaml:"roles"`
	UseCases   []UseCase  `yaml:"use_cases"`

	skills     map[string]int
	locations  map[string]int
	industries map[string]int
	roles      map[string]int
	useCases   map[string]int
}

// Load decodes a YAML catalog and builds the slug indexes. Unknown fields are
// rejected so typos in hand-edited files surface early.
func Load(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	c.reindex()
	return &c, nil
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// reindex maps slugs to slice positions. On duplicates the first entry wins;
// Validate reports the duplicate.
func (c *Catalog) reindex() {
	c.skills = make(map[string]int, len(c.Skills))
	for i, s := range c.Skills {
		if _, ok := c.skills[s.Slug]; !ok {
			c.skills[s.Slug] = i
		}
	}
	c.locations = make(map[string]int, len(c.Locations))
	for i, l := range c.Locations {
		if _, ok := c.locations[l.Slug]; !ok {
			c.locations[l.Slug] = i
		}
	}
	c.industries = make(map[string]int, len(c.Industries))
	for i, ind := range c.Industries {
		if _, ok := c.industries[ind.Slug]; !ok {
			c.industries[ind.Slug] = i
		}
	}
	c.roles = make(map[string]int, len(c.Roles))
	for i, r := range c.Roles {
		if _, ok := c.roles[r.Slug]; !ok {
			c.roles[r.Slug] = i
		}
	}
	c.useCases = make(map[string]int, len(c.UseCases))
	for i, u := range c.UseCases {
		if _, ok := c.useCases[u.Slug]; !ok {
			c.useCases[u.Slug] = i
		}
	}
}

func (c *Catalog) Skill(slug string) (Skill, bool) {
	i, ok := c.skills[slug]
	if !ok {
		return Skill{}, false
	}
	return c.Skills[i], true
}

func (c *Catalog) Location(slug string) (Location, bool) {
	i, ok := c.locations[slug]
	if !ok {
		return Location{}, false
	}
	return c.Locations[i], true
}

func (c *Catalog) Industry(slug string) (Industry, bool) {
	i, ok := c.industries[slug]
	if !ok {
		return Industry{}, false
	}
	return c.Industries[i], true
}

func (c *Catalog) Role(slug string) (Role, bool) {
	i, ok := c.roles[slug]
	if !ok {
		return Role{}, false
	}
	return c.Roles[i], true
}

func (c *Catalog) UseCase(slug string) (UseCase, bool) {
	i, ok := c.useCases[slug]
	if !ok {
		return UseCase{}, false
	}
	return c.UseCases[i], true
}

// SkillNames resolves slugs to display names, skipping unknown slugs.
func (c *Catalog) SkillNames(slugs []string) []string {
	out := make([]string, 0, len(slugs))
	for _, s := range slugs {
		if sk, ok := c.Skill(s); ok {
			out = append(out, sk.Name)
		}
	}
	return out
}
