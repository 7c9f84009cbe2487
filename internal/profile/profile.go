// Package profile holds the personal content shown on the home page: the
// about text, projects, work history and education.
package profile

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed profile.yaml
var defaultProfile []byte

type Project struct {
	Slug    string   `yaml:"slug" json:"slug"`
	Name    string   `yaml:"name" json:"name"`
	Summary string   `yaml:"summary" json:"summary"`
	Tech    []string `yaml:"tech,omitempty" json:"tech,omitempty"`
	URL     string   `yaml:"url,omitempty" json:"url,omitempty"`
	Order   int      `yaml:"order" json:"order"`
}

// Entry is one block of the work or education timeline.
type Entry struct {
	Title        string   `yaml:"title" json:"title"`
	Organization string   `yaml:"organization" json:"organization"`
	Start        string   `yaml:"start" json:"start"`
	End          string   `yaml:"end" json:"end"`
	Logo         string   `yaml:"logo,omitempty" json:"logo,omitempty"`
	Bullets      []string `yaml:"bullets,omitempty" json:"bullets,omitempty"`
}

type SocialLink struct {
	Label string `yaml:"label" json:"label"`
	URL   string `yaml:"url" json:"url"`
}

type Profile struct {
	Name      string       `yaml:"name" json:"name"`
	Headline  string       `yaml:"headline" json:"headline"`
	Email     string       `yaml:"email" json:"email"`
	Location  string       `yaml:"location" json:"location"`
	About     string       `yaml:"about" json:"about"`
	Items     []Project    `yaml:"projects" json:"projects"`
	Work      []Entry      `yaml:"work" json:"work"`
	Education []Entry      `yaml:"education" json:"education"`
	Links     []SocialLink `yaml:"links,omitempty" json:"links,omitempty"`
}

func Load(r io.Reader) (*Profile, error) {
	var p Profile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("profile name cannot be empty")
	}
	p.About = strings.TrimSpace(p.About)
	return &p, nil
}

// Default returns the profile embedded in the binary.
func Default() (*Profile, error) {
	return Load(bytes.NewReader(defaultProfile))
}

// Projects returns the projects in display order. Ties keep file order.
func (p *Profile) Projects() []Project {
	out := append([]Project(nil), p.Items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// FirstName is used in page copy ("Why work with Zach").
func (p *Profile) FirstName() string {
	if f := strings.Fields(p.Name); len(f) > 0 {
		return f[0]
	}
	return ""
}
