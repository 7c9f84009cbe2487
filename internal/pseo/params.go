package pseo

import (
	"fmt"
	"strings"
)

// Kind names the catalog join a landing page is built from.
type Kind string

const (
	KindSkill                 Kind = "skill"
	KindSkillLocation         Kind = "skill-location"
	KindSkillIndustry         Kind = "skill-industry"
	KindSkillLocationIndustry Kind = "skill-location-industry"
	KindRoleLocation          Kind = "role-location"
	KindUseCase               Kind = "use-case"
)

// Kinds lists every kind in enumeration order.
var Kinds = []Kind{
	KindSkill,
	KindSkillLocation,
	KindSkillIndustry,
	KindSkillLocationIndustry,
	KindRoleLocation,
	KindUseCase,
}

// Params identifies one landing page by kind and catalog slugs. Slugs that
// the kind does not use must be empty.
type Params struct {
	Kind     Kind   `json:"kind"`
	Skill    string `json:"skill,omitempty"`
	Location string `json:"location,omitempty"`
	Industry string `json:"industry,omitempty"`
	Role     string `json:"role,omitempty"`
	UseCase  string `json:"use_case,omitempty"`
}

// Validate checks that exactly the slugs the kind needs are present.
func (p Params) Validate() error {
	need := func(name, v string) error {
		if v == "" {
			return fmt.Errorf("%w: %s page needs a %s", ErrInvalidCombination, p.Kind, name)
		}
		return nil
	}
	deny := func(name, v string) error {
		if v != "" {
			return fmt.Errorf("%w: %s page does not take a %s", ErrInvalidCombination, p.Kind, name)
		}
		return nil
	}

	var checks []error
	switch p.Kind {
	case KindSkill:
		checks = []error{need("skill", p.Skill), deny("location", p.Location), deny("industry", p.Industry), deny("role", p.Role), deny("use case", p.UseCase)}
	case KindSkillLocation:
		checks = []error{need("skill", p.Skill), need("location", p.Location), deny("industry", p.Industry), deny("role", p.Role), deny("use case", p.UseCase)}
	case KindSkillIndustry:
		checks = []error{need("skill", p.Skill), need("industry", p.Industry), deny("location", p.Location), deny("role", p.Role), deny("use case", p.UseCase)}
	case KindSkillLocationIndustry:
		checks = []error{need("skill", p.Skill), need("location", p.Location), need("industry", p.Industry), deny("role", p.Role), deny("use case", p.UseCase)}
	case KindRoleLocation:
		checks = []error{need("role", p.Role), need("location", p.Location), deny("skill", p.Skill), deny("industry", p.Industry), deny("use case", p.UseCase)}
	case KindUseCase:
		checks = []error{need("use case", p.UseCase), deny("skill", p.Skill), deny("location", p.Location), deny("industry", p.Industry), deny("role", p.Role)}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidCombination, p.Kind)
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

// Path returns the site-relative route for the page.
func (p Params) Path() string {
	switch p.Kind {
	case KindSkill:
		return "/hire/" + p.Skill
	case KindSkillLocation:
		return "/hire/" + p.Skill + "/in/" + p.Location
	case KindSkillIndustry:
		return "/hire/" + p.Skill + "/for/" + p.Industry
	case KindSkillLocationIndustry:
		return "/hire/" + p.Skill + "/in/" + p.Location + "/for/" + p.Industry
	case KindRoleLocation:
		return "/roles/" + p.Role + "/in/" + p.Location
	case KindUseCase:
		return "/solutions/" + p.UseCase
	}
	return ""
}

// ParsePath is the inverse of Path. It checks route shape only; slugs are
// resolved against the catalog by Generate.
func ParsePath(path string) (Params, error) {
	trimmed := strings.Trim(path, "/")
	seg := strings.Split(trimmed, "/")
	bad := fmt.Errorf("%w: unrecognised path %q", ErrInvalidCombination, path)
	if trimmed == "" {
		return Params{}, bad
	}
	for _, s := range seg {
		if s == "" {
			return Params{}, bad
		}
	}

	switch seg[0] {
	case "hire":
		switch {
		case len(seg) == 2:
			return Params{Kind: KindSkill, Skill: seg[1]}, nil
		case len(seg) == 4 && seg[2] == "in":
			return Params{Kind: KindSkillLocation, Skill: seg[1], Location: seg[3]}, nil
		case len(seg) == 4 && seg[2] == "for":
			return Params{Kind: KindSkillIndustry, Skill: seg[1], Industry: seg[3]}, nil
		case len(seg) == 6 && seg[2] == "in" && seg[4] == "for":
			return Params{Kind: KindSkillLocationIndustry, Skill: seg[1], Location: seg[3], Industry: seg[5]}, nil
		}
	case "roles":
		if len(seg) == 4 && seg[2] == "in" {
			return Params{Kind: KindRoleLocation, Role: seg[1], Location: seg[3]}, nil
		}
	case "solutions":
		if len(seg) == 2 {
			return Params{Kind: KindUseCase, UseCase: seg[1]}, nil
		}
	}
	return Params{}, bad
}
