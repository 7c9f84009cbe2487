package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// Validate checks slugs, names, priorities and every cross-reference between
// the tables. It never mutates the catalog.
func (c *Catalog) Validate() Validation {
	var res Validation

	checkSlugs := func(table string, slugs []string) {
		seen := map[string]bool{}
		for i, s := range slugs {
			switch {
			case s == "":
				res.addErr("%s[%d]: slug is empty", table, i)
			case !slugRe.MatchString(s):
				res.addErr("%s[%d]: slug %q is not lowercase-hyphenated", table, i, s)
			case seen[s]:
				res.addErr("%s: duplicate slug %q", table, s)
			}
			seen[s] = true
		}
	}
	checkPriority := func(table, slug string, p int) {
		if p < 1 || p > 3 {
			res.addErr("%s %q: priority %d outside 1..3", table, slug, p)
		}
	}
	checkRefs := func(table, slug, field string, refs []string, resolve func(string) bool) {
		for _, r := range refs {
			if !resolve(r) {
				res.addErr("%s %q: %s references unknown slug %q", table, slug, field, r)
			}
		}
	}
	hasSkill := func(s string) bool { _, ok := c.Skill(s); return ok }
	hasUseCase := func(s string) bool { _, ok := c.UseCase(s); return ok }

	slugs := make([]string, len(c.Skills))
	for i, s := range c.Skills {
		slugs[i] = s.Slug
	}
	checkSlugs("skills", slugs)
	for _, s := range c.Skills {
		if strings.TrimSpace(s.Name) == "" {
			res.addErr("skill %q: name is empty", s.Slug)
		}
		if strings.TrimSpace(s.Description) == "" {
			res.addWarn("skill %q: description is empty; pages will be thinner", s.Slug)
		}
		checkPriority("skill", s.Slug, s.Priority)
		checkRefs("skill", s.Slug, "use_cases", s.UseCases, hasUseCase)
		checkRefs("skill", s.Slug, "related", s.Related, hasSkill)
	}

	slugs = make([]string, len(c.Locations))
	for i, l := range c.Locations {
		slugs[i] = l.Slug
	}
	checkSlugs("locations", slugs)
	for _, l := range c.Locations {
		if strings.TrimSpace(l.City) == "" {
			res.addErr("location %q: city is empty", l.Slug)
		}
		if !l.Remote && l.Lat == 0 && l.Lng == 0 {
			res.addWarn("location %q: no coordinates", l.Slug)
		}
		checkPriority("location", l.Slug, l.Priority)
	}

	slugs = make([]string, len(c.Industries))
	for i, ind := range c.Industries {
		slugs[i] = ind.Slug
	}
	checkSlugs("industries", slugs)
	for _, ind := range c.Industries {
		if strings.TrimSpace(ind.Name) == "" {
			res.addErr("industry %q: name is empty", ind.Slug)
		}
		if strings.TrimSpace(ind.Description) == "" {
			res.addWarn("industry %q: description is empty; pages will be thinner", ind.Slug)
		}
		checkPriority("industry", ind.Slug, ind.Priority)
		checkRefs("industry", ind.Slug, "focus_skills", ind.FocusSkills, hasSkill)
	}

	slugs = make([]string, len(c.Roles))
	for i, r := range c.Roles {
		slugs[i] = r.Slug
	}
	checkSlugs("roles", slugs)
	for _, r := range c.Roles {
		if strings.TrimSpace(r.Title) == "" {
			res.addErr("role %q: title is empty", r.Slug)
		}
		checkPriority("role", r.Slug, r.Priority)
		checkRefs("role", r.Slug, "skills", r.Skills, hasSkill)
	}

	slugs = make([]string, len(c.UseCases))
	for i, u := range c.UseCases {
		slugs[i] = u.Slug
	}
	checkSlugs("use_cases", slugs)
	for _, u := range c.UseCases {
		if strings.TrimSpace(u.Name) == "" {
			res.addErr("use case %q: name is empty", u.Slug)
		}
		if strings.TrimSpace(u.Description) == "" {
			res.addWarn("use case %q: description is empty; pages will be thinner", u.Slug)
		}
		checkRefs("use case", u.Slug, "skills", u.Skills, hasSkill)
	}

	return res
}
