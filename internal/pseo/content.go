package pseo

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"

	"github.com/Zachkp/portfolio/internal/catalog"
)

const (
	maxRelated     = 6
	titleBrandRoom = 60
)

// vars are the placeholders a template may use.
type vars map[string]string

func expand(tmpl string, v vars) string {
	args := make([]string, 0, len(v)*2)
	for k, val := range v {
		args = append(args, "{"+k+"}", val)
	}
	return strings.NewReplacer(args...).Replace(tmpl)
}

// pick chooses one template variant from the page path, so the choice is
// stable for a page and spread across its siblings.
func pick(path, field string, options ...string) string {
	h := xxhash.Sum64String(path + "|" + field)
	return options[h%uint64(len(options))]
}

// clip shortens s to at most n runes on a word boundary.
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)[:n-1]
	cut := strings.LastIndex(string(r), " ")
	if cut <= 0 {
		return string(r) + "…"
	}
	return strings.TrimRight(string(r)[:cut], " ,.;:") + "…"
}

func (g *Generator) withBrand(title string) string {
	if g.site.Brand == "" {
		return title
	}
	full := title + " | " + g.site.Brand
	if utf8.RuneCountInString(full) > titleBrandRoom {
		return title
	}
	return full
}

func (g *Generator) vars(s subject) vars {
	v := vars{
		"brand":  g.site.Brand,
		"author": g.site.Author,
	}
	if s.skill.Slug != "" {
		v["skill"] = s.skill.Name
		v["years"] = strconv.Itoa(s.skill.Years)
		v["category"] = s.skill.Category
		v["usecase1"] = "production software"
		if len(s.skill.UseCases) > 0 {
			if uc, ok := g.cat.UseCase(s.skill.UseCases[0]); ok {
				v["usecase1"] = uc.Name
			}
		}
	}
	if s.location.Slug != "" {
		v["city"] = s.location.City
		v["location"] = s.location.Name()
		v["region"] = s.location.Region
		v["country"] = s.location.Country
		v["timezone"] = s.location.Timezone
	}
	if s.industry.Slug != "" {
		v["industry"] = s.industry.Name
		v["challenge"] = "Shipping reliable software"
		if len(s.industry.Challenges) > 0 {
			v["challenge"] = s.industry.Challenges[0]
		}
		v["challenge_lc"] = lowerFirst(v["challenge"])
	}
	if s.role.Slug != "" {
		v["role"] = s.role.Title
		v["seniority"] = s.role.Seniority
	}
	if s.useCase.Slug != "" {
		v["usecase"] = s.useCase.Name
	}
	return v
}

// label is the short anchor text for a page, cheap enough for related links.
func (g *Generator) label(p Params) string {
	skill, _ := g.cat.Skill(p.Skill)
	loc, _ := g.cat.Location(p.Location)
	ind, _ := g.cat.Industry(p.Industry)
	switch p.Kind {
	case KindSkill:
		return skill.Name + " developer"
	case KindSkillLocation:
		if loc.Remote {
			return "Remote " + skill.Name + " developer"
		}
		return skill.Name + " developer in " + loc.City
	case KindSkillIndustry:
		return skill.Name + " for " + ind.Name
	case KindSkillLocationIndustry:
		if loc.Remote {
			return "Remote " + skill.Name + " for " + ind.Name
		}
		return skill.Name + " for " + ind.Name + " in " + loc.City
	case KindRoleLocation:
		role, _ := g.cat.Role(p.Role)
		if loc.Remote {
			return "Remote " + role.Title
		}
		return role.Title + " in " + loc.City
	case KindUseCase:
		uc, _ := g.cat.UseCase(p.UseCase)
		return uc.Name
	}
	return ""
}

func (g *Generator) link(p Params) Link {
	return Link{Title: g.label(p), Path: p.Path()}
}

// primaryLocations are the priority-1 places used for cross-links.
func (g *Generator) primaryLocations() []catalog.Location {
	var out []catalog.Location
	for _, l := range g.cat.Locations {
		if l.Priority == 1 {
			out = append(out, l)
		}
	}
	return out
}

func appendLink(links []Link, self string, l Link) []Link {
	if len(links) >= maxRelated || l.Path == self {
		return links
	}
	for _, x := range links {
		if x.Path == l.Path {
			return links
		}
	}
	return append(links, l)
}

func (g *Generator) hireCrumbs(s subject) []Link {
	crumbs := []Link{{Title: "Home", Path: "/"}, {Title: "Hire", Path: "/hire"}}
	crumbs = append(crumbs, g.link(Params{Kind: KindSkill, Skill: s.skill.Slug}))
	if s.location.Slug != "" {
		crumbs = append(crumbs, g.link(Params{Kind: KindSkillLocation, Skill: s.skill.Slug, Location: s.location.Slug}))
	}
	if s.industry.Slug != "" {
		crumbs = append(crumbs, Link{Title: g.label(s.params), Path: s.path})
	}
	return crumbs
}

// Shared sections.

func (g *Generator) processSection(s subject, v vars) Section {
	return Section{
		Heading: pick(s.path, "process.heading",
			"How an engagement works",
			"Working together, step by step",
			"From first call to launch"),
		Body: expand(pick(s.path, "process.body",
			"Every project follows the same lightweight process, so you always know what happens next and what it costs. Nothing starts until scope and budget are agreed in writing.",
			"The process is deliberately simple. It keeps momentum high, surprises low and puts working software in front of you early, instead of a slide deck at the end.",
			"You get a predictable rhythm from day one: short planning, frequent demos and honest status updates, with no hand-waving about progress or timelines."), v),
		Bullets: []string{
			expand("Discovery call: a free thirty-minute conversation about your goals, constraints and existing {stack} setup.", v),
			"Written proposal: scope, milestones, fixed or capped pricing, and the risks worth knowing about up front.",
			"Build in small increments: weekly demos, pull requests you can review, and a staging environment you can click through.",
			"Launch and handover: documentation, a recorded walkthrough and thirty days of support after go-live.",
		},
	}
}

func (g *Generator) aboutSection(s subject, v vars) Section {
	return Section{
		Heading: expand(pick(s.path, "about.heading",
			"Why work with {author}",
			"About {author}",
			"Who you would be working with"), v),
		Body: expand("{author} is an independent software developer who takes projects from rough idea to production. Clients get a single accountable engineer who writes the code, tests it, deploys it and explains the trade-offs in plain language. Work is done in your repositories, under your accounts, so you own everything from the first commit.", v),
		Bullets: []string{
			"Clear communication with written updates at least twice a week",
			"Automated tests and CI on every project, not as an optional extra",
			"Security basics built in: secrets management, least-privilege access, dependency updates",
		},
	}
}

func faqStart(v vars) FAQ {
	return FAQ{
		Question: "How quickly can you start?",
		Answer:   expand("Most {stack} projects can start within one to two weeks of the discovery call. Small fixes and audits can often begin the same week. If the calendar is full, you will get an honest date rather than an optimistic one.", v),
	}
}

func faqPricing(v vars) FAQ {
	return FAQ{
		Question: expand("How do you price {stack} work?", v),
		Answer:   "Well-defined projects get a fixed price per milestone, so you know the cost before any work begins. Ongoing or exploratory work is billed weekly with a capped number of hours. Either way, estimates are itemised and you only pay for milestones you accept.",
	}
}

func faqOwnership() FAQ {
	return FAQ{
		Question: "Who owns the code?",
		Answer:   "You do. All work happens in repositories and cloud accounts you control, and intellectual property transfers to you on payment. There are no proprietary frameworks or lock-in, so any competent engineer can pick the work up later.",
	}
}

// Kind builders.

func (g *Generator) skillPage(s subject) *Page {
	v := g.vars(s)
	v["stack"] = s.skill.Name
	sk := s.skill

	title := expand(pick(s.path, "title",
		"Hire a Freelance {skill} Developer",
		"{skill} Developer for Hire",
		"Freelance {skill} Developer: {years}+ Years in Production"), v)
	desc := expand(pick(s.path, "desc",
		"Hire a freelance {skill} developer with {years}+ years of {category} experience, focused on {usecase1}. Fixed-price milestones and weekly demos.",
		"{skill} developer for hire: {years}+ years building {usecase1} and more, with tested code, clean handovers and fixed-price milestones.",
		"Need a {skill} expert? {years}+ years of hands-on {category} work on {usecase1}, from architecture to deployment, billed per milestone."), v)

	intro := expand(pick(s.path, "intro",
		"Looking for an experienced {skill} developer who can own a project end to end? {author} has spent {years}+ years writing {skill} in production, with a focus on {usecase1}. You get senior-level judgement without the overhead of a hiring process.",
		"Good {skill} engineers are hard to hire and slow to onboard. As a freelance {skill} developer with {years}+ years of experience, {author} can join your project quickly, ship working software in small increments and leave your team with code it understands.",
		"Whether you need a new feature, a rescue of a struggling codebase or a second pair of eyes on architecture, an experienced {skill} freelancer gets you there faster. {author} has {years}+ years of {skill} work behind them, much of it on {usecase1}."), v)

	page := &Page{
		Title:           g.withBrand(title),
		MetaDescription: clip(desc, maxDescLen),
		H1:              expand(pick(s.path, "h1", "Freelance {skill} Developer", "Hire a {skill} Developer", "{skill} Development Services"), v),
		Intro:           intro,
		PrimaryKeyword:  "hire " + sk.Name + " developer",
	}

	whatI := Section{
		Heading: expand("What I build with {skill}", v),
		Body:    sk.Description + " " + expand("Typical {skill} engagements include:", v),
	}
	for _, slug := range sk.UseCases {
		if uc, ok := g.cat.UseCase(slug); ok {
			whatI.Bullets = append(whatI.Bullets, uc.Name+": "+uc.Description)
		}
	}

	page.Sections = []Section{whatI}
	if related := g.cat.SkillNames(sk.Related); len(related) > 0 {
		page.Sections = append(page.Sections, Section{
			Heading: "Complementary skills",
			Body:    expand("{skill} rarely works alone. Projects usually combine it with ", v) + joinList(related) + ", so the whole stack is covered by one developer instead of three contractors.",
		})
	}
	page.Sections = append(page.Sections, g.aboutSection(s, v), g.processSection(s, v))

	page.FAQs = []FAQ{
		{
			Question: expand("Why hire a freelance {skill} developer instead of an agency?", v),
			Answer:   expand("An agency adds account managers, handoffs and margin. A freelance {skill} developer is the person actually writing the code, so feedback loops are shorter, decisions are faster and you pay for engineering time rather than overhead.", v),
		},
		faqPricing(v),
		faqStart(v),
		faqOwnership(),
	}

	page.Keywords = keywords(page.PrimaryKeyword,
		sk.Name+" developer",
		"freelance "+sk.Name+" developer",
		sk.Name+" consultant",
	)
	for _, a := range sk.Aliases {
		page.Keywords = append(page.Keywords, a+" developer")
	}

	page.Breadcrumbs = g.hireCrumbs(s)
	for _, l := range g.primaryLocations() {
		page.Related = appendLink(page.Related, s.path, g.link(Params{Kind: KindSkillLocation, Skill: sk.Slug, Location: l.Slug}))
	}
	for _, r := range sk.Related {
		page.Related = appendLink(page.Related, s.path, g.link(Params{Kind: KindSkill, Skill: r}))
	}
	return page
}

func (g *Generator) locationSection(s subject, v vars) Section {
	loc := s.location
	if loc.Remote {
		return Section{
			Heading: "Remote by default",
			Body:    loc.TechScene + " " + expand("You get a dedicated {stack} developer without relocation, office space or a long notice period.", v),
			Bullets: []string{
				"Written daily or twice-weekly updates you can read on your own schedule",
				"Overlap windows with North American and European working hours",
				"Recorded demos so stakeholders in any time zone stay in the loop",
			},
		}
	}
	return Section{
		Heading: expand(pick(s.path, "loc.heading",
			"Working with teams in {city}",
			"{stack} for {city} companies",
			"Local context for {city}"), v),
		Body: loc.TechScene + " " + expand("Meetings are scheduled inside {timezone} business hours, and on-site workshops in {location} can be arranged for kickoffs or critical launches.", v),
		Bullets: []string{
			expand("Availability aligned with {timezone}", v),
			expand("Experience with {country} data protection and contracting norms", v),
			"Invoices and contracts in your currency and legal entity",
		},
	}
}

func (g *Generator) skillLocationPage(s subject) *Page {
	v := g.vars(s)
	v["stack"] = s.skill.Name
	sk, loc := s.skill, s.location

	var title, desc, intro, h1 string
	if loc.Remote {
		title = expand(pick(s.path, "title",
			"Hire a Remote {skill} Developer",
			"Remote {skill} Developer for Hire",
			"Remote Freelance {skill} Engineer"), v)
		desc = expand(pick(s.path, "desc",
			"Remote {skill} developer with {years}+ years of {category} experience. Async-first work on {usecase1} with overlap across US and European hours.",
			"Hire a remote {skill} engineer: {usecase1}, code reviews and production support delivered async, with weekly demos and fixed milestones."), v)
		intro = expand("Hiring a remote {skill} developer removes geography from the equation. {author} works with teams around the world, bringing {years}+ years of {skill} experience and a communication style built for distributed work.", v)
		h1 = expand("Remote {skill} Developer", v)
	} else {
		title = expand(pick(s.path, "title",
			"Hire a {skill} Developer in {city}",
			"{skill} Developer in {city} for Hire",
			"Freelance {skill} Developer Serving {city}"), v)
		desc = expand(pick(s.path, "desc",
			"Hire a freelance {skill} developer in {location}, {country}. {years}+ years of {category} work on {usecase1} for teams on {timezone}.",
			"{skill} developer for {city}, {region} teams: {usecase1}, code reviews and production support on {timezone}. {years}+ years of experience.",
			"Looking for a {skill} expert in {city}, {region}? Freelance {category} engineering focused on {usecase1}, aligned with {timezone} and {country} norms."), v)
		intro = expand(pick(s.path, "intro",
			"Companies in {location} compete hard for experienced {skill} engineers. Instead of a months-long search, you can bring in a freelance {skill} developer with {years}+ years of production experience who works on {timezone} and can start within weeks.",
			"If your team in {city} needs {skill} expertise for {usecase1} or a backlog that keeps growing, {author} can help. You get a senior {skill} developer who understands the {country} market and delivers in small, reviewable increments."), v)
		h1 = expand(pick(s.path, "h1", "{skill} Developer in {city}", "Hire a {skill} Developer in {city}"), v)
	}

	page := &Page{
		Title:           g.withBrand(title),
		MetaDescription: clip(desc, maxDescLen),
		H1:              h1,
		Intro:           intro,
	}
	if loc.Remote {
		page.PrimaryKeyword = "remote " + sk.Name + " developer"
	} else {
		page.PrimaryKeyword = sk.Name + " developer " + loc.City
	}

	services := Section{
		Heading: expand("{skill} services", v),
		Body:    sk.Description,
	}
	for _, slug := range sk.UseCases {
		if uc, ok := g.cat.UseCase(slug); ok {
			services.Bullets = append(services.Bullets, uc.Name+": "+uc.Description)
		}
	}
	page.Sections = []Section{services, g.locationSection(s, v), g.aboutSection(s, v), g.processSection(s, v)}

	tzAnswer := expand("Yes. Working hours overlap with {timezone} every weekday, and urgent production issues get a same-day response. Planning calls are booked at times that suit your team, not the other way round.", v)
	if loc.Remote {
		tzAnswer = "Yes. A few hours of overlap with North American and European working days is guaranteed, and everything else runs asynchronously through written updates, pull requests and recorded demos."
	}
	page.FAQs = []FAQ{
		{Question: expand(pick(s.path, "faq.tz", "Can you work in our time zone?", "Will our working hours overlap?"), v), Answer: tzAnswer},
		faqPricing(v),
		faqStart(v),
		faqOwnership(),
	}

	if loc.Remote {
		page.Keywords = keywords(page.PrimaryKeyword, "remote "+sk.Name+" engineer", "freelance remote "+sk.Name+" developer")
	} else {
		page.Keywords = keywords(page.PrimaryKeyword,
			"hire "+sk.Name+" developer "+loc.City,
			sk.Name+" consultant "+loc.City,
			"freelance "+sk.Name+" developer "+loc.City,
		)
	}

	page.Breadcrumbs = g.hireCrumbs(s)
	for _, l := range g.primaryLocations() {
		page.Related = appendLink(page.Related, s.path, g.link(Params{Kind: KindSkillLocation, Skill: sk.Slug, Location: l.Slug}))
	}
	for _, r := range sk.Related {
		page.Related = appendLink(page.Related, s.path, g.link(Params{Kind: KindSkillLocation, Skill: r, Location: loc.Slug}))
	}
	return page
}

func (g *Generator) industrySection(s subject, v vars) Section {
	ind := s.industry
	sec := Section{
		Heading: expand(pick(s.path, "ind.heading",
			"{industry} experience that matters",
			"Built for {industry} constraints",
			"What {industry} projects need"), v),
		Body:    ind.Description + " " + expand("These are the problems {stack} projects in {industry} most often have to solve:", v),
		Bullets: append([]string(nil), ind.Challenges...),
	}
	if len(ind.Compliance) > 0 {
		sec.Body += " Work is designed with " + joinList(ind.Compliance) + " requirements in mind from the start, not bolted on before an audit."
	}
	return sec
}

func (g *Generator) skillIndustryPage(s subject) *Page {
	v := g.vars(s)
	v["stack"] = s.skill.Name
	sk, ind := s.skill, s.industry

	title := expand(pick(s.path, "title",
		"Hire a {skill} Developer for {industry}",
		"{industry} {skill} Development",
		"{skill} Developer for {industry} Companies"), v)
	desc := expand(pick(s.path, "desc",
		"{skill} development for {industry}: {challenge_lc}, backed by {years}+ years of {category} experience and fixed-price milestones.",
		"Freelance {skill} developer for {industry} teams, from {usecase1} to {challenge_lc}. {years}+ years of {category} work."), v)

	page := &Page{
		Title:           g.withBrand(title),
		MetaDescription: clip(desc, maxDescLen),
		H1:              expand(pick(s.path, "h1", "{skill} Development for {industry}", "{industry} {skill} Developer"), v),
		Intro: expand(pick(s.path, "intro",
			"{industry} products have little room for error. A freelance {skill} developer with {years}+ years of experience can help your team ship faster without cutting the corners that {industry} customers and regulators notice.",
			"Building {industry} software in {skill} means balancing speed with the reliability your users expect. {author} brings {years}+ years of {skill} experience and a habit of designing for audits, edge cases and scale from day one."), v),
		PrimaryKeyword: sk.Name + " developer " + ind.Name,
	}

	tech := Section{
		Heading: expand("How {skill} fits {industry}", v),
		Body:    sk.Description,
	}
	for _, slug := range sk.UseCases {
		if uc, ok := g.cat.UseCase(slug); ok {
			tech.Bullets = append(tech.Bullets, uc.Name+" for "+ind.Name+" teams")
		}
	}
	page.Sections = []Section{g.industrySection(s, v), tech, g.aboutSection(s, v), g.processSection(s, v)}

	complianceAnswer := expand("Every {industry} project starts with a short review of the data you handle and the obligations attached to it. Access control, audit logging and encryption are part of the first milestone rather than a later phase.", v)
	if len(ind.Compliance) > 0 {
		complianceAnswer += " Past work has been shaped around " + joinList(ind.Compliance) + "."
	}
	page.FAQs = []FAQ{
		{Question: expand("Do you have {industry} experience?", v), Answer: complianceAnswer},
		faqPricing(v),
		faqStart(v),
		faqOwnership(),
	}

	page.Keywords = keywords(page.PrimaryKeyword,
		ind.Name+" "+sk.Name+" development",
		sk.Name+" consultant for "+ind.Name,
	)

	page.Breadcrumbs = g.hireCrumbs(s)
	for _, other := range g.cat.Industries {
		if other.Accepts(sk.Slug) {
			page.Related = appendLink(page.Related, s.path, g.link(Params{Kind: KindSkillIndustry, Skill: sk.Slug, Industry: other.Slug}))
		}
	}
	return page
}

func (g *Generator) triplePage(s subject) *Page {
	v := g.vars(s)
	v["stack"] = s.skill.Name
	sk, loc, ind := s.skill, s.location, s.industry

	var title, desc, h1 string
	if loc.Remote {
		title = expand(pick(s.path, "title",
			"Remote {industry} {skill} Developer",
			"{industry} Teams: Remote {skill} Engineering"), v)
		desc = expand("Remote {skill} engineering for {industry} teams: {challenge_lc}. {years}+ years of {category} work, delivered async-first.", v)
		h1 = expand("Remote {skill} Developer for {industry}", v)
	} else {
		title = expand(pick(s.path, "title",
			"{industry} {skill} Developer in {city}",
			"{skill} Development for {industry} Teams in {city}",
			"{city} {industry} Companies: Hire a {skill} Expert"), v)
		desc = expand(pick(s.path, "desc",
			"{industry} {skill} developer in {location}: {challenge_lc}. {years}+ years of {category} work on {timezone}.",
			"{city}, {region} {industry} teams hire this {skill} freelancer for {challenge_lc}. {years}+ years of {category} work."), v)
		h1 = expand(pick(s.path, "h1", "{skill} Developer for {industry} in {city}", "{industry} {skill} Development in {city}"), v)
	}

	where := "in " + loc.Name()
	if loc.Remote {
		where = "anywhere in the world"
	}
	v["where"] = where

	page := &Page{
		Title:           g.withBrand(title),
		MetaDescription: clip(desc, maxDescLen),
		H1:              h1,
		Intro:           expand("{industry} companies {where} need {skill} engineers who understand both the technology and the stakes. {author} combines {years}+ years of {skill} experience with a practical grasp of what {industry} products demand, from data handling to uptime.", v),
	}
	if loc.Remote {
		page.PrimaryKeyword = "remote " + ind.Name + " " + sk.Name + " developer"
	} else {
		page.PrimaryKeyword = ind.Name + " " + sk.Name + " developer " + loc.City
	}

	page.Sections = []Section{
		g.industrySection(s, v),
		g.locationSection(s, v),
		{
			Heading: expand("{skill} at the core", v),
			Body:    sk.Description + expand(" For {industry} teams {where}, that usually means starting with {usecase1}.", v),
		},
		g.processSection(s, v),
	}

	page.FAQs = []FAQ{
		{
			Question: expand("Have you worked with {industry} companies before?", v),
			Answer:   expand("Yes. {industry} work shapes how projects are planned: data flows are mapped early, access is scoped tightly and every release has a rollback plan. The first milestone always includes a short risk review.", v),
		},
		faqPricing(v),
		faqStart(v),
		faqOwnership(),
	}

	page.Keywords = keywords(page.PrimaryKeyword,
		sk.Name+" developer "+ind.Name+" "+loc.City,
		ind.Name+" software developer "+loc.City,
	)

	page.Breadcrumbs = g.hireCrumbs(s)
	page.Related = appendLink(page.Related, s.path, g.link(Params{Kind: KindSkillIndustry, Skill: sk.Slug, Industry: ind.Slug}))
	page.Related = appendLink(page.Related, s.path, g.link(Params{Kind: KindSkillLocation, Skill: sk.Slug, Location: loc.Slug}))
	for _, other := range g.cat.Industries {
		if g.tripleAllowed(sk, loc, other) {
			page.Related = appendLink(page.Related, s.path, g.link(Params{Kind: KindSkillLocationIndustry, Skill: sk.Slug, Location: loc.Slug, Industry: other.Slug}))
		}
	}
	return page
}

func (g *Generator) roleLocationPage(s subject) *Page {
	v := g.vars(s)
	role, loc := s.role, s.location
	skills := g.cat.SkillNames(role.Skills)
	v["stack"] = "engineering"
	if len(skills) > 0 {
		v["stack"] = skills[0]
	}
	v["skills"] = joinList(skills)

	var title, desc, h1 string
	if loc.Remote {
		title = expand(pick(s.path, "title", "Hire a Remote {seniority} {role}", "Remote {role} on Contract"), v)
		desc = expand("Contract {seniority} {role}, fully remote: {skills}. Async-first delivery with overlap across US and European working hours.", v)
		h1 = expand("Remote {role} for Hire", v)
	} else {
		title = expand(pick(s.path, "title",
			"Hire a {seniority} {role} in {city}",
			"Contract {role} in {city}",
			"{city} {role} for Hire"), v)
		desc = expand(pick(s.path, "desc",
			"Contract {seniority} {role} for {city}, {region} teams: {skills}. Available on {timezone}, starting within weeks.",
			"Need a {role} in {city}, {region}? Freelance {seniority} help with {skills}, aligned with {timezone} and {country} contracting."), v)
		h1 = expand(pick(s.path, "h1", "{role} in {city}", "Contract {role} in {city}"), v)
	}

	page := &Page{
		Title:           g.withBrand(title),
		MetaDescription: clip(desc, maxDescLen),
		H1:              h1,
		Intro:           expand("Filling a {seniority} {role} seat can take months. A contract {role} closes the gap immediately: {author} joins your team, takes ownership of real work and leaves behind documentation so the next hire ramps up faster.", v),
		Breadcrumbs: []Link{
			{Title: "Home", Path: "/"},
			{Title: "Roles", Path: "/roles"},
			{Title: g.label(s.params), Path: s.path},
		},
	}
	if loc.Remote {
		page.PrimaryKeyword = "remote " + role.Title
	} else {
		page.PrimaryKeyword = role.Title + " " + loc.City
	}

	page.Sections = []Section{
		{
			Heading: expand("What a contract {role} covers", v),
			Body:    expand("The role is scoped like a {seniority} position on your team, without the hiring overhead. Core responsibilities include:", v),
			Bullets: append([]string(nil), role.Responsibilities...),
		},
		{
			Heading: "Tools of the trade",
			Body:    expand("Day-to-day work draws on {skills}. Tooling follows your conventions where they exist and proposes sensible defaults where they do not.", v),
		},
		g.locationSection(s, v),
		g.processSection(s, v),
	}

	page.FAQs = []FAQ{
		{
			Question: expand("Can a contractor really fill a {role} role?", v),
			Answer:   expand("For most teams, yes. A contract {role} attends your ceremonies, reviews code and owns deliverables like any team member. The difference is flexibility: you can scale hours up or down as priorities change.", v),
		},
		faqPricing(v),
		faqStart(v),
		faqOwnership(),
	}

	page.Keywords = keywords(page.PrimaryKeyword,
		"contract "+role.Title+" "+loc.City,
		"freelance "+role.Title+" "+loc.City,
	)

	for _, l := range g.primaryLocations() {
		page.Related = appendLink(page.Related, s.path, g.link(Params{Kind: KindRoleLocation, Role: role.Slug, Location: l.Slug}))
	}
	for _, sk := range role.Skills {
		page.Related = appendLink(page.Related, s.path, g.link(Params{Kind: KindSkillLocation, Skill: sk, Location: loc.Slug}))
	}
	return page
}

func (g *Generator) useCasePage(s subject) *Page {
	v := g.vars(s)
	uc := s.useCase
	skills := g.cat.SkillNames(uc.Skills)
	v["stack"] = uc.Name
	v["skills"] = joinList(skills)

	title := expand(pick(s.path, "title",
		"{usecase} Services for Growing Teams",
		"Freelance {usecase} Specialist",
		"{usecase}: Design, Build and Launch"), v)
	desc := expand(pick(s.path, "desc",
		"{usecase} services from a freelance developer: {skills}. Fixed-price milestones, weekly demos and documentation your team can keep.",
		"Freelance {usecase} with {skills}. Scoped milestones, tested code and a clean handover to your in-house team."), v)

	page := &Page{
		Title:           g.withBrand(title),
		MetaDescription: clip(desc, maxDescLen),
		H1:              expand(pick(s.path, "h1", "{usecase} Services", "Freelance {usecase}"), v),
		Intro:           uc.Description + " " + expand("{author} delivers {usecase} projects end to end, from first architecture sketch to production monitoring, using {skills}.", v),
		PrimaryKeyword:  uc.Name + " freelancer",
		Breadcrumbs: []Link{
			{Title: "Home", Path: "/"},
			{Title: "Solutions", Path: "/solutions"},
			{Title: uc.Name, Path: s.path},
		},
	}

	page.Sections = []Section{
		{
			Heading: "What you get",
			Body:    expand("Every {usecase} engagement ends with concrete, reviewable deliverables rather than open-ended hours:", v),
			Bullets: append([]string(nil), uc.Deliverables...),
		},
		{
			Heading: "Technology",
			Body:    expand("The usual toolkit for {usecase} is {skills}, chosen to fit your existing stack rather than replace it.", v),
		},
		g.aboutSection(s, v),
		g.processSection(s, v),
	}

	page.FAQs = []FAQ{
		{
			Question: expand("What does a typical {usecase} project look like?", v),
			Answer:   expand("Most {usecase} projects run four to twelve weeks, split into milestones of one to two weeks. Each milestone ends with a demo and a deliverable you can use, so value arrives long before the final invoice.", v),
		},
		faqPricing(v),
		faqStart(v),
		faqOwnership(),
	}

	page.Keywords = keywords(page.PrimaryKeyword, uc.Name+" services", uc.Name+" consultant")

	for _, sk := range uc.Skills {
		page.Related = appendLink(page.Related, s.path, g.link(Params{Kind: KindSkill, Skill: sk}))
	}
	return page
}

// keywords lowercases and de-duplicates, keeping the primary keyword first.
func keywords(primary string, more ...string) []string {
	seen := map[string]bool{}
	var out []string
	for _, k := range append([]string{primary}, more...) {
		k = strings.ToLower(strings.Join(strings.Fields(k), " "))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}

// joinList renders "a", "a and b" or "a, b and c".
func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}
