package pseo

import (
	"fmt"

	json "github.com/goccy/go-json"
)

type ldRef struct {
	ID string `json:"@id"`
}

type ldPlace struct {
	Type    string     `json:"@type"`
	Name    string     `json:"name"`
	Address *ldAddress `json:"address,omitempty"`
	Geo     *ldGeo     `json:"geo,omitempty"`
}

type ldAddress struct {
	Type            string `json:"@type"`
	AddressLocality string `json:"addressLocality,omitempty"`
	AddressRegion   string `json:"addressRegion,omitempty"`
	AddressCountry  string `json:"addressCountry,omitempty"`
}

type ldGeo struct {
	Type      string  `json:"@type"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type ldPerson struct {
	Type       string   `json:"@type"`
	ID         string   `json:"@id"`
	Name       string   `json:"name"`
	URL        string   `json:"url"`
	Email      string   `json:"email,omitempty"`
	JobTitle   string   `json:"jobTitle"`
	KnowsAbout []string `json:"knowsAbout,omitempty"`
}

type ldAudience struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type ldService struct {
	Type        string      `json:"@type"`
	ID          string      `json:"@id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	URL         string      `json:"url"`
	ServiceType string      `json:"serviceType,omitempty"`
	Provider    ldRef       `json:"provider"`
	AreaServed  *ldPlace    `json:"areaServed,omitempty"`
	Audience    *ldAudience `json:"audience,omitempty"`
}

type ldAnswer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

type ldQuestion struct {
	Type           string   `json:"@type"`
	Name           string   `json:"name"`
	AcceptedAnswer ldAnswer `json:"acceptedAnswer"`
}

type ldFAQPage struct {
	Type       string       `json:"@type"`
	ID         string       `json:"@id"`
	MainEntity []ldQuestion `json:"mainEntity"`
}

type ldListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

type ldBreadcrumbs struct {
	Type            string       `json:"@type"`
	ID              string       `json:"@id"`
	ItemListElement []ldListItem `json:"itemListElement"`
}

type ldDocument struct {
	Context string `json:"@context"`
	Graph   []any  `json:"@graph"`
}

// StructuredData renders the page's schema.org JSON-LD: the author as a
// Person, the offer as a ProfessionalService (Service when the page is not
// tied to a physical place), the FAQs and the breadcrumb trail.
func (g *Generator) StructuredData(p *Page) ([]byte, error) {
	personID := g.site.BaseURL + "/#person"
	person := ldPerson{
		Type:     "Person",
		ID:       personID,
		Name:     g.site.Author,
		URL:      g.site.BaseURL + "/",
		Email:    g.site.Email,
		JobTitle: "Freelance Software Developer",
	}
	for _, s := range g.cat.Skills {
		if s.Priority == 1 {
			person.KnowsAbout = append(person.KnowsAbout, s.Name)
		}
	}

	svc := ldService{
		Type:        "Service",
		ID:          p.CanonicalURL + "#service",
		Name:        p.H1,
		Description: p.MetaDescription,
		URL:         p.CanonicalURL,
		Provider:    ldRef{ID: personID},
	}
	if sk, ok := g.cat.Skill(p.Params.Skill); ok {
		svc.ServiceType = sk.Name + " development"
	}
	if r, ok := g.cat.Role(p.Params.Role); ok {
		svc.ServiceType = r.Title
	}
	if uc, ok := g.cat.UseCase(p.Params.UseCase); ok {
		svc.ServiceType = uc.Name
	}
	if ind, ok := g.cat.Industry(p.Params.Industry); ok {
		svc.Audience = &ldAudience{Type: "BusinessAudience", Name: ind.Name}
	}
	if loc, ok := g.cat.Location(p.Params.Location); ok {
		if loc.Remote {
			svc.AreaServed = &ldPlace{Type: "Place", Name: loc.Country}
		} else {
			svc.Type = "ProfessionalService"
			svc.AreaServed = &ldPlace{
				Type: "City",
				Name: loc.City,
				Address: &ldAddress{
					Type:            "PostalAddress",
					AddressLocality: loc.City,
					AddressRegion:   loc.Region,
					AddressCountry:  loc.CountryCode,
				},
				Geo: &ldGeo{Type: "GeoCoordinates", Latitude: loc.Lat, Longitude: loc.Lng},
			}
		}
	}

	graph := []any{person, svc}

	if len(p.FAQs) > 0 {
		faq := ldFAQPage{Type: "FAQPage", ID: p.CanonicalURL + "#faq"}
		for _, f := range p.FAQs {
			faq.MainEntity = append(faq.MainEntity, ldQuestion{
				Type:           "Question",
				Name:           f.Question,
				AcceptedAnswer: ldAnswer{Type: "Answer", Text: f.Answer},
			})
		}
		graph = append(graph, faq)
	}

	if len(p.Breadcrumbs) > 0 {
		bc := ldBreadcrumbs{Type: "BreadcrumbList", ID: p.CanonicalURL + "#breadcrumbs"}
		for i, l := range p.Breadcrumbs {
			bc.ItemListElement = append(bc.ItemListElement, ldListItem{
				Type:     "ListItem",
				Position: i + 1,
				Name:     l.Title,
				Item:     g.site.BaseURL + l.Path,
			})
		}
		graph = append(graph, bc)
	}

	out, err := json.Marshal(ldDocument{Context: "https://schema.org", Graph: graph})
	if err != nil {
		return nil, fmt.Errorf("failed to encode structured data for %s: %w", p.Path, err)
	}
	return out, nil
}
