package project

import "strings"

// TemplateID selects one of the closed set of visual template variants.
type TemplateID int

const (
	TemplateModern TemplateID = iota
	TemplateClassic
	TemplateMinimal
	TemplateElegant
	TemplateCreative
	TemplateProfessional
	TemplateExecutive
	TemplateCompact
	TemplateSidebar
	TemplateTimeline
	TemplateBold
	TemplateSlate
	TemplateMono
	TemplateSerif
	TemplateIvory
	TemplateOnyx
)

// DefaultTemplate is the fallback for unrecognized template tokens.
const DefaultTemplate = TemplateModern

// templateIDs lists every variant; used by All and tests to keep the
// enum and the embedded assets in lockstep.
var templateIDs = []TemplateID{
	TemplateModern, TemplateClassic, TemplateMinimal, TemplateElegant,
	TemplateCreative, TemplateProfessional, TemplateExecutive, TemplateCompact,
	TemplateSidebar, TemplateTimeline, TemplateBold, TemplateSlate,
	TemplateMono, TemplateSerif, TemplateIvory, TemplateOnyx,
}

// AllTemplates returns every known template variant.
func AllTemplates() []TemplateID {
	out := make([]TemplateID, len(templateIDs))
	copy(out, templateIDs)
	return out
}

// String returns the stable token for the template.
func (t TemplateID) String() string {
	switch t {
	case TemplateModern:
		return "modern"
	case TemplateClassic:
		return "classic"
	case TemplateMinimal:
		return "minimal"
	case TemplateElegant:
		return "elegant"
	case TemplateCreative:
		return "creative"
	case TemplateProfessional:
		return "professional"
	case TemplateExecutive:
		return "executive"
	case TemplateCompact:
		return "compact"
	case TemplateSidebar:
		return "sidebar"
	case TemplateTimeline:
		return "timeline"
	case TemplateBold:
		return "bold"
	case TemplateSlate:
		return "slate"
	case TemplateMono:
		return "mono"
	case TemplateSerif:
		return "serif"
	case TemplateIvory:
		return "ivory"
	case TemplateOnyx:
		return "onyx"
	}
	return "modern"
}

// file returns the embedded template file for the variant. The switch
// is exhaustive over the enum; anything else falls back to the default
// variant's file.
func (t TemplateID) file() string {
	switch t {
	case TemplateModern:
		return "modern.html.tmpl"
	case TemplateClassic:
		return "classic.html.tmpl"
	case TemplateMinimal:
		return "minimal.html.tmpl"
	case TemplateElegant:
		return "elegant.html.tmpl"
	case TemplateCreative:
		return "creative.html.tmpl"
	case TemplateProfessional:
		return "professional.html.tmpl"
	case TemplateExecutive:
		return "executive.html.tmpl"
	case TemplateCompact:
		return "compact.html.tmpl"
	case TemplateSidebar:
		return "sidebar.html.tmpl"
	case TemplateTimeline:
		return "timeline.html.tmpl"
	case TemplateBold:
		return "bold.html.tmpl"
	case TemplateSlate:
		return "slate.html.tmpl"
	case TemplateMono:
		return "mono.html.tmpl"
	case TemplateSerif:
		return "serif.html.tmpl"
	case TemplateIvory:
		return "ivory.html.tmpl"
	case TemplateOnyx:
		return "onyx.html.tmpl"
	}
	return "modern.html.tmpl"
}

// ParseTemplate resolves a template token, falling back to the default
// variant for unknown or malformed input rather than erroring.
func ParseTemplate(token string) TemplateID {
	normalized := strings.ToLower(strings.TrimSpace(token))
	for _, id := range templateIDs {
		if id.String() == normalized {
			return id
		}
	}
	return DefaultTemplate
}
