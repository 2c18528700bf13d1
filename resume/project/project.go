// Package project maps a canonical resume document onto one of the
// closed set of visual template variants. Projection is pure: the same
// (document, template, font) triple always yields the same HTML, sized
// for a fixed A4-equivalent page width and unbounded height. Page
// splitting is not this layer's concern.
package project

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"sync"

	"resume-studio/resume/model"
	"resume-studio/resume/rules"
)

// PageWidthPx is the fixed logical page width every variant renders at
// (A4 at 96dpi).
const PageWidthPx = 794

//go:embed templates/*.tmpl
var templateFS embed.FS

// Projection is the rendered visual tree for one template variant.
type Projection struct {
	Template TemplateID
	Font     FontID
	HTML     []byte
	// Sections lists the sections actually emitted, in display order.
	// Export renderers and parity tests compare against this.
	Sections []rules.Section
}

// Project renders the document through the selected template variant.
// It has no side effects and never mutates the document.
func Project(doc model.Document, tplID TemplateID, fontID FontID) (*Projection, error) {
	tpl, err := lookupTemplate(tplID)
	if err != nil {
		return nil, err
	}

	v := buildView(doc, fontID)

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, tplID.file(), v); err != nil {
		return nil, fmt.Errorf("project template %s: %w", tplID, err)
	}

	sections := make([]rules.Section, len(v.Sections))
	for i := range v.Sections {
		sections[i] = rules.Section(v.Sections[i].Kind)
	}

	return &Projection{
		Template: tplID,
		Font:     fontID,
		HTML:     buf.Bytes(),
		Sections: sections,
	}, nil
}

var (
	templateCacheMu sync.Mutex
	templateCache   = map[TemplateID]*template.Template{}
)

func lookupTemplate(id TemplateID) (*template.Template, error) {
	templateCacheMu.Lock()
	defer templateCacheMu.Unlock()

	if tpl, ok := templateCache[id]; ok {
		return tpl, nil
	}
	tpl, err := template.ParseFS(templateFS, "templates/partials.html.tmpl", "templates/"+id.file())
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", id, err)
	}
	templateCache[id] = tpl
	return tpl, nil
}

// view is the data handed to every variant template. Everything the
// templates print is precomputed through resume/rules so the variants
// cannot invent their own formatting.
type view struct {
	FullName    string
	Title       string
	ContactLine string
	LinkedIn    string
	Website     string
	PhotoSrc    template.URL
	FontCSS     template.CSS
	PageWidth   int
	Sections    []sectionView
}

type sectionView struct {
	Kind       string
	Heading    string
	Summary    string
	Experience []experienceView
	Education  []educationView
	Skills     []skillView
	SkillsLine string
}

type experienceView struct {
	Position  string
	Company   string
	Location  string
	DateRange string
	Lines     []string
}

type educationView struct {
	Institution string
	DegreeLine  string
	DateRange   string
}

type skillView struct {
	Name    string
	Percent int
}

// ByKind returns the section with the given kind, or nil when the
// document omits it. Sidebar layouts use this to pin sections to fixed
// slots.
func (v view) ByKind(kind string) *sectionView {
	for i := range v.Sections {
		if v.Sections[i].Kind == kind {
			return &v.Sections[i]
		}
	}
	return nil
}

// Except returns the ordered sections minus the given kinds.
func (v view) Except(kinds ...string) []sectionView {
	skip := make(map[string]struct{}, len(kinds))
	for _, k := range kinds {
		skip[k] = struct{}{}
	}
	out := make([]sectionView, 0, len(v.Sections))
	for _, s := range v.Sections {
		if _, ok := skip[s.Kind]; !ok {
			out = append(out, s)
		}
	}
	return out
}

func buildView(doc model.Document, fontID FontID) view {
	v := view{
		FullName:    doc.PersonalInfo.FullName,
		Title:       doc.PersonalInfo.Title,
		ContactLine: rules.ContactLine(doc.PersonalInfo),
		LinkedIn:    doc.PersonalInfo.LinkedIn,
		Website:     doc.PersonalInfo.Website,
		PageWidth:   PageWidthPx,
	}

	if stack := fontID.Stack(); stack != "" {
		v.FontCSS = template.CSS("font-family: " + stack + ";")
	}

	if src := photoSrc(doc.PersonalInfo); src != "" {
		v.PhotoSrc = template.URL(src)
	}

	for _, section := range rules.VisibleSections(doc) {
		v.Sections = append(v.Sections, buildSection(doc, section))
	}
	return v
}

func buildSection(doc model.Document, section rules.Section) sectionView {
	sv := sectionView{
		Kind:    string(section),
		Heading: rules.Heading(section),
	}
	switch section {
	case rules.SectionSummary:
		sv.Summary = doc.PersonalInfo.Summary
	case rules.SectionExperience:
		for _, exp := range doc.Experience {
			sv.Experience = append(sv.Experience, experienceView{
				Position:  exp.Position,
				Company:   exp.Company,
				Location:  exp.Location,
				DateRange: rules.DateRange(exp.Start, exp.End, exp.Current, ""),
				Lines:     rules.DescriptionLines(exp.Description),
			})
		}
	case rules.SectionEducation:
		for _, edu := range doc.Education {
			sv.Education = append(sv.Education, educationView{
				Institution: edu.Institution,
				DegreeLine:  rules.DegreeLine(edu),
				DateRange:   rules.DateRange(edu.Start, edu.End, false, ""),
			})
		}
	case rules.SectionSkills:
		for _, skill := range doc.Skills {
			sv.Skills = append(sv.Skills, skillView{
				Name:    skill.Name,
				Percent: skill.Level.Percent(),
			})
		}
		sv.SkillsLine = rules.SkillsLine(doc.Skills)
	}
	return sv
}

// photoSrc returns a browser-renderable image source for the photo, or
// "" when the photo is absent or undecodable.
func photoSrc(p model.PersonalInfo) string {
	data, format, err := p.PhotoBytes()
	if err != nil {
		return ""
	}
	return "data:image/" + format + ";base64," + base64.StdEncoding.EncodeToString(data)
}
