package render

import (
	"archive/zip"
	"bytes"
	"fmt"

	"resume-studio/resume/model"
	"resume-studio/resume/rules"
)

// RenderDOCX serializes the document into a DOCX payload, built as
// styled paragraphs directly from the canonical model. Section
// omission, ordering, and date formatting all come from resume/rules,
// so this output always agrees with the template projection on which
// sections appear.
//
// A photo that fails to decode is skipped without failing the export;
// any other construction failure aborts the whole export rather than
// emitting a partial file.
func RenderDOCX(doc model.Document) ([]byte, error) {
	paras, photo, photoFormat := buildParagraphs(doc)

	xmlText := documentXML(paras)
	if err := validateDocumentXML(xmlText); err != nil {
		return nil, fmt.Errorf("render docx: %w", err)
	}

	photoTarget := ""
	if photo != nil {
		photoTarget = "media/photo." + photoFormat
	}

	var out bytes.Buffer
	zw := zip.NewWriter(&out)

	entries := []struct {
		name    string
		content []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(rootRelsXML)},
		{"word/document.xml", []byte(xmlText)},
		{"word/styles.xml", []byte(stylesXML)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML(photoTarget))},
	}
	for _, entry := range entries {
		if err := writeZipEntry(zw, entry.name, entry.content); err != nil {
			return nil, fmt.Errorf("render docx: %w", err)
		}
	}
	if photo != nil {
		if err := writeZipEntry(zw, "word/"+photoTarget, photo); err != nil {
			return nil, fmt.Errorf("render docx: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("render docx: %w", err)
	}
	return out.Bytes(), nil
}

// buildParagraphs returns the full paragraph sequence plus the photo
// bytes to embed (nil when absent or undecodable).
func buildParagraphs(doc model.Document) ([]docxPara, []byte, string) {
	paras := make([]docxPara, 0, 16)

	photo, photoFormat, err := doc.PersonalInfo.PhotoBytes()
	if err != nil {
		// Asset failure degrades: the document continues without a
		// photo paragraph.
		photo = nil
	}
	if photo != nil {
		paras = append(paras, docxPara{
			Align:        "center",
			SpacingAfter: 120,
			DrawingXML:   photoDrawingXML(),
		})
	}

	paras = append(paras, titleBlock(doc.PersonalInfo)...)

	for _, section := range rules.VisibleSections(doc) {
		paras = append(paras, sectionParagraphs(doc, section)...)
	}

	return paras, photo, photoFormat
}

func titleBlock(p model.PersonalInfo) []docxPara {
	paras := []docxPara{
		{Runs: []docxRun{{Text: p.FullName, Style: nameStyle}}, SpacingAfter: 40},
	}
	if p.Title != "" {
		paras = append(paras, docxPara{
			Runs:         []docxRun{{Text: p.Title, Style: titleStyle}},
			SpacingAfter: 40,
		})
	}
	if contact := rules.ContactLine(p); contact != "" {
		paras = append(paras, docxPara{
			Runs:         []docxRun{{Text: contact, Style: metaStyle}},
			SpacingAfter: 160,
		})
	}
	return paras
}

func sectionParagraphs(doc model.Document, section rules.Section) []docxPara {
	paras := []docxPara{headingParagraph(rules.Heading(section))}

	switch section {
	case rules.SectionSummary:
		paras = append(paras, docxPara{
			Runs:         []docxRun{{Text: doc.PersonalInfo.Summary, Style: bodyStyle}},
			SpacingAfter: 120,
		})
	case rules.SectionExperience:
		for _, exp := range doc.Experience {
			paras = append(paras, experienceParagraphs(exp)...)
		}
	case rules.SectionEducation:
		for _, edu := range doc.Education {
			paras = append(paras, educationParagraphs(edu)...)
		}
	case rules.SectionSkills:
		paras = append(paras, docxPara{
			Runs:         []docxRun{{Text: rules.SkillsLine(doc.Skills), Style: bodyStyle}},
			SpacingAfter: 120,
		})
	}
	return paras
}

func headingParagraph(heading string) docxPara {
	return docxPara{
		Runs:         []docxRun{{Text: heading, Style: headingStyle}},
		SpacingAfter: 80,
	}
}

func experienceParagraphs(exp model.Experience) []docxPara {
	role := rules.RoleLine(exp)
	meta := rules.MetaLine(exp.Location, rules.DateRange(exp.Start, exp.End, exp.Current, ""))

	paras := []docxPara{
		{Runs: []docxRun{{Text: role, Style: roleStyle}}, SpacingAfter: 20},
	}
	if meta != "" {
		paras = append(paras, docxPara{
			Runs:         []docxRun{{Text: meta, Style: metaStyle}},
			SpacingAfter: 40,
		})
	}
	if exp.Description != "" {
		// The flow export keeps the description as one raw paragraph;
		// it is not re-split into bullet paragraphs.
		paras = append(paras, docxPara{
			Runs:         []docxRun{{Text: exp.Description, Style: bodyStyle}},
			SpacingAfter: 120,
		})
	}
	return paras
}

func educationParagraphs(edu model.Education) []docxPara {
	paras := []docxPara{
		{Runs: []docxRun{{Text: edu.Institution, Style: roleStyle}}, SpacingAfter: 20},
	}

	if degree := rules.DegreeLine(edu); degree != "" {
		paras = append(paras, docxPara{
			Runs:         []docxRun{{Text: degree, Style: bodyStyle}},
			SpacingAfter: 20,
		})
	}

	if dates := rules.DateRange(edu.Start, edu.End, false, ""); dates != "" {
		paras = append(paras, docxPara{
			Runs:         []docxRun{{Text: dates, Style: metaStyle}},
			SpacingAfter: 120,
		})
	}
	return paras
}
