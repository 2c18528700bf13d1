package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

const wmlNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
const relNamespace = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

// runStyle captures inline run formatting in half-points and hex color.
type runStyle struct {
	Bold   bool
	Italic bool
	Size   int
	Color  string
}

// docxRun is one styled text run.
type docxRun struct {
	Text  string
	Style runStyle
}

// docxPara is one paragraph: either styled runs or a raw drawing body
// (used for the inline photo).
type docxPara struct {
	Runs         []docxRun
	Align        string
	SpacingAfter int
	DrawingXML   string
}

func (r docxRun) xml() string {
	var b strings.Builder
	b.WriteString("<w:r>")

	props := r.Style.propsXML()
	if props != "" {
		b.WriteString(props)
	}

	b.WriteString(`<w:t xml:space="preserve">`)
	b.WriteString(escapeXML(r.Text))
	b.WriteString("</w:t></w:r>")
	return b.String()
}

func (s runStyle) propsXML() string {
	if !s.Bold && !s.Italic && s.Size == 0 && s.Color == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString("<w:rPr>")
	if s.Bold {
		b.WriteString("<w:b/>")
	}
	if s.Italic {
		b.WriteString("<w:i/>")
	}
	if s.Color != "" {
		fmt.Fprintf(&b, `<w:color w:val="%s"/>`, s.Color)
	}
	if s.Size > 0 {
		fmt.Fprintf(&b, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, s.Size, s.Size)
	}
	b.WriteString("</w:rPr>")
	return b.String()
}

func (p docxPara) xml() string {
	var b strings.Builder
	b.WriteString("<w:p>")

	if p.Align != "" || p.SpacingAfter > 0 {
		b.WriteString("<w:pPr>")
		if p.SpacingAfter > 0 {
			fmt.Fprintf(&b, `<w:spacing w:after="%d"/>`, p.SpacingAfter)
		}
		if p.Align != "" {
			fmt.Fprintf(&b, `<w:jc w:val="%s"/>`, p.Align)
		}
		b.WriteString("</w:pPr>")
	}

	if p.DrawingXML != "" {
		b.WriteString("<w:r>")
		b.WriteString(p.DrawingXML)
		b.WriteString("</w:r>")
	}
	for _, run := range p.Runs {
		b.WriteString(run.xml())
	}

	b.WriteString("</w:p>")
	return b.String()
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	// EscapeText only fails on a failing writer; bytes.Buffer never does.
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// documentXML wraps the body paragraphs in the OOXML document root with
// an A4 section definition.
func documentXML(paras []docxPara) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<w:document` +
		` xmlns:w="` + wmlNamespace + `"` +
		` xmlns:r="` + relNamespace + `"` +
		` xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"` +
		` xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
		` xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">`)
	b.WriteString("<w:body>")
	for _, p := range paras {
		b.WriteString(p.xml())
	}
	// A4, default page setup, single section.
	b.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/>` +
		`<w:pgMar w:top="1134" w:right="1134" w:bottom="1134" w:left="1134" w:header="709" w:footer="709" w:gutter="0"/>` +
		`</w:sectPr>`)
	b.WriteString("</w:body></w:document>")
	return b.String()
}

// photoEMU is the fixed square thumbnail extent for the embedded photo
// (one inch in EMUs), applied regardless of the source aspect ratio.
const photoEMU = 914400

// photoRelID is the relationship id the drawing references; the
// package writer registers the media part under the same id.
const photoRelID = "rIdPhoto1"

func photoDrawingXML() string {
	return fmt.Sprintf(`<w:drawing><wp:inline distT="0" distB="0" distL="0" distR="0">`+
		`<wp:extent cx="%d" cy="%d"/>`+
		`<wp:docPr id="1" name="Photo"/>`+
		`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
		`<pic:pic>`+
		`<pic:nvPicPr><pic:cNvPr id="1" name="Photo"/><pic:cNvPicPr/></pic:nvPicPr>`+
		`<pic:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`+
		`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`+
		`</pic:pic>`+
		`</a:graphicData></a:graphic>`+
		`</wp:inline></w:drawing>`,
		photoEMU, photoEMU, photoRelID, photoEMU, photoEMU)
}
