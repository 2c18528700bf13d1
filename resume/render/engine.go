package render

import (
	"bytes"
	"context"
	"fmt"

	"resume-studio/resume/model"
	"resume-studio/resume/project"
)

// Engine composes the projection, rasterization, and serialization
// steps behind the two export entry points. Both paths read the same
// canonical document and never mutate it.
type Engine struct {
	Raster *Rasterizer
}

// NewEngine builds an Engine around a shared rasterizer.
func NewEngine(raster *Rasterizer) *Engine {
	return &Engine{Raster: raster}
}

// RenderPDF projects the document through the selected template,
// captures the projection at native resolution, slices it into A4
// bands, and assembles the paginated PDF.
func (e *Engine) RenderPDF(ctx context.Context, doc model.Document, tplID project.TemplateID, fontID project.FontID) ([]byte, error) {
	proj, err := project.Project(doc, tplID, fontID)
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	img, err := e.Raster.CaptureFull(ctx, proj.HTML, project.PageWidthPx)
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	if img == nil {
		return nil, nil
	}

	bands := PaginateCapture(img)

	var buf bytes.Buffer
	if err := WritePDF(bands, &buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderDOCX serializes the document as a flow DOCX. The template
// selection is irrelevant here: the flow export derives from the
// canonical document directly.
func (e *Engine) RenderDOCX(_ context.Context, doc model.Document) ([]byte, error) {
	return RenderDOCX(doc)
}
