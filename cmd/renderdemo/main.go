package main

// Render a sample resume to DOCX (and optionally PDF, which needs a
// local Chrome):
//   go run ./cmd/renderdemo -out ./out -pdf

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ltpdf "github.com/ledongthuc/pdf"

	"resume-studio/resume/model"
	"resume-studio/resume/project"
	"resume-studio/resume/render"
)

func main() {
	outDir := flag.String("out", "./out", "output directory")
	profession := flag.String("profession", "developer", "sample profession: developer, designer, marketing")
	template := flag.String("template", "modern", "template variant for the PDF export")
	font := flag.String("font", "default", "font override")
	withPDF := flag.Bool("pdf", false, "also render the paginated PDF (requires Chrome)")
	flag.Parse()

	doc := model.SampleFor(*profession)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir failed: %v\n", err)
		os.Exit(1)
	}

	modelPath := filepath.Join(*outDir, "sample_resume.json")
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal failed: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(modelPath, payload, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}

	docxPath := filepath.Join(*outDir, "sample_resume.docx")
	if err := renderDocx(doc, docxPath); err != nil {
		fmt.Fprintf(os.Stderr, "docx render failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK: wrote %s\n", docxPath)

	if !*withPDF {
		return
	}

	pdfPath := filepath.Join(*outDir, "sample_resume.pdf")
	if err := renderPdf(doc, *template, *font, pdfPath); err != nil {
		fmt.Fprintf(os.Stderr, "pdf render failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK: wrote %s\n", pdfPath)
}

func renderDocx(doc model.Document, path string) error {
	data, err := render.RenderDOCX(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	return validateDocxPackage(data, doc)
}

func renderPdf(doc model.Document, template, font, path string) error {
	raster := render.NewRasterizer()
	defer raster.Close()

	engine := render.NewEngine(raster)
	data, err := engine.RenderPDF(
		context.Background(),
		doc,
		project.ParseTemplate(template),
		project.ParseFont(font),
	)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("empty capture")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	return validatePdfPages(data)
}

// validateDocxPackage reopens the produced file and checks the parts
// and the name actually landed in document.xml.
func validateDocxPackage(data []byte, doc model.Document) error {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return err
	}

	found := false
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		_, copyErr := buf.ReadFrom(rc)
		rc.Close()
		if copyErr != nil {
			return copyErr
		}
		if !strings.Contains(buf.String(), doc.PersonalInfo.FullName) {
			return fmt.Errorf("document.xml missing the sample name")
		}
		found = true
	}
	if !found {
		return fmt.Errorf("word/document.xml missing from package")
	}
	return nil
}

func validatePdfPages(data []byte) error {
	reader, err := ltpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("reopen pdf: %w", err)
	}
	if reader.NumPage() < 1 {
		return fmt.Errorf("pdf has no pages")
	}
	return nil
}
