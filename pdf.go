package main

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth  = 210 // A4 width in mm
	pdfMargin     = 10  // Margin in mm
	pdfLineHeight = 5   // Line height in mm
	pdfFontSize   = 9
	pdfTabWidth   = 4 // Number of spaces for a tab
)

// generatePDF renders the files of a compile run as a syntax-highlighted PDF.
// Each file gets the same FILE header as the text output; unreadable files show the ERROR line in red.
func generatePDF(result Result, summary Summary, outputPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	// Core fonts are cp1252; translate from UTF-8 so non-ASCII text does not garble.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	style := styles.Get("github")
	if style == nil {
		style = styles.Fallback
	}

	cellWidth := float64(pdfPageWidth - 2*pdfMargin)
	for _, path := range result.Files {
		pdf.AddPage()

		pdf.SetFont("Helvetica", "B", pdfFontSize+1)
		pdf.SetTextColor(0, 0, 0)
		pdf.MultiCell(cellWidth, pdfLineHeight, tr("FILE: "+path), "", "L", false)
		pdf.Ln(pdfLineHeight / 2)
		pdf.Line(pdfMargin, pdf.GetY(), pdfPageWidth-pdfMargin, pdf.GetY())
		pdf.Ln(pdfLineHeight / 2)

		content, readErr := readText(path)
		if readErr != nil {
			pdf.SetFont("Courier", "", pdfFontSize)
			pdf.SetTextColor(255, 0, 0)
			pdf.MultiCell(cellWidth, pdfLineHeight, tr(fmt.Sprintf("ERROR: Could not read file %s: %v", path, readErr)), "", "L", false)
			continue
		}

		if err := writeHighlightedCode(pdf, style, tr, content, path); err != nil {
			logger.Sugar().Warnf("Syntax highlighting failed for %s: %v. Writing plain text.", path, err)
			pdf.SetFont("Courier", "", pdfFontSize)
			pdf.SetTextColor(0, 0, 0)
			pdf.MultiCell(cellWidth, pdfLineHeight, tr(content), "", "L", false)
		}
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", pdfFontSize+1)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(cellWidth, pdfLineHeight, "--- Summary ---", "", "L", false)
	pdf.Ln(pdfLineHeight / 2)

	pdf.SetFont("Helvetica", "", pdfFontSize)
	summaryString := fmt.Sprintf("Total files: %d\nTotal size: %d bytes", summary.TotalFiles, summary.TotalSize)
	if summary.TotalTokens > 0 {
		summaryString += fmt.Sprintf("\nTotal tokens: %d", summary.TotalTokens)
	}
	pdf.MultiCell(cellWidth, pdfLineHeight, summaryString, "", "L", false)

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("failed to save PDF to %s: %w", outputPath, err)
	}
	return nil
}

// lexerFor picks a chroma lexer by file name, then by content, then plain text.
func lexerFor(path, content string) chroma.Lexer {
	lexer := lexers.Match(path)
	if lexer == nil {
		lexer = lexers.Analyse(content)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// writeHighlightedCode writes code content to the PDF token by token with the style's colours.
func writeHighlightedCode(pdf *gofpdf.Fpdf, style *chroma.Style, tr func(string) string, codeContent, filePath string) error {
	iterator, err := lexerFor(filePath, codeContent).Tokenise(nil, codeContent)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	pdf.SetFont("Courier", "", pdfFontSize)

	for token := iterator(); token != chroma.EOF; token = iterator() {
		entry := style.Get(token.Type)
		styleStr := ""
		if entry.Bold == chroma.Yes {
			styleStr += "B"
		}
		if entry.Italic == chroma.Yes {
			styleStr += "I"
		}
		pdf.SetFontStyle(styleStr)

		if entry.Colour.IsSet() {
			pdf.SetTextColor(int(entry.Colour.Red()), int(entry.Colour.Green()), int(entry.Colour.Blue()))
		} else if fg := style.Get(chroma.Text).Colour; fg.IsSet() {
			pdf.SetTextColor(int(fg.Red()), int(fg.Green()), int(fg.Blue()))
		} else {
			pdf.SetTextColor(0, 0, 0)
		}

		tokenValue := strings.ReplaceAll(token.Value, "\t", strings.Repeat(" ", pdfTabWidth))
		pdf.Write(pdfLineHeight, tr(tokenValue))
	}
	pdf.Ln(-1)

	return pdf.Error()
}
