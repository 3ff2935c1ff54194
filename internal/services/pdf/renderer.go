package pdf

import (
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

const (
	pageWidth      = 277.0 // landscape A4 minus margins
	tableFontSize  = 7.0
	tableLineH     = 3.5
	maxCellLines   = 6
	minColumnWidth = 10.0
)

type pdfRenderer struct {
	pdf       *fpdf.Fpdf
	source    []byte
	translate func(string) string
	size      float64
	bold      bool
	italic    bool
	listLevel int
}

func (r *pdfRenderer) render(node ast.Node) error {
	return ast.Walk(node, r.walk)
}

func (r *pdfRenderer) updateFont() {
	style := ""
	if r.bold {
		style += "B"
	}
	if r.italic {
		style += "I"
	}
	r.pdf.SetFont(fontFamily, style, r.size)
}

func (r *pdfRenderer) write(s string) {
	r.pdf.Write(5, r.translate(s))
}

func (r *pdfRenderer) walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n.Kind() {
	case ast.KindHeading:
		return r.handleHeading(n.(*ast.Heading), entering)
	case ast.KindParagraph, ast.KindTextBlock:
		if !entering {
			r.pdf.Ln(6)
		}
	case ast.KindText:
		if entering {
			t := n.(*ast.Text)
			r.write(string(t.Segment.Value(r.source)))
			if t.SoftLineBreak() || t.HardLineBreak() {
				r.write(" ")
			}
		}
	case ast.KindEmphasis:
		if n.(*ast.Emphasis).Level == 2 {
			r.bold = entering
		} else {
			r.italic = entering
		}
		r.updateFont()
	case ast.KindCodeSpan:
		return r.handleCodeSpan(n, entering)
	case ast.KindFencedCodeBlock, ast.KindCodeBlock:
		if entering {
			r.renderCodeBlock(n.Lines())
			return ast.WalkSkipChildren, nil
		}
	case ast.KindList:
		if entering {
			r.listLevel++
		} else {
			r.listLevel--
			if r.listLevel == 0 {
				r.pdf.Ln(2)
			}
		}
	case ast.KindListItem:
		if entering {
			r.pdf.Ln(5)
			r.pdf.SetX(pageMargin + 5 + float64(r.listLevel)*5)
			r.write("- ")
		}
	case ast.KindThematicBreak:
		if entering {
			r.pdf.Ln(2)
			r.pdf.Line(pageMargin, r.pdf.GetY(), pageMargin+pageWidth, r.pdf.GetY())
			r.pdf.Ln(2)
		}
	case extast.KindTable:
		if entering {
			r.renderTable(r.tableRows(n))
			return ast.WalkSkipChildren, nil
		}
	}
	return ast.WalkContinue, nil
}

func (r *pdfRenderer) handleHeading(n *ast.Heading, entering bool) (ast.WalkStatus, error) {
	if !entering {
		r.pdf.Ln(7)
		r.updateFont()
		return ast.WalkContinue, nil
	}

	r.pdf.Ln(4)
	size := 10.0
	switch n.Level {
	case 1:
		size = 15
	case 2:
		size = 12
	case 3:
		size = 11
	}
	r.pdf.SetFont(fontFamily, "B", size)
	return ast.WalkContinue, nil
}

func (r *pdfRenderer) handleCodeSpan(n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	r.pdf.SetFont("Courier", "", r.size)
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			r.write(string(t.Segment.Value(r.source)))
		}
	}
	r.updateFont()
	return ast.WalkSkipChildren, nil
}

func (r *pdfRenderer) renderCodeBlock(lines *text.Segments) {
	r.pdf.Ln(2)
	r.pdf.SetFont("Courier", "", 8)
	r.pdf.SetFillColor(245, 245, 245)
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		r.pdf.MultiCell(0, 4, r.translate(strings.TrimRight(string(line.Value(r.source)), "\n")), "", "L", true)
	}
	r.pdf.SetFillColor(255, 255, 255)
	r.updateFont()
	r.pdf.Ln(2)
}

// tableRows returns the header cells followed by every body row
func (r *pdfRenderer) tableRows(table ast.Node) [][]string {
	var rows [][]string
	for child := table.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *extast.TableHeader, *extast.TableRow:
			rows = append(rows, r.cells(child))
		}
	}
	return rows
}

func (r *pdfRenderer) cells(row ast.Node) []string {
	var out []string
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		if _, ok := cell.(*extast.TableCell); ok {
			out = append(out, r.translate(nodeText(cell, r.source)))
		}
	}
	return out
}

// nodeText concatenates the text segments below n
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := c.(*ast.Text); ok && entering {
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// statusColor tints result cells
func statusColor(cell string) (int, int, int, bool) {
	switch {
	case strings.HasPrefix(cell, "FAIL"):
		return 200, 0, 0, true
	case strings.HasPrefix(cell, "PASS"):
		return 0, 128, 0, true
	}
	return 0, 0, 0, false
}

func (r *pdfRenderer) renderTable(rows [][]string) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return
	}
	numCols := len(rows[0])
	widths := r.columnWidths(rows, numCols)

	r.pdf.Ln(2)
	for i, row := range rows {
		style := ""
		if i == 0 {
			style = "B"
		}
		r.pdf.SetFont(fontFamily, style, tableFontSize)

		lines := 1
		wrapped := make([][]string, numCols)
		for j := 0; j < numCols && j < len(row); j++ {
			wrapped[j] = r.wrap(row[j], widths[j]-2)
			lines = max(lines, len(wrapped[j]))
		}
		lines = min(lines, maxCellLines)

		height := float64(lines)*tableLineH + 2
		_, pageHeight := r.pdf.GetPageSize()
		if r.pdf.GetY()+height > pageHeight-pageMargin-5 {
			r.pdf.AddPage()
			r.pdf.SetFont(fontFamily, style, tableFontSize)
		}

		x, y := r.pdf.GetX(), r.pdf.GetY()
		for j := 0; j < numCols; j++ {
			if i == 0 {
				r.pdf.SetFillColor(230, 230, 230)
				r.pdf.Rect(x, y, widths[j], height, "FD")
			} else {
				r.pdf.Rect(x, y, widths[j], height, "D")
			}

			if red, green, blue, ok := statusColor(cellAt(row, j)); ok && i > 0 {
				r.pdf.SetTextColor(red, green, blue)
			}
			for k, line := range wrapped[j] {
				if k == lines {
					break
				}
				r.pdf.SetXY(x+1, y+1+float64(k)*tableLineH)
				r.pdf.CellFormat(widths[j]-2, tableLineH, line, "", 0, "L", false, 0, "")
			}
			r.pdf.SetTextColor(0, 0, 0)
			x += widths[j]
		}
		r.pdf.SetXY(pageMargin, y+height)
	}

	r.pdf.SetFillColor(255, 255, 255)
	r.pdf.Ln(3)
	r.updateFont()
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// columnWidths sizes columns to their widest cell and scales them to the page
func (r *pdfRenderer) columnWidths(rows [][]string, numCols int) []float64 {
	widths := make([]float64, numCols)
	r.pdf.SetFont(fontFamily, "B", tableFontSize)
	for _, row := range rows {
		for j := 0; j < numCols && j < len(row); j++ {
			widths[j] = max(widths[j], r.pdf.GetStringWidth(row[j])+4)
		}
	}

	total := 0.0
	for j := range widths {
		widths[j] = min(max(widths[j], minColumnWidth), pageWidth/3)
		total += widths[j]
	}
	if total > pageWidth {
		scale := pageWidth / total
		for j := range widths {
			widths[j] *= scale
		}
	}
	return widths
}

// wrap breaks text into lines no wider than width
func (r *pdfRenderer) wrap(s string, width float64) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		if r.pdf.GetStringWidth(current+" "+w) <= width {
			current += " " + w
			continue
		}
		lines = append(lines, current)
		current = w
	}
	return append(lines, current)
}
