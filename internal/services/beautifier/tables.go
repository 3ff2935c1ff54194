package beautifier

import (
	"regexp"
	"strings"
)

var (
	borderLine       = regexp.MustCompile(`^\+\s*(?:-+\s*\+)+$`)
	singleCellBorder = regexp.MustCompile(`^\+-+\+$`)
	dashRule         = regexp.MustCompile(`-{5,}`)
	alphanumeric     = regexp.MustCompile(`[A-Za-z0-9]`)
)

func isTableLine(line string) bool {
	return strings.HasPrefix(line, "+") || strings.HasPrefix(line, "|")
}

func isBorder(line string) bool {
	return borderLine.MatchString(strings.TrimSpace(line))
}

func isSingleCellBorder(line string) bool {
	return singleCellBorder.MatchString(strings.TrimSpace(line))
}

// asciiRows splits every '|' line into trimmed cells, skipping borders
func asciiRows(lines []string) [][]string {
	var rows [][]string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if isBorder(line) || !strings.HasPrefix(line, "|") {
			continue
		}
		cells := strings.Split(strings.Trim(line, "|"), "|")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		rows = append(rows, cells)
	}
	return rows
}

func rowHasContent(row []string) bool {
	for _, c := range row {
		if c != "" {
			return true
		}
	}
	return false
}

func dropEmptyRows(rows [][]string) [][]string {
	out := rows[:0]
	for _, r := range rows {
		if rowHasContent(r) {
			out = append(out, r)
		}
	}
	return out
}

// normalizeRows pads rows to the widest and removes columns that are empty everywhere
func normalizeRows(rows [][]string) [][]string {
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}

	keep := make([]int, 0, width)
	for col := 0; col < width; col++ {
		for _, r := range rows {
			if col < len(r) && r[col] != "" {
				keep = append(keep, col)
				break
			}
		}
	}

	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = make([]string, len(keep))
		for j, col := range keep {
			if col < len(r) {
				out[i][j] = r[col]
			}
		}
	}
	return out
}

func (b *block) tableHTML(rows [][]string) string {
	var sb strings.Builder
	sb.WriteString("<table class='ascii-table' border='1' cellpadding='5' cellspacing='0' " +
		"style='border-collapse: collapse; width: auto; text-align: left;'><tbody>")
	for _, row := range rows {
		sb.WriteString("<tr>")
		for _, cell := range row {
			sb.WriteString("<td>")
			sb.WriteString(b.inline(cell))
			sb.WriteString("</td>")
		}
		sb.WriteString("</tr>")
	}
	sb.WriteString("</tbody></table>")
	return sb.String()
}

// asciiTable renders a run of table lines. A change in column count starts a
// new sub-table; sub-tables are separated by <br>.
func (b *block) asciiTable(lines []string) string {
	rows := asciiRows(lines)
	if len(rows) == 0 {
		return b.plain(lines)
	}

	var groups [][][]string
	var current [][]string
	for i, row := range rows {
		if i > 0 && len(row) != len(rows[i-1]) {
			groups = append(groups, current)
			current = nil
		}
		current = append(current, row)
	}
	groups = append(groups, current)

	chunks := make([]string, 0, len(groups))
	for _, g := range groups {
		g = dropEmptyRows(g)
		if len(g) == 0 {
			continue
		}
		chunks = append(chunks, b.tableHTML(normalizeRows(g)))
	}
	return strings.Join(chunks, "<br>")
}

// failedValidationTable renders the table following "FAILED VALIDATIONS:".
// Rows whose first cell is empty continue the previous row.
func (b *block) failedValidationTable(lines []string) string {
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		if dashRule.MatchString(line) && !alphanumeric.MatchString(line) {
			continue
		}
		filtered = append(filtered, line)
	}

	var merged [][]string
	for _, row := range asciiRows(filtered) {
		if len(merged) > 0 && len(row) > 0 && row[0] == "" {
			last := merged[len(merged)-1]
			for i, cell := range row {
				if cell == "" {
					continue
				}
				if i < len(last) {
					last[i] += " " + cell
				} else {
					last = append(last, cell)
				}
			}
			merged[len(merged)-1] = last
			continue
		}
		merged = append(merged, row)
	}

	merged = dropEmptyRows(merged)
	if len(merged) == 0 {
		return b.plain(lines)
	}
	return b.tableHTML(normalizeRows(merged))
}
