package database

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Render, sonucu ASCII tablo olarak yazar ve satır sayısını ekler.
//
// Örnek çıktı:
//
//	+----+-------+
//	| id | name  |
//	+----+-------+
//	| 1  | Alice |
//	+----+-------+
//	1 row(s)
func (rs *ResultSet) Render(w io.Writer) error {
	if rs.Len() == 0 {
		_, err := fmt.Fprintln(w, "0 row(s)")
		return err
	}

	data := rs.Values()

	widths := make([]int, len(rs.Columns))
	for i, col := range rs.Columns {
		widths[i] = utf8.RuneCountInString(col)
	}
	for _, row := range data {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	parts := make([]string, len(widths))
	for i, width := range widths {
		parts[i] = strings.Repeat("-", width+2)
	}
	separator := "+" + strings.Join(parts, "+") + "+"

	var sb strings.Builder
	sb.WriteString(separator + "\n")
	sb.WriteString(formatCells(rs.Columns, widths) + "\n")
	sb.WriteString(separator + "\n")
	for _, row := range data {
		sb.WriteString(formatCells(row, widths) + "\n")
	}
	sb.WriteString(separator + "\n")
	fmt.Fprintf(&sb, "%d row(s)\n", len(data))

	_, err := io.WriteString(w, sb.String())
	return err
}

// formatCells, hücreleri sola hizalı ve boşlukla doldurulmuş olarak birleştirir.
func formatCells(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = " " + cell + strings.Repeat(" ", width-utf8.RuneCountInString(cell)+1)
	}
	return "|" + strings.Join(parts, "|") + "|"
}
