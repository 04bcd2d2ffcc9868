// Package render formats query results for the terminal. A result set
// is drained once into memory, then handed to the renderer registered
// for the active output format; the shell enumerates the same registry
// for !outputformat validation and completion.
package render

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Format names accepted by Rows. "md" is an alias for markdown.
const (
	FormatTable    = "table"
	FormatVertical = "vertical"
	FormatCSV      = "csv"
	FormatTSV      = "tsv"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// ResultSet is one drained query result: column names in select order
// and raw cell values, with []byte already decoded to string.
type ResultSet struct {
	Columns []string
	Records [][]any
}

// Cell returns the display form of one value. NULL is spelled out so
// it cannot be mistaken for an empty string.
func (rs *ResultSet) Cell(row, col int) string {
	v := rs.Records[row][col]
	if v == nil {
		return "NULL"
	}
	return fmt.Sprint(v)
}

// Collect drains rows into a ResultSet. The caller keeps ownership of
// rows and closes them.
func Collect(rows *sql.Rows) (*ResultSet, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	rs := &ResultSet{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		rs.Records = append(rs.Records, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rs, nil
}

type renderFunc func(w io.Writer, rs *ResultSet) error

var renderers = map[string]renderFunc{
	FormatTable:    renderTable,
	FormatVertical: renderVertical,
	FormatCSV:      renderCSV,
	FormatTSV:      renderTSV,
	FormatJSON:     renderJSON,
	FormatMarkdown: renderMarkdown,
}

func canonical(name string) string {
	if name == "md" {
		return FormatMarkdown
	}
	return name
}

// ValidFormat reports whether name selects a known renderer.
func ValidFormat(name string) bool {
	_, ok := renderers[canonical(name)]
	return ok
}

// Formats returns the canonical format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Rows drains rows and renders them to w in the given format. Unknown
// formats fall back to the table renderer.
func Rows(w io.Writer, rows *sql.Rows, format string) error {
	rs, err := Collect(rows)
	if err != nil {
		return err
	}
	render, ok := renderers[canonical(format)]
	if !ok {
		render = renderTable
	}
	return render(w, rs)
}

func renderTable(w io.Writer, rs *ResultSet) error {
	if len(rs.Records) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(rs.Columns))
	for i, col := range rs.Columns {
		header[i] = col
	}
	t.AppendHeader(header)

	for i := range rs.Records {
		row := make(table.Row, len(rs.Columns))
		for j := range rs.Columns {
			row[j] = rs.Cell(i, j)
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(rs.Records))
	return nil
}

// renderVertical prints one name/value line per column with a blank
// line between records. Wide rows stay readable on narrow terminals.
func renderVertical(w io.Writer, rs *ResultSet) error {
	width := 0
	for _, col := range rs.Columns {
		if len(col) > width {
			width = len(col)
		}
	}
	for i := range rs.Records {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		for j, col := range rs.Columns {
			_, _ = fmt.Fprintf(w, "%-*s  %s\n", width, col, rs.Cell(i, j))
		}
	}
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(rs.Records))
	return nil
}

func renderCSV(w io.Writer, rs *ResultSet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rs.Columns); err != nil {
		return err
	}
	rec := make([]string, len(rs.Columns))
	for i := range rs.Records {
		for j := range rs.Columns {
			rec[j] = rs.Cell(i, j)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// renderTSV joins cells with tabs, escaping embedded tabs and line
// breaks so each record stays on one line.
func renderTSV(w io.Writer, rs *ResultSet) error {
	esc := strings.NewReplacer("\t", `\t`, "\n", `\n`, "\r", `\r`)
	_, _ = fmt.Fprintln(w, strings.Join(rs.Columns, "\t"))
	cells := make([]string, len(rs.Columns))
	for i := range rs.Records {
		for j := range rs.Columns {
			cells[j] = esc.Replace(rs.Cell(i, j))
		}
		_, _ = fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	return nil
}

// renderJSON emits an array of objects keyed by column name. SQL NULL
// becomes JSON null rather than the "NULL" display form.
func renderJSON(w io.Writer, rs *ResultSet) error {
	out := make([]map[string]any, len(rs.Records))
	for i, rec := range rs.Records {
		obj := make(map[string]any, len(rs.Columns))
		for j, col := range rs.Columns {
			obj[col] = rec[j]
		}
		out[i] = obj
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func renderMarkdown(w io.Writer, rs *ResultSet) error {
	if len(rs.Records) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	esc := strings.NewReplacer("|", `\|`, "\n", "<br>", "\r", "")
	writeRow := func(cells []string) {
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
	}

	writeRow(rs.Columns)
	seps := make([]string, len(rs.Columns))
	for i := range seps {
		seps[i] = "---"
	}
	writeRow(seps)

	cells := make([]string, len(rs.Columns))
	for i := range rs.Records {
		for j := range rs.Columns {
			cells[j] = esc.Replace(rs.Cell(i, j))
		}
		writeRow(cells)
	}
	return nil
}
