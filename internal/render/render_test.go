package render

import (
	"bytes"
	"database/sql"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryRows(t *testing.T, rows *sqlmock.Rows) *sql.Rows {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT").WillReturnRows(rows)
	result, err := db.Query("SELECT 1")
	require.NoError(t, err)
	t.Cleanup(func() { _ = result.Close() })
	return result
}

func TestCollect(t *testing.T) {
	rows := sqlmock.NewRows([]string{"id", "name"}).
		AddRow(1, []byte("alice")).
		AddRow(2, nil)

	rs, err := Collect(queryRows(t, rows))
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, rs.Columns)
	require.Len(t, rs.Records, 2)
	assert.Equal(t, "alice", rs.Records[0][1], "byte slices decode to string")
	assert.Nil(t, rs.Records[1][1])
	assert.Equal(t, "NULL", rs.Cell(1, 1))
}

func TestRows_CSV(t *testing.T) {
	rows := sqlmock.NewRows([]string{"id", "name"}).
		AddRow(1, "alice").
		AddRow(2, "has,comma")

	var buf bytes.Buffer
	err := Rows(&buf, queryRows(t, rows), FormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,name", lines[0])
	assert.Equal(t, "1,alice", lines[1])
	assert.Equal(t, `2,"has,comma"`, lines[2])
}

func TestRows_TSV(t *testing.T) {
	rows := sqlmock.NewRows([]string{"id", "note"}).
		AddRow(1, "tab\there").
		AddRow(2, "line\nbreak")

	var buf bytes.Buffer
	err := Rows(&buf, queryRows(t, rows), FormatTSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3, "escaped cells keep one record per line")
	assert.Equal(t, "id\tnote", lines[0])
	assert.Equal(t, `1	tab\there`, lines[1])
	assert.Equal(t, `2	line\nbreak`, lines[2])
}

func TestRows_JSON(t *testing.T) {
	rows := sqlmock.NewRows([]string{"id"}).AddRow(7)

	var buf bytes.Buffer
	err := Rows(&buf, queryRows(t, rows), FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id": 7}]`, buf.String())
}

func TestRows_JSONNull(t *testing.T) {
	rows := sqlmock.NewRows([]string{"a"}).AddRow(nil)

	var buf bytes.Buffer
	err := Rows(&buf, queryRows(t, rows), FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"a": null}]`, buf.String())
}

func TestRows_TableShowsRowCount(t *testing.T) {
	rows := sqlmock.NewRows([]string{"a"}).AddRow("x").AddRow("y")

	var buf bytes.Buffer
	err := Rows(&buf, queryRows(t, rows), FormatTable)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "(2 rows)")
	assert.Contains(t, buf.String(), "x")
}

func TestRows_Vertical(t *testing.T) {
	rows := sqlmock.NewRows([]string{"id", "customer"}).
		AddRow(1, "alice").
		AddRow(2, nil)

	var buf bytes.Buffer
	err := Rows(&buf, queryRows(t, rows), FormatVertical)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "id        1\n")
	assert.Contains(t, out, "customer  alice\n")
	assert.Contains(t, out, "customer  NULL\n")
	assert.Contains(t, out, "(2 rows)")
	assert.Contains(t, out, "\n\n", "blank line between records")
}

func TestRows_EmptyResult(t *testing.T) {
	rows := sqlmock.NewRows([]string{"a"})

	var buf bytes.Buffer
	err := Rows(&buf, queryRows(t, rows), FormatTable)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "(0 rows)")
}

func TestRows_NullFormatting(t *testing.T) {
	rows := sqlmock.NewRows([]string{"a"}).AddRow(nil)

	var buf bytes.Buffer
	err := Rows(&buf, queryRows(t, rows), FormatCSV)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "NULL")
}

func TestRows_Markdown(t *testing.T) {
	rows := sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "a|b")

	var buf bytes.Buffer
	err := Rows(&buf, queryRows(t, rows), "md")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "| id | name |")
	assert.Contains(t, buf.String(), "| --- | --- |")
	assert.Contains(t, buf.String(), `| 1 | a\|b |`, "pipes in cells are escaped")
}

func TestValidFormatAndFormats(t *testing.T) {
	assert.True(t, ValidFormat("table"))
	assert.True(t, ValidFormat("csv"))
	assert.True(t, ValidFormat("tsv"))
	assert.True(t, ValidFormat("vertical"))
	assert.True(t, ValidFormat("markdown"))
	assert.True(t, ValidFormat("md"))
	assert.False(t, ValidFormat("xml"))

	assert.Equal(t, []string{"csv", "json", "markdown", "table", "tsv", "vertical"}, Formats())
}
