package logic

import (
	"errors"
	"strings"
	"testing"
)

func TestParseTable_TrimsHeadersAndKeepsExtras(t *testing.T) {
	table, err := ParseTable(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseTable() error = %v", err)
	}
	want := []string{"Category", "Game Name", "Rating", "Position", "Developer"}
	if strings.Join(table.Columns, "|") != strings.Join(want, "|") {
		t.Errorf("Columns = %q, want %q", table.Columns, want)
	}
	if table.Len() != 4 {
		t.Fatalf("rows = %d, want 4", table.Len())
	}
	if table.Rows[2].Extra["Developer"] != "Studio One" {
		t.Errorf("Extra = %v", table.Rows[2].Extra)
	}
}

func TestParseTable_BOMAndBlankLines(t *testing.T) {
	input := "\xEF\xBB\xBFCategory,Game Name,Rating,Position\r\nFree,A,4,1\r\n,,,\r\n\r\nFree,B,Teen,2\r\n"
	table, err := ParseTable(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTable() error = %v", err)
	}
	if table.Columns[0] != "Category" {
		t.Errorf("first column = %q, BOM not stripped", table.Columns[0])
	}
	if table.Len() != 2 {
		t.Fatalf("rows = %d, want 2", table.Len())
	}
	if table.Rows[1].Rating.Numeric || table.Rows[1].Rating.Raw != "Teen" {
		t.Errorf("rating = %+v, want label Teen", table.Rows[1].Rating)
	}
}

func TestParseTable_ShortRows(t *testing.T) {
	table, err := ParseTable(strings.NewReader("Category,Game Name,Rating,Position,Notes\nFree,A,4,1\n"))
	if err != nil {
		t.Fatalf("ParseTable() error = %v", err)
	}
	if v, ok := table.Rows[0].Extra["Notes"]; !ok || v != "" {
		t.Errorf("Notes = %q, %v; want empty value", v, ok)
	}
}

func TestParseTable_Errors(t *testing.T) {
	if _, err := ParseTable(strings.NewReader("  \n")); !errors.Is(err, ErrNoColumns) {
		t.Errorf("blank input: err = %v, want ErrNoColumns", err)
	}
	_, err := ParseTable(strings.NewReader("Category,Game Name,Rating,Position\nFree,A,4,first\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("bad position: err = %v, want line 2 error", err)
	}
}

func TestParseTable_BlankPositionIsUnranked(t *testing.T) {
	table, err := ParseTable(strings.NewReader("Category,Game Name,Rating,Position\nFree,A,4,1\nFree,B,NaN,\nFree,C,3.5,3\n"))
	if err != nil {
		t.Fatalf("ParseTable() error = %v", err)
	}
	if table.Len() != 3 {
		t.Fatalf("rows = %d, want 3", table.Len())
	}
	if table.Rows[1].Ranked() || table.Rows[1].Position != 0 {
		t.Errorf("row B = %+v, want unranked", table.Rows[1])
	}
	if table.Rows[1].Rating.Numeric {
		t.Errorf("rating = %+v, NaN should stay a label", table.Rows[1].Rating)
	}
	if table.Rows[2].Position != 3 {
		t.Errorf("row C position = %d, want 3", table.Rows[2].Position)
	}
}

func TestParseTable_MissingRequiredColumns(t *testing.T) {
	table, err := ParseTable(strings.NewReader("Title,Score\nA,1\n"))
	if err != nil {
		t.Fatalf("ParseTable() error = %v", err)
	}
	if err := ValidateSchema(table); err == nil {
		t.Error("expected schema error")
	}
	if table.Rows[0].Extra["Title"] != "A" {
		t.Errorf("Extra = %v", table.Rows[0].Extra)
	}
}
