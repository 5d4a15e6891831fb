package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/gamecharts/leaderboard-dashboard/internal/models"
)

func detailedView() *models.DashboardView {
	all := &models.LeaderboardTable{
		Columns: []string{"Category", "Game Name", "Rating", "Position", "Developer"},
		Rows: []models.LeaderboardRow{
			{Category: "Free", GameName: "Game A", Rating: models.ParseRating("4.5"), Position: 1, Extra: map[string]string{"Developer": "One"}},
			{Category: "Paid", GameName: "Game B", Rating: models.ParseRating("Teen"), Position: 1, Extra: map[string]string{"Developer": "Two"}},
		},
	}
	return &models.DashboardView{
		Detailed: &models.DetailedView{All: all, Category: all.WithRows(all.Rows[:1])},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, detailedView()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	x, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer x.Close()

	sheets := x.GetSheetList()
	if len(sheets) != 2 || sheets[0] != SheetAll || sheets[1] != SheetCategory {
		t.Fatalf("sheets = %v", sheets)
	}

	rows, err := x.GetRows(SheetAll)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0][1] != "Game Name" || rows[1][1] != "Game A" || rows[2][4] != "Two" {
		t.Errorf("rows = %v", rows)
	}
	if rows[1][2] != "4.5" || rows[2][2] != "Teen" {
		t.Errorf("ratings = %q, %q", rows[1][2], rows[2][2])
	}

	catRows, err := x.GetRows(SheetCategory)
	if err != nil {
		t.Fatal(err)
	}
	if len(catRows) != 2 {
		t.Errorf("category rows = %d, want 2", len(catRows))
	}
}

func TestWorkbook_NoDetailedView(t *testing.T) {
	if _, err := Workbook(&models.DashboardView{}); err == nil {
		t.Error("expected error without detailed view")
	}
}
