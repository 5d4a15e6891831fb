package models

import (
	"encoding/json"
	"testing"
)

func TestParseRating(t *testing.T) {
	tests := []struct {
		raw         string
		wantNumeric bool
		wantValue   float64
		wantKey     string
	}{
		{raw: "4.5", wantNumeric: true, wantValue: 4.5, wantKey: "4.5"},
		{raw: " 4.50 ", wantNumeric: true, wantValue: 4.5, wantKey: "4.5"},
		{raw: "5", wantNumeric: true, wantValue: 5, wantKey: "5"},
		{raw: "12+", wantNumeric: false, wantKey: "12+"},
		{raw: "Editors' Choice", wantNumeric: false, wantKey: "Editors' Choice"},
		{raw: "", wantNumeric: false, wantKey: ""},
		{raw: "NaN", wantNumeric: false, wantKey: "NaN"},
		{raw: "Inf", wantNumeric: false, wantKey: "Inf"},
		{raw: "-Infinity", wantNumeric: false, wantKey: "-Infinity"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			r := ParseRating(tt.raw)
			if r.Numeric != tt.wantNumeric {
				t.Fatalf("Numeric = %v, want %v", r.Numeric, tt.wantNumeric)
			}
			if tt.wantNumeric && r.Value != tt.wantValue {
				t.Errorf("Value = %f, want %f", r.Value, tt.wantValue)
			}
			if r.Key() != tt.wantKey {
				t.Errorf("Key() = %q, want %q", r.Key(), tt.wantKey)
			}
		})
	}
}

func TestRatingJSON(t *testing.T) {
	b, err := json.Marshal([]Rating{ParseRating("4.5"), ParseRating("4+")})
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	if string(b) != `[4.5,"4+"]` {
		t.Errorf("json = %s, want [4.5,\"4+\"]", b)
	}

	var got []Rating
	if err := json.Unmarshal([]byte(`[4.5, "3.9", "Teen"]`), &got); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if !got[0].Numeric || got[0].Value != 4.5 {
		t.Errorf("got[0] = %+v, want numeric 4.5", got[0])
	}
	if !got[1].Numeric || got[1].Value != 3.9 {
		t.Errorf("got[1] = %+v, want numeric 3.9", got[1])
	}
	if got[2].Numeric || got[2].Raw != "Teen" {
		t.Errorf("got[2] = %+v, want label Teen", got[2])
	}
}

func TestRatingJSON_NonFiniteStaysLabel(t *testing.T) {
	b, err := json.Marshal(LeaderboardRow{GameName: "Game A", Rating: ParseRating("NaN"), Position: 1})
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	var row LeaderboardRow
	if err := json.Unmarshal(b, &row); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if row.Rating.Numeric || row.Rating.Raw != "NaN" {
		t.Errorf("rating = %+v, want label NaN", row.Rating)
	}
}

func TestRatingJSON_KeepsSourceText(t *testing.T) {
	b, err := json.Marshal(ParseRating("4.50"))
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	if string(b) != "4.50" {
		t.Errorf("json = %s, want 4.50", b)
	}

	var r Rating
	if err := json.Unmarshal(b, &r); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if !r.Numeric || r.Value != 4.5 || r.Raw != "4.50" {
		t.Errorf("rating = %+v, want numeric 4.5 with raw 4.50", r)
	}
}

func TestParsePosition(t *testing.T) {
	if p, err := ParsePosition(" 7 "); err != nil || p != 7 {
		t.Errorf("ParsePosition(7) = %d, %v", p, err)
	}
	if p, err := ParsePosition("3.0"); err != nil || p != 3 {
		t.Errorf("ParsePosition(3.0) = %d, %v", p, err)
	}
	if _, err := ParsePosition("first"); err == nil {
		t.Error("ParsePosition(first) expected error")
	}
	if _, err := ParsePosition("NaN"); err == nil {
		t.Error("ParsePosition(NaN) expected error")
	}
	if p, err := ParsePosition("  "); err != nil || p != 0 {
		t.Errorf("ParsePosition(blank) = %d, %v; want unranked", p, err)
	}
}

func TestUnrankedRow(t *testing.T) {
	row := LeaderboardRow{GameName: "Game A"}
	if row.Ranked() {
		t.Error("row without position should be unranked")
	}
	if v := row.Value(ColumnPosition); v != "" {
		t.Errorf("Value(Position) = %q, want empty", v)
	}
	if _, ok := row.Number(ColumnPosition); ok {
		t.Error("Number(Position) should report no value")
	}
}

func TestParseRegionAndPlatform(t *testing.T) {
	regions := map[string]Region{
		"AE":                   RegionUAE,
		"uae":                  RegionUAE,
		"United Arab Emirates": RegionUAE,
		"saudi arabia":         RegionSaudiArabia,
		"KSA":                  RegionSaudiArabia,
		"ma":                   RegionMorocco,
	}
	for in, want := range regions {
		got, ok := ParseRegion(in)
		if !ok || got != want {
			t.Errorf("ParseRegion(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
	if _, ok := ParseRegion("France"); ok {
		t.Error("ParseRegion(France) should fail")
	}

	if p, ok := ParsePlatform("iOS"); !ok || p != PlatformIOS {
		t.Errorf("ParsePlatform(iOS) = %q, %v", p, ok)
	}
	if p, ok := ParsePlatform("ANDROID"); !ok || p != PlatformAndroid {
		t.Errorf("ParsePlatform(ANDROID) = %q, %v", p, ok)
	}
	if _, ok := ParsePlatform("windows"); ok {
		t.Error("ParsePlatform(windows) should fail")
	}
}

func TestTableRecords(t *testing.T) {
	table := &LeaderboardTable{
		Columns: []string{"Position", "Game Name", "Category", "Rating", "Developer"},
		Rows: []LeaderboardRow{
			{Category: "Free", GameName: "Game A", Rating: ParseRating("4.5"), Position: 1, Extra: map[string]string{"Developer": "Studio"}},
		},
	}
	recs := table.Records()
	if len(recs) != 2 {
		t.Fatalf("len(Records) = %d, want 2", len(recs))
	}
	want := []string{"1", "Game A", "Free", "4.5", "Studio"}
	for i, v := range want {
		if recs[1][i] != v {
			t.Errorf("recs[1][%d] = %q, want %q", i, recs[1][i], v)
		}
	}
}
