package taxlot

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
)

func testReport(t *testing.T) *Report {
	t.Helper()
	events := []TransferEvent{
		in("TOKEN", 100, 1, day(0), "0xa"),
		in("TOKEN", 50, 2, day(1), "0xb"),
		out("TOKEN", 120, 3, day(2), "0xc"),
	}
	return Run(events, Range{})
}

func TestParseExportProfile(t *testing.T) {
	for _, p := range []ExportProfile{Generic, TurboTax, Koinly} {
		parsed, err := ParseExportProfile(p.String())
		if err != nil {
			t.Fatalf("ParseExportProfile(%q) error = %v", p, err)
		}
		if parsed != p {
			t.Errorf("ParseExportProfile(%q) = %v, want %v", p, parsed, p)
		}
	}
	if _, err := ParseExportProfile("cointracker"); err == nil {
		t.Error("ParseExportProfile(cointracker): want error, got nil")
	}
}

func TestExportCSV_Generic(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportCSV(&buf, testReport(t), Generic); err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header + 1 disposal", len(rows))
	}
	if rows[0][3] != "Proceeds (USD)" {
		t.Errorf("header = %q, want Proceeds (USD)", rows[0][3])
	}
	want := []string{"2024-01-03 00:00:00", "TOKEN", "120", "360.00", "140.00", "220.00", "short_term", "false", "0xc"}
	for i, cell := range want {
		if rows[1][i] != cell {
			t.Errorf("row[%d] = %q, want %q", i, rows[1][i], cell)
		}
	}
}

func TestExportCSV_TurboTax(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportCSV(&buf, testReport(t), TurboTax); err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header + 1 disposal", len(rows))
	}
	if rows[1][0] != "120 TOKEN" {
		t.Errorf("description = %q, want %q", rows[1][0], "120 TOKEN")
	}
	// FIFO can span several lots, so the acquisition date is not a single day.
	if rows[1][1] != "Various" {
		t.Errorf("date acquired = %q, want Various", rows[1][1])
	}
	if rows[1][7] != "220.00" {
		t.Errorf("gain = %q, want 220.00", rows[1][7])
	}
}

func TestExportCSV_Koinly(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportCSV(&buf, testReport(t), Koinly); err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header + 1 disposal", len(rows))
	}
	if !strings.Contains(strings.Join(rows[0], ","), "Net Worth Amount") {
		t.Errorf("header = %v, missing Net Worth Amount", rows[0])
	}
	if rows[1][1] != "120" || rows[1][2] != "TOKEN" {
		t.Errorf("sent = %q %q, want 120 TOKEN", rows[1][1], rows[1][2])
	}
	if rows[1][10] != "0xc" {
		t.Errorf("tx hash = %q, want 0xc", rows[1][10])
	}
}
