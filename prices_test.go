package taxlot

import (
	"bytes"
	"strings"
	"testing"
)

func TestPriceTable_AsOf(t *testing.T) {
	prices := NewPriceTable("USD")
	prices.Append("ETH", day(10), newDecimal(2000))
	prices.Append("ETH", day(20), newDecimal(2500))

	testCases := []struct {
		name  string
		at    int // day offset
		want  Money
		found bool
	}{
		{name: "before first point", at: 5, found: false},
		{name: "on the first point", at: 10, want: M(2000, "USD"), found: true},
		{name: "between points", at: 15, want: M(2000, "USD"), found: true},
		{name: "after last point", at: 30, want: M(2500, "USD"), found: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, found := prices.AsOf("ETH", day(tc.at))
			if found != tc.found {
				t.Fatalf("found = %t, want %t", found, tc.found)
			}
			if found && !got.Equal(tc.want) {
				t.Errorf("AsOf = %s, want %s", got, tc.want)
			}
		})
	}

	if _, found := prices.AsOf("DOGE", day(30)); found {
		t.Error("AsOf on unknown asset: want not found")
	}
}

func TestPriceTable_AppendOutOfOrder(t *testing.T) {
	prices := NewPriceTable("USD")
	prices.Append("ETH", day(20), newDecimal(2500))
	prices.Append("ETH", day(10), newDecimal(2000))

	got, found := prices.AsOf("ETH", day(15))
	if !found {
		t.Fatal("AsOf: want found")
	}
	if want := M(2000, "USD"); !got.Equal(want) {
		t.Errorf("AsOf = %s, want %s", got, want)
	}
}

func TestPriceTable_EncodeDecodeRoundTrip(t *testing.T) {
	prices := NewPriceTable("USD")
	prices.Append("ETH", day(1), newDecimal(2000))
	prices.Append("UNI", day(2), newDecimal(7.5))

	var buf bytes.Buffer
	if err := EncodePriceTable(&buf, prices); err != nil {
		t.Fatalf("EncodePriceTable() error = %v", err)
	}

	decoded, err := DecodePriceTable(&buf, "USD")
	if err != nil {
		t.Fatalf("DecodePriceTable() error = %v", err)
	}
	for _, asset := range []string{"ETH", "UNI"} {
		want, _ := prices.Latest(asset)
		got, found := decoded.Latest(asset)
		if !found || !got.Equal(want) {
			t.Errorf("Latest(%s) = %s (found=%t), want %s", asset, got, found, want)
		}
	}
}

func TestDecodePriceTable_RejectsCurrencyMismatch(t *testing.T) {
	input := `{"asset":"ETH","currency":"EUR","history":{"2024-01-01T00:00:00Z":2000}}` + "\n"
	if _, err := DecodePriceTable(strings.NewReader(input), "USD"); err == nil {
		t.Error("DecodePriceTable() with EUR history into USD table: want error, got nil")
	}
}
