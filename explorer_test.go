package taxlot

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testAddress = "0xabc0000000000000000000000000000000000001"

func newTestExplorer(t *testing.T) (*ExplorerFeed, *httptest.Server) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("action") {
		case "txlist":
			fmt.Fprint(w, `{"status":"1","message":"OK","result":[
				{"hash":"0xn1","timeStamp":"1650000000","from":"`+testAddress+`","to":"0xother","value":"1000000000000000000"},
				{"hash":"0xn2","timeStamp":"1640000000","from":"0xother","to":"`+testAddress+`","value":"0"}
			]}`)
		case "tokentx":
			fmt.Fprint(w, `{"status":"1","message":"OK","result":[
				{"hash":"0xt1","timeStamp":"1640000000","from":"0xother","to":"`+testAddress+`","value":"2500000","tokenSymbol":"USDC","tokenDecimal":"6"}
			]}`)
		default:
			fmt.Fprint(w, `{"status":"0","message":"NOTOK","result":"Error! Missing action"}`)
		}
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	prices := NewPriceTable("USD")
	prices.Append("USDC", time.Unix(1600000000, 0).UTC(), newDecimal(1))

	feed := NewExplorerFeed(server.URL+"/api", prices)
	feed.Client = server.Client() // no disk cache in tests
	return feed, server
}

func TestExplorerFeed_Transfers(t *testing.T) {
	feed, _ := newTestExplorer(t)

	events, warnings, err := feed.Transfers(testAddress, 100)
	if err != nil {
		t.Fatalf("Transfers() error = %v", err)
	}

	// the zero-value transaction is dropped, the two movements remain,
	// sorted ascending by time.
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2: %+v", len(events), events)
	}

	usdc := events[0]
	if usdc.Asset != "USDC" || usdc.Direction != In {
		t.Errorf("first event = %s %s, want USDC in", usdc.Asset, usdc.Direction)
	}
	// 2500000 minor units at 6 decimals.
	if !usdc.Quantity.Equal(Q(2.5)) {
		t.Errorf("USDC quantity = %s, want 2.5", usdc.Quantity)
	}
	if want := M(1, "USD"); !usdc.UnitValue.Equal(want) {
		t.Errorf("USDC unit value = %s, want %s", usdc.UnitValue, want)
	}

	eth := events[1]
	if eth.Asset != "ETH" || eth.Direction != Out {
		t.Errorf("second event = %s %s, want ETH out", eth.Asset, eth.Direction)
	}
	if !eth.Quantity.Equal(Q(1)) {
		t.Errorf("ETH quantity = %s, want 1", eth.Quantity)
	}
	if !eth.Time.Equal(time.Unix(1650000000, 0).UTC()) {
		t.Errorf("ETH time = %s, want %s", eth.Time, time.Unix(1650000000, 0).UTC())
	}

	// ETH has no price in the table: valued at zero with a warning.
	if !eth.UnitValue.IsZero() {
		t.Errorf("ETH unit value = %s, want 0", eth.UnitValue)
	}
	if len(warnings) != 1 || warnings[0].TxRef != "0xn1" {
		t.Errorf("warnings = %v, want one for 0xn1", warnings)
	}
}

func TestExplorerFeed_ErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"0","message":"NOTOK","result":"Max rate limit reached"}`)
	}))
	t.Cleanup(server.Close)

	feed := NewExplorerFeed(server.URL, NewPriceTable("USD"))
	feed.Client = server.Client()

	if _, _, err := feed.Transfers(testAddress, 10); err == nil {
		t.Error("Transfers() on explorer error: want error, got nil")
	}
}
