package taxlot

import (
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

const explorerApiKeyEnv = "EXPLORER_API_KEY"

var explorerApiFlag = flag.String("explorer-api-key", "", "Explorer API key used when fetching address history.\n If missing it will read the environment variable \""+explorerApiKeyEnv+"\".")

func explorerApiKey() string {
	// If the flag is not set, we try to read it from the environment variable.
	if *explorerApiFlag == "" {
		*explorerApiFlag = os.Getenv(explorerApiKeyEnv)
	}
	return *explorerApiFlag
}

// ExplorerFeed builds transfer events for one address from an
// Etherscan-compatible explorer REST API.
//
// The explorer returns integer minor-unit strings; the feed scales them by
// token decimals into exact quantities and stamps each event with the unit
// price at event time from the price table. Events the feed cannot price are
// kept, valued at zero and reported as warnings, so downstream reports can
// show where confidence is low.
type ExplorerFeed struct {
	BaseURL        string      // e.g. https://api.etherscan.io/api
	NativeSymbol   string      // e.g. ETH
	NativeDecimals int32       // e.g. 18
	Prices         *PriceTable // unit prices in the reporting currency
	Client         *http.Client
}

// NewExplorerFeed creates a feed over the given explorer endpoint with a
// daily-expiring disk cache on all requests.
func NewExplorerFeed(baseURL string, prices *PriceTable) *ExplorerFeed {
	return &ExplorerFeed{
		BaseURL:        baseURL,
		NativeSymbol:   "ETH",
		NativeDecimals: 18,
		Prices:         prices,
		Client:         daily(),
	}
}

// Transfers fetches the native transactions and token transfers of the
// address and converts them into a single time-ordered event stream.
func (f *ExplorerFeed) Transfers(address string, limit int) ([]TransferEvent, []Warning, error) {
	var events []TransferEvent
	var warnings []Warning

	native, err := f.fetch("txlist", address, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot fetch transactions for %q: %w", address, err)
	}
	for _, row := range native {
		e, warning, ok := f.event(row, address, f.NativeSymbol, f.NativeDecimals)
		if warning != nil {
			warnings = append(warnings, *warning)
		}
		if ok {
			events = append(events, e)
		}
	}

	tokens, err := f.fetch("tokentx", address, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot fetch token transfers for %q: %w", address, err)
	}
	for _, row := range tokens {
		symbol := str(row, "tokenSymbol")
		if symbol == "" {
			symbol = "UNKNOWN"
		}
		decimals := int32(18)
		if d, err := strconv.ParseInt(str(row, "tokenDecimal"), 10, 32); err == nil {
			decimals = int32(d)
		}
		e, warning, ok := f.event(row, address, symbol, decimals)
		if warning != nil {
			warnings = append(warnings, *warning)
		}
		if ok {
			events = append(events, e)
		}
	}

	SortEvents(events)
	return events, warnings, nil
}

// fetch queries one explorer action and returns the result rows.
func (f *ExplorerFeed) fetch(action, address string, limit int) ([]any, error) {
	params := url.Values{}
	params.Set("module", "account")
	params.Set("action", action)
	params.Set("address", address)
	params.Set("startblock", "0")
	params.Set("endblock", "99999999")
	params.Set("page", "1")
	params.Set("offset", strconv.Itoa(limit))
	params.Set("sort", "asc")
	if key := explorerApiKey(); key != "" {
		params.Set("apikey", key)
	}

	var jobj interface{}
	if err := jwget(f.Client, f.BaseURL+"?"+params.Encode(), &jobj); err != nil {
		return nil, fmt.Errorf("error in wget %q: %w", action, err)
	}

	jval, err := jsonpath.Get("$.result", jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q response: %w", action, err)
	}
	rows, ok := jval.([]any)
	if !ok {
		// On errors the explorer puts a string in "result" and the reason in "message".
		message, _ := jsonpath.Get("$.message", jobj)
		return nil, fmt.Errorf("explorer %q returned no result rows: %v", action, message)
	}
	return rows, nil
}

// event converts one explorer row into a TransferEvent.
// The second return is an optional data-quality warning; the third is false
// when the row does not produce an event at all.
func (f *ExplorerFeed) event(row any, address, symbol string, decimals int32) (TransferEvent, *Warning, bool) {
	txRef := str(row, "hash")

	raw, err := decimal.NewFromString(str(row, "value"))
	if err != nil || raw.IsZero() {
		// Zero-value transactions (approvals, contract calls) carry no asset movement.
		return TransferEvent{}, nil, false
	}
	quantity := Q(raw.Shift(-decimals))

	seconds, err := strconv.ParseInt(str(row, "timeStamp"), 10, 64)
	if err != nil {
		return TransferEvent{}, &Warning{TxRef: txRef, Reason: "dropped: unreadable timestamp"}, false
	}
	at := time.Unix(seconds, 0).UTC()

	direction := In
	if strings.EqualFold(str(row, "from"), address) {
		direction = Out
	}

	unitValue, priced := f.Prices.AsOf(symbol, at)
	var warning *Warning
	if !priced {
		unitValue = M(0, f.Prices.Currency())
		warning = &Warning{TxRef: txRef, Reason: fmt.Sprintf("no price for %s at %s, valued at zero", symbol, at.Format(time.RFC3339))}
	}

	return TransferEvent{
		Asset:     symbol,
		Quantity:  quantity,
		Direction: direction,
		UnitValue: unitValue,
		Time:      at,
		TxRef:     txRef,
	}, warning, true
}

// str reads a string field from a decoded explorer row.
func str(row any, field string) string {
	m, ok := row.(map[string]any)
	if !ok {
		return ""
	}
	s, _ := m[field].(string)
	return s
}
