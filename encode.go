package taxlot

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// This file handles the transfer import/export format: a JSONL stream, one
// transfer event per line. It is human readable, single file, and easy to
// diff or merge.

// DecodeTransfers decodes transfer events from a JSONL stream and returns
// them sorted by ascending time. Sorting is part of the feed contract: the
// ledger itself requires ordered input and never sorts.
func DecodeTransfers(r io.Reader) ([]TransferEvent, error) {
	var events []TransferEvent
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e TransferEvent
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("cannot parse transfer line %q: %w", string(line), err)
		}
		events = append(events, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading transfers: %w", err)
	}

	SortEvents(events)
	return events, nil
}

// EncodeTransfer marshals a single event and writes it as one JSONL line.
func EncodeTransfer(w io.Writer, e TransferEvent) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal transfer %q: %w", e.TxRef, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transfer: %w", err)
	}
	return nil
}

// EncodeTransfers reorders events by time and persists them to an io.Writer
// in JSONL format. The sort is stable, so events sharing a timestamp keep
// their relative order and the output is canonical.
func EncodeTransfers(w io.Writer, events []TransferEvent) error {
	SortEvents(events)
	for _, e := range events {
		if err := EncodeTransfer(w, e); err != nil {
			return err
		}
	}
	return nil
}
