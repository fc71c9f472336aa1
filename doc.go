// Package taxlot computes realized capital gains for on-chain asset
// movements using FIFO (first-in, first-out) lot matching. It is designed
// to stay useful on imperfect explorer data: data-quality issues degrade
// into annotated results instead of aborting a report.
//
// The core functionalities include:
//   - Lot Ledger: per-asset FIFO queues of open lots, consumed oldest-first
//     by disposals, with partial-lot splitting and holding-period
//     classification at disposal time.
//   - Report Aggregation: replaying a chronological stream of transfer
//     events through a fresh ledger and reducing the resulting disposals
//     into a yearly tax summary or a per-asset PnL view.
//   - Transfer Feeds: decoding transfer events from JSONL files or fetching
//     them from an Etherscan-compatible explorer API, scaled to decimal
//     quantities and priced from a supplied price table.
//   - Report Export: rendering disposals as CSV rows in several named
//     profiles (generic, turbotax, koinly).
//
// This package serves as the foundational logic for the `tlr` command-line
// tool.
package taxlot
