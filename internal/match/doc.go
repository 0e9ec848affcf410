// Package match holds the two simulation matching engines: OrderBook
// matches resting orders against OHLC bars for event-driven replay, and
// Simulator matches against per-symbol daily snapshots for goal/basket
// flows. Each engine instance is single-writer; a fresh instance is
// constructed at every trading-day boundary instead of being reset.
package match
