package seq

import "sync"

// Counter keys shared by the engines and gateways.
const (
	KeyTask    = "task_no"
	KeyEntrust = "entrust_no"
	KeyFill    = "fill_no"
	KeyTrade   = "trade_id"
)

// Generator issues strictly increasing integers per key. Counters are
// independent across keys and live as long as the generator; a fresh
// generator is constructed at each trading-day boundary instead of
// resetting counters in place.
type Generator struct {
	mu   sync.Mutex
	next map[string]int64
}

// NewGenerator creates an empty generator. Every key starts at 1.
func NewGenerator() *Generator {
	return &Generator{next: make(map[string]int64)}
}

// Next returns the next value for the key, starting from 1.
func (g *Generator) Next(key string) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next[key]++
	return g.next[key]
}

// DayID composes a day-scoped identifier: tradeDate*10000 + n.
// The decimal layout is shared with downstream logs and tooling and
// must not change. With YYYYMMDD dates the composed value stays far
// below the int64 range; running one session long enough to overflow
// the 4-digit sequence slot is a configuration error.
func DayID(tradeDate, n int64) int64 {
	return tradeDate*10000 + n
}

// NextDayID mints the next day-scoped identifier for the key.
func (g *Generator) NextDayID(key string, tradeDate int64) int64 {
	return DayID(tradeDate, g.Next(key))
}
