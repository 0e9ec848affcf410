package ops

import "fmt"

// Universe stores the tradable symbol set for a session in a compact,
// order-preserving form.
type Universe struct {
	symbols []string
	index   map[string]int
}

// NewUniverse creates an empty universe.
func NewUniverse() *Universe {
	return &Universe{index: make(map[string]int)}
}

// Add registers a symbol, rejecting blanks and duplicates.
func (u *Universe) Add(symbol string) error {
	if symbol == "" {
		return fmt.Errorf("symbol name is empty")
	}
	if _, ok := u.index[symbol]; ok {
		return fmt.Errorf("symbol already exists: %s", symbol)
	}
	u.index[symbol] = len(u.symbols)
	u.symbols = append(u.symbols, symbol)
	return nil
}

// Contains reports whether the symbol is tradable this session.
func (u *Universe) Contains(symbol string) bool {
	_, ok := u.index[symbol]
	return ok
}

// Symbols returns the symbols in registration order.
func (u *Universe) Symbols() []string {
	out := make([]string, len(u.symbols))
	copy(out, u.symbols)
	return out
}

// Count returns the number of registered symbols.
func (u *Universe) Count() int {
	return len(u.symbols)
}
