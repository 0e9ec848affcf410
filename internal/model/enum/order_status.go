package enum

// OrderStatus tracks the order lifecycle. Transitions are monotone:
// New -> PartiallyFilled -> Filled, or New -> Cancelled. Filled and
// Cancelled are terminal.
type OrderStatus uint8

const (
	_order_status_beg OrderStatus = iota
	OrderStatusNew
	OrderStatusPartiallyFilled
	OrderStatusFilled
	OrderStatusCancelled
	_order_status_end
)

func (s OrderStatus) IsAvailable() bool {
	return s > _order_status_beg && s < _order_status_end
}

// Finished reports whether the status is terminal.
func (s OrderStatus) Finished() bool {
	return s == OrderStatusFilled || s == OrderStatusCancelled
}

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusNew:
		return "New"
	case OrderStatusPartiallyFilled:
		return "PartiallyFilled"
	case OrderStatusFilled:
		return "Filled"
	case OrderStatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}
