package enum

type OrderType uint8

const (
	_order_type_beg OrderType = iota
	OrderTypeLimit
	OrderTypeStop
	OrderTypeMarket
	OrderTypeTargetPrice
	OrderTypeVwap
	_order_type_end
)

func (t OrderType) IsAvailable() bool {
	return t > _order_type_beg && t < _order_type_end
}

func (t OrderType) String() string {
	switch t {
	case OrderTypeLimit:
		return "Limit"
	case OrderTypeStop:
		return "Stop"
	case OrderTypeMarket:
		return "Market"
	case OrderTypeTargetPrice:
		return "TargetPrice"
	case OrderTypeVwap:
		return "Vwap"
	default:
		return "Unknown"
	}
}
