package exception

import "errors"

var (
	ErrNilOrder           = errors.New("order: nil order")
	ErrInvalidOrderSide   = errors.New("order: invalid side")
	ErrInvalidOrderType   = errors.New("order: invalid type")
	ErrInvalidOrderPrice  = errors.New("order: price must be > 0")
	ErrInvalidOrderSize   = errors.New("order: size must be > 0")
	ErrDuplicateEntrust   = errors.New("order: duplicate entrust id")
	ErrOrderNotFound      = errors.New("order: entrust id not found")
	ErrOrderFinished      = errors.New("order: already finished")
	ErrFillExceedsEntrust = errors.New("order: fill size exceeds entrust size")
)
