package exception

import "errors"

var (
	ErrEmptyQuote              = errors.New("match: nil or empty quote snapshot")
	ErrQuoteNotFound           = errors.New("match: no quote for symbol")
	ErrTickMatchUnsupported    = errors.New("match: tick level matching is not supported")
	ErrUnknownFreq             = errors.New("match: unknown bar frequency")
	ErrWindowedVwapUnsupported = errors.New("match: vwap over a time window is not supported")
	ErrUnknownTargetField      = errors.New("match: unknown target price field")
)
