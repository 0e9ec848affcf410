package exception

import "errors"

var (
	ErrBrokerReject       = errors.New("broker: request rejected")
	ErrBrokerNotConnected = errors.New("broker: not connected")
)
