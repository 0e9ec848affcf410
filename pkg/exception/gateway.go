package exception

import "errors"

var (
	ErrMissingBrokerAddress = errors.New("gateway: missing broker address")
	ErrMissingCredentials   = errors.New("gateway: missing broker credentials")
	ErrNilBrokerClient      = errors.New("gateway: nil broker client")
	ErrTaskNotFound         = errors.New("gateway: task id not found")
	ErrDuplicateTask        = errors.New("gateway: duplicate task id")
	ErrEmptyGoalPositions   = errors.New("gateway: empty target position list")
	ErrEmptyBatch           = errors.New("gateway: empty order batch")
	ErrGatewayClosed        = errors.New("gateway: closed")
	ErrExternalIDRemapped   = errors.New("gateway: external id already mapped")
	ErrTaskRemapped         = errors.New("gateway: task already mapped to an external id")
)

var (
	ErrBusQueueFull   = errors.New("bus: event queue full")
	ErrBusClosed      = errors.New("bus: closed")
	ErrNoBusHandler   = errors.New("bus: no handler for event type")
	ErrNilBusHandler  = errors.New("bus: nil handler")
	ErrUnknownBusType = errors.New("bus: unknown event type")
)
