package enum

// TargetField names the quote field a target-price order fills at.
type TargetField uint8

const (
	_target_field_beg TargetField = iota
	TargetFieldOpen
	TargetFieldHigh
	TargetFieldLow
	TargetFieldClose
	TargetFieldVwap
	_target_field_end
)

func (f TargetField) IsAvailable() bool {
	return f > _target_field_beg && f < _target_field_end
}

func (f TargetField) String() string {
	switch f {
	case TargetFieldOpen:
		return "open"
	case TargetFieldHigh:
		return "high"
	case TargetFieldLow:
		return "low"
	case TargetFieldClose:
		return "close"
	case TargetFieldVwap:
		return "vwap"
	default:
		return "unknown"
	}
}
