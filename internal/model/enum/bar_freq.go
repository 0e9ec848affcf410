package enum

// BarFreq is the bar interval fed to the bar matching engine.
type BarFreq uint8

const (
	_bar_freq_beg BarFreq = iota
	BarFreqTick
	BarFreqMin
	BarFreqFiveMin
	BarFreqQuarterMin
	BarFreqSpecial
	BarFreqDaily
	_bar_freq_end
)

func (f BarFreq) IsAvailable() bool {
	return f > _bar_freq_beg && f < _bar_freq_end
}

func (f BarFreq) String() string {
	switch f {
	case BarFreqTick:
		return "Tick"
	case BarFreqMin:
		return "1M"
	case BarFreqFiveMin:
		return "5M"
	case BarFreqQuarterMin:
		return "15S"
	case BarFreqSpecial:
		return "Special"
	case BarFreqDaily:
		return "Daily"
	default:
		return "Unknown"
	}
}
