package types

const MpsToKph = 3.6

type Wind struct {
	SpeedInMps float64
	SpeedInKph float64
}

func NewWindFromMps(speedInMps float64) Wind {
	return Wind{
		SpeedInMps: speedInMps,
		SpeedInKph: speedInMps * MpsToKph,
	}
}

// RoundedKph is the wind speed in whole km/h
func (w Wind) RoundedKph() int {
	return RoundHalfUp(w.SpeedInKph)
}
