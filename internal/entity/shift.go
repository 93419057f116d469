package entity

type DefensiveShift string

const (
	ShiftNormal      DefensiveShift = "normal"
	ShiftPullLeft    DefensiveShift = "pull_left"
	ShiftPullRight   DefensiveShift = "pull_right"
	ShiftExtreme     DefensiveShift = "extreme"
	ShiftInfieldIn   DefensiveShift = "infield_in"
	ShiftInfieldBack DefensiveShift = "infield_back"
)

var Shifts = []DefensiveShift{
	ShiftNormal, ShiftPullLeft, ShiftPullRight, ShiftExtreme, ShiftInfieldIn, ShiftInfieldBack,
}

func (that DefensiveShift) Valid() bool {
	for _, shift := range Shifts {
		if shift == that {
			return true
		}
	}
	return false
}
