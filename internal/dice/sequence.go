package dice

// Sequence replays fixed rolls in order and wraps around when exhausted.
// It is meant for pinning specific outcomes in tests.
type Sequence struct {
	rolls []float64
	next  int
}

func NewSequence(rolls ...float64) *Sequence {
	if len(rolls) == 0 {
		rolls = []float64{50}
	}
	return &Sequence{rolls: rolls}
}

func (that *Sequence) Roll() float64 {
	roll := that.rolls[that.next%len(that.rolls)]
	that.next++
	return roll
}

// Used returns how many rolls have been consumed.
func (that *Sequence) Used() int {
	return that.next
}
