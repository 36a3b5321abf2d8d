package scroll

// DefaultTravel is how far, in pixels, a line sits below its resting place
// before it starts to reveal.
const DefaultTravel = 24.0

// Petal scale while hidden; petals grow to 1 once their threshold is crossed.
const petalHiddenScale = 0.6

// LineState is the visual state of one revealed line.
type LineState struct {
	Index   int     `json:"index"`
	Local   float64 `json:"local"`
	Opacity float64 `json:"opacity"`
	OffsetY float64 `json:"offset_y"`
}

// Hidden reports whether the line has not started to reveal.
func (s LineState) Hidden() bool { return s.Local == 0 }

// Settled reports whether the line has fully revealed.
func (s LineState) Settled() bool { return s.Local == 1 }

// LocalProgress maps global progress onto sibling index's even sub-range
// [index/total, (index+1)/total) and rescales it to [0, 1].
func LocalProgress(progress float64, index, total int) float64 {
	if total <= 0 || index < 0 || index >= total {
		return 0
	}
	n := float64(total)
	return Clamp01((Clamp01(progress) - float64(index)/n) * n)
}

// Reveal computes the state of line index among total siblings. It depends
// only on the current progress, so scrolling back up reverses it exactly.
func Reveal(progress float64, index, total int, travel float64) LineState {
	local := LocalProgress(progress, index, total)
	return LineState{
		Index:   index,
		Local:   local,
		Opacity: local,
		OffsetY: travel * (1 - local),
	}
}

// RevealAll computes the state of every line in a group of total siblings.
func RevealAll(progress float64, total int, travel float64) []LineState {
	if total <= 0 {
		return nil
	}
	states := make([]LineState, total)
	for i := range states {
		states[i] = Reveal(progress, i, total, travel)
	}
	return states
}

// PetalState is the visual state of one petal marker.
type PetalState struct {
	Index     int     `json:"index"`
	Threshold float64 `json:"threshold"`
	Visible   bool    `json:"visible"`
	Opacity   float64 `json:"opacity"`
	Scale     float64 `json:"scale"`
}

// PetalThreshold spreads total petals evenly across the open interval (0, 1)
// so none is visible before scrolling starts and all are visible before the
// region ends.
func PetalThreshold(index, total int) float64 {
	if total <= 0 || index < 0 || index >= total {
		return 1
	}
	return float64(index+1) / float64(total+1)
}

// RevealPetal reports whether petal index has crossed its threshold.
func RevealPetal(progress float64, index, total int) PetalState {
	threshold := PetalThreshold(index, total)
	st := PetalState{
		Index:     index,
		Threshold: threshold,
		Scale:     petalHiddenScale,
	}
	if total > 0 && index >= 0 && index < total && Clamp01(progress) >= threshold {
		st.Visible = true
		st.Opacity = 1
		st.Scale = 1
	}
	return st
}

// RevealPetals computes the state of every petal in a map of total markers.
func RevealPetals(progress float64, total int) []PetalState {
	if total <= 0 {
		return nil
	}
	states := make([]PetalState, total)
	for i := range states {
		states[i] = RevealPetal(progress, i, total)
	}
	return states
}
