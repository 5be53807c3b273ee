package psc

import "math"

// findPitch performs the plain coarse-then-fine correlation pitch
// search described in spec section 4.1. l is the last corrlen samples
// of pitchbuf (the 20 ms target window); r starts pitch_max samples
// before l (the search area). Returns a pitch period clamped to
// [pitch_min, pitch_max] by construction of the search range.
func (c *Concealer) findPitch() int {
	lBase := c.pitchbufend - c.corrlen
	rBase := c.pitchbufend - c.corrbuflen

	var energy, corr float32
	for i := 0; i < c.corrlen; i += c.ndec {
		r := c.pitchbuf[rBase+i]
		energy += r * r
		corr += r * c.pitchbuf[lBase+i]
	}
	scale := energy
	if scale < c.corrminpower {
		scale = c.corrminpower
	}
	bestCorr := corr / float32(math.Sqrt(float64(scale)))
	bestMatch := 0

	for j := c.ndec; j <= c.pitchdiff; j += c.ndec {
		leaving := c.pitchbuf[rBase+j-c.ndec]
		entering := c.pitchbuf[rBase+j-c.ndec+c.corrlen]
		energy += entering*entering - leaving*leaving

		var c2 float32
		for i := 0; i < c.corrlen; i += c.ndec {
			c2 += c.pitchbuf[rBase+j+i] * c.pitchbuf[lBase+i]
		}
		scale = energy
		if scale < c.corrminpower {
			scale = c.corrminpower
		}
		score := c2 / float32(math.Sqrt(float64(scale)))
		if score >= bestCorr {
			bestCorr = score
			bestMatch = j
		}
	}

	// Fine search around the coarse winner, full stride.
	lo := bestMatch - (c.ndec - 1)
	if lo < 0 {
		lo = 0
	}
	hi := bestMatch + (c.ndec - 1)
	if hi > c.pitchdiff {
		hi = c.pitchdiff
	}
	fineBest := bestMatch
	fineBestCorr := bestCorr
	first := true
	for j := lo; j <= hi; j++ {
		var e, cr float32
		for i := 0; i < c.corrlen; i++ {
			r := c.pitchbuf[rBase+j+i]
			e += r * r
			cr += r * c.pitchbuf[lBase+i]
		}
		scale = e
		if scale < c.corrminpower {
			scale = c.corrminpower
		}
		score := cr / float32(math.Sqrt(float64(scale)))
		if first || score > fineBestCorr {
			fineBestCorr = score
			fineBest = j
			first = false
		}
	}

	return c.pitchMax - fineBest
}

type pitchCandidate struct {
	score float32
	index int
}

// enhancedFindPitch is the adaptive pitch search: it collects the three
// best lags by squared normalized cross-correlation, refines only
// around the top candidate, then applies a continuity override that
// prefers a candidate close to the previous pitch, with a tolerance that
// widens from 5% to 15% when the frame-to-frame energy swings by more
// than 10 dB. Per spec section 9's open question, only this
// dynamic-tolerance pass is implemented (the reference's earlier
// fixed-tolerance pass is dead code and is not reproduced).
func (c *Concealer) enhancedFindPitch() int {
	lBase := c.pitchbufend - c.corrlen
	rBase := c.pitchbufend - c.corrbuflen

	var candidates [3]pitchCandidate
	for i := range candidates {
		candidates[i].score = -1e9
	}

	score := func(j int) float32 {
		var energy, corr float32
		for i := 0; i < c.corrlen; i++ {
			r := c.pitchbuf[rBase+j+i]
			energy += r * r
			corr += r * c.pitchbuf[lBase+i]
		}
		return (corr * corr) / (energy + 1e-6)
	}

	for j := 0; j <= c.pitchdiff; j += c.ndec {
		nccf := score(j)
		switch {
		case nccf > candidates[0].score:
			candidates[2] = candidates[1]
			candidates[1] = candidates[0]
			candidates[0] = pitchCandidate{nccf, j}
		case nccf > candidates[1].score:
			candidates[2] = candidates[1]
			candidates[1] = pitchCandidate{nccf, j}
		case nccf > candidates[2].score:
			candidates[2] = pitchCandidate{nccf, j}
		}
	}

	bestMatch := candidates[0].index
	bestScore := candidates[0].score
	lo := bestMatch - (c.ndec - 1)
	if lo < 0 {
		lo = 0
	}
	hi := bestMatch + (c.ndec - 1)
	if hi > c.pitchdiff {
		hi = c.pitchdiff
	}
	for j := lo; j <= hi; j++ {
		if nccf := score(j); nccf > bestScore {
			bestScore = nccf
			bestMatch = j
		}
	}

	finalPitch := c.pitchMax - bestMatch

	currentEnergy := logEnergy(c.corrminpower)
	energyDiff := float32(math.Abs(float64(currentEnergy - c.prevEnergy)))
	tolerance := float32(0.05)
	if energyDiff > 10 {
		tolerance = 0.15
	}
	for i := range candidates {
		candidatePitch := c.pitchMax - candidates[i].index
		if float32(math.Abs(float64(candidatePitch-c.lastPitch))) < tolerance*float32(c.lastPitch) {
			finalPitch = candidatePitch
			break
		}
	}

	c.lastPitch = finalPitch
	return finalPitch
}
