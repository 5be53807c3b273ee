package psc

// AddToHistory feeds one good frame into the concealer. If it arrives
// after an erasure burst, it first reconverges the just-synthesized
// tail toward this real frame (spec section 4.1, "Reconvergence"),
// mutating frame in place; frame is otherwise copied into history
// unchanged. Returns the delayed output window (poverlapmax samples
// behind frame), which the caller should substitute in place of frame
// for this tick's output, mirroring the reference's
// save_speech/add_to_history split.
func (c *Concealer) AddToHistory(frame []int16) []int16 {
	if c.erasecnt > 0 {
		olen := c.poverlap + c.erasecnt*c.eoverlapincr + c.sbcrt
		if olen > c.framesz {
			olen = c.framesz
		}
		overlapBuf := make([]int16, olen)
		c.getFESpeech(overlapBuf, olen)
		c.overlapAddAtEnd(frame, overlapBuf, olen)
		c.erasecnt = 0
	}

	if c.cfg.ComfortNoise {
		c.updateLPC(frame)
	}

	return c.saveSpeech(frame)
}

// overlapAddAtEnd blends the synthetic tail f (length cnt) into s,
// replacing the first sbcrt samples outright and linearly cross-fading
// the remainder, per spec section 4.1's reconvergence OLA
// (g711plc_overlapaddatend). gain is the same linear decay scaleSpeech
// would have applied to this erasure's final synthesized frame.
func (c *Concealer) overlapAddAtEnd(s, f []int16, cnt int) {
	gain := 1 - float32(c.erasecnt-1)*c.attenfac
	if gain < 0 {
		gain = 0
	}

	replace := c.sbcrt
	if replace > cnt {
		replace = cnt
	}
	for i := 0; i < replace; i++ {
		s[i] = saturateInt16(float32(f[i]) * gain)
	}

	rampLen := cnt - replace
	if rampLen <= 0 {
		return
	}
	incr := float32(1) / float32(rampLen)
	lw := (1 - incr) * gain
	rw := incr
	for i := 0; i < rampLen; i++ {
		idx := replace + i
		t := lw*float32(f[idx]) + rw*float32(s[idx])
		s[idx] = saturateInt16(t)
		lw -= incr * gain
		rw += incr
	}
}

// DoFE ("do frame erasure") synthesizes framesz concealed samples for
// one lost frame, per the four-way branch in spec section 4.1. Callers
// must alternate calls with AddToHistory to match the real arrival
// pattern of good and lost frames.
func (c *Concealer) DoFE(out []int16) {
	currentEnergy := logEnergy(c.corrminpower)

	switch {
	case c.erasecnt == 0:
		c.convertHistoryToPitchbuf()
		if c.cfg.AdaptivePitch {
			c.pitch = c.enhancedFindPitch()
		} else {
			c.pitch = c.findPitch()
		}
		c.poverlap = c.pitch / 4

		copy(c.lastq, c.pitchbuf[c.pitchbufend-c.poverlap:c.pitchbufend])
		c.poffset = 0
		c.pitchblen = c.pitch
		c.pitchbufstart = c.pitchbufend - c.pitchblen

		blended := make([]float32, c.poverlap)
		overlapAddFloat(c.lastq, c.pitchbuf[c.pitchbufstart-c.poverlap:c.pitchbufstart], blended, c.poverlap)
		copy(c.pitchbuf[c.pitchbufend-c.poverlap:c.pitchbufend], blended)
		for i := 0; i < c.poverlap; i++ {
			c.history[c.historylen-c.poverlap+i] = int16(c.pitchbuf[c.pitchbufend-c.poverlap+i])
		}

		c.getFESpeech(out, c.framesz)
		c.recordErasureEnergy(currentEnergy)

	case c.erasecnt == 1 || c.erasecnt == 2:
		tmp := make([]int16, c.poverlapmax)
		saveOffset := c.poffset
		c.getFESpeech(tmp[:c.poverlap], c.poverlap)
		c.poffset = saveOffset
		for c.poffset > c.pitch {
			c.poffset -= c.pitch
		}
		c.pitchblen += c.pitch
		c.pitchbufstart = c.pitchbufend - c.pitchblen

		blended := make([]float32, c.poverlap)
		overlapAddFloat(c.lastq, c.pitchbuf[c.pitchbufstart-c.poverlap:c.pitchbufstart], blended, c.poverlap)
		copy(c.pitchbuf[c.pitchbufend-c.poverlap:c.pitchbufend], blended)

		c.getFESpeech(out, c.framesz)
		overlapAddShort(tmp[:c.poverlap], out[:c.poverlap], out[:c.poverlap], c.poverlap)
		c.scaleSpeech(out)

	case c.erasecnt > c.cfg.FadingCount:
		if c.cfg.ComfortNoise {
			c.generateComfortNoise(out)
		} else {
			for i := range out {
				out[i] = 0
			}
		}

	default:
		c.getFESpeech(out, c.framesz)
		if c.cfg.AdaptivePitch {
			energyDiff := currentEnergy - c.prevEnergy
			if energyDiff < 0 {
				energyDiff = -energyDiff
			}
			if energyDiff < 10 {
				c.alpha = computeDynamicAlpha(c.alpha, currentEnergy, c.prevEnergy)
				c.applyPerceptualWeight(out)
			}
		}
		if c.cfg.NonLinearAtten {
			nonlinearAttenuation(out, c.erasecnt, c.pitch)
		} else {
			c.scaleSpeech(out)
		}
	}

	c.prevEnergy = currentEnergy
	c.erasecnt++
	c.saveSpeech(out)
}
