package textpage

// RuleSegment is a candidate underline/strikeout rule: a thin filled or
// stroked rectangle the content-stream collaborator reports whenever it
// draws one, independent of the glyphs it might annotate.
type RuleSegment struct {
	X0, Y0, X1, Y1 float64
}

// AddRuleSegment tests a candidate underline rule against every line
// already coalesced on the page and marks the lines it underlines; the
// segment itself is not stored. This matches
// TextOutputDev's rule-to-line association (spec.md's SUPPLEMENTED
// FEATURES: underline/strikeout passthrough). Call after Coalesce(), since
// it walks p.Blocks.
func (p *Page) AddRuleSegment(seg RuleSegment) {
	for _, b := range p.Blocks {
		for _, l := range b.Lines {
			if ruleUnderlines(seg, l) {
				l.Underlined = true
			}
		}
	}
}

// ruleUnderlines reports whether seg lies close enough to line's baseline
// and covers enough of its horizontal extent to count as an underline.
func ruleUnderlines(seg RuleSegment, l *Line) bool {
	if len(l.Words) == 0 {
		return false
	}
	fontSize := l.Words[0].FontSize
	baseline := l.Rot.SecondaryOf(l.XMin, l.YMax)

	segY := (seg.Y0 + seg.Y1) / 2
	if l.Rot == Rotate90 || l.Rot == Rotate270 {
		segY = (seg.X0 + seg.X1) / 2
	}
	if absF(segY-baseline) > underlineSlack*fontSize {
		return false
	}

	segLo, segHi := minF(seg.X0, seg.X1), maxF(seg.X0, seg.X1)
	lineLo, lineHi := l.XMin, l.XMax
	if l.Rot == Rotate90 || l.Rot == Rotate270 {
		segLo, segHi = minF(seg.Y0, seg.Y1), maxF(seg.Y0, seg.Y1)
		lineLo, lineHi = l.YMin, l.YMax
	}
	overlapLo, overlapHi := maxF(segLo, lineLo), minF(segHi, lineHi)
	if overlapHi <= overlapLo {
		return false
	}
	cover := (overlapHi - overlapLo) / (lineHi - lineLo)
	return cover >= underlineMinCover
}
