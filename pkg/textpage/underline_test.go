package textpage

import "testing"

func TestAddRuleSegmentMarksLineUnderlined(t *testing.T) {
	words := []*Word{makeWord("Hello", 10, 0, 50, 10, 0, 5)}
	p := buildTestPage(t, words, 200, 200)

	// Word box is YMin=5, YMax=15 (base 10, fontSize 10); its baseline is
	// YMax per ruleUnderlines, so a rule segment just below that counts.
	p.AddRuleSegment(RuleSegment{X0: 0, Y0: 15.2, X1: 50, Y1: 15.2})

	if !p.Blocks[0].Lines[0].Underlined {
		t.Errorf("Underlined = false, want true for a rule covering the full line")
	}
}

func TestAddRuleSegmentIgnoresShortCoverage(t *testing.T) {
	words := []*Word{makeWord("Hello", 10, 0, 50, 10, 0, 5)}
	p := buildTestPage(t, words, 200, 200)

	p.AddRuleSegment(RuleSegment{X0: 0, Y0: 15.2, X1: 5, Y1: 15.2})

	if p.Blocks[0].Lines[0].Underlined {
		t.Errorf("Underlined = true, want false for a rule covering only a tiny fraction of the line")
	}
}

func TestAddRuleSegmentIgnoresDistantY(t *testing.T) {
	words := []*Word{makeWord("Hello", 10, 0, 50, 10, 0, 5)}
	p := buildTestPage(t, words, 200, 200)

	p.AddRuleSegment(RuleSegment{X0: 0, Y0: 100, X1: 50, Y1: 100})

	if p.Blocks[0].Lines[0].Underlined {
		t.Errorf("Underlined = true, want false for a rule far from the baseline")
	}
}
