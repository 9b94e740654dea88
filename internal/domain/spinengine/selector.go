package spinengine

import "sort"

// Candidate is one reward entering the weighted draw, with its golden-hour
// boost already resolved.
type Candidate struct {
	RewardID        string
	BaseProbability float64
	Multiplier      float64
}

// EffectiveProbability is the boosted win probability, capped at 1.
func (c Candidate) EffectiveProbability() float64 {
	p := c.BaseProbability * c.Multiplier
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}

	return p
}

// Outcome is the result of one draw. A zero RewardID means no win.
type Outcome struct {
	RewardID             string
	Won                  bool
	BaseProbability      float64
	Multiplier           float64
	EffectiveProbability float64
}

// NewCandidate builds a draw candidate, substituting the fallback probability
// when the reward does not define its own.
func NewCandidate(rewardID string, winProbability, fallbackProbability, multiplier float64) Candidate {
	base := winProbability
	if base <= 0 {
		base = fallbackProbability
	}

	return Candidate{
		RewardID:        rewardID,
		BaseProbability: base,
		Multiplier:      multiplier,
	}
}

// SelectOutcome partitions [0, 1) into one segment per candidate, ordered by
// reward id ascending, each sized to the candidate's effective probability,
// and maps the residual segment to no win. If the effective probabilities sum
// above 1 they are proportionally normalized first. The function is pure:
// identical (candidates, u) always yield the same outcome, which lets an
// audit replay any recorded draw.
func SelectOutcome(candidates []Candidate, u float64) Outcome {
	if len(candidates) == 0 {
		return Outcome{Multiplier: 1}
	}

	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].RewardID < ordered[j].RewardID
	})

	total := 0.0
	for _, c := range ordered {
		total += c.EffectiveProbability()
	}

	scale := 1.0
	if total > 1 {
		scale = 1 / total
	}

	cumulative := 0.0
	for _, c := range ordered {
		cumulative += c.EffectiveProbability() * scale
		if u < cumulative {
			return Outcome{
				RewardID:             c.RewardID,
				Won:                  true,
				BaseProbability:      c.BaseProbability,
				Multiplier:           c.Multiplier,
				EffectiveProbability: c.EffectiveProbability(),
			}
		}
	}

	return Outcome{Multiplier: 1}
}
