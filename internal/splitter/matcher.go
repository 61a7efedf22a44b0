package splitter

// Pair is an obverse crop and the reverse crop matched to it.
type Pair struct {
	Obverse  Crop    `json:"obverse"`
	Reverse  Crop    `json:"reverse"`
	Distance float64 `json:"distance"`
}

// Match is the outcome of pairing two SplitScans.
type Match struct {
	// Pairs is aligned to the reference scan: Pairs[i].Obverse is the i-th
	// reference crop.
	Pairs []Pair

	// UnmatchedReference and UnmatchedTarget hold the crops left over when
	// the scans found different numbers of objects.
	UnmatchedReference []Crop
	UnmatchedTarget    []Crop
}

// Mismatch returns the number of crops left without a partner.
func (m Match) Mismatch() int {
	return len(m.UnmatchedReference) + len(m.UnmatchedTarget)
}

// Targets returns the matched target crops in reference order.
func (m Match) Targets() []Crop {
	out := make([]Crop, len(m.Pairs))
	for i, p := range m.Pairs {
		out[i] = p.Reverse
	}
	return out
}

// Matcher pairs the crops of two scans of the same sheet.
type Matcher interface {
	Match(reference, target SplitScan) Match
}

// GreedyMatcher walks the reference crops in order and gives each one the
// closest remaining target crop by centroid distance. Ties go to the
// target crop that came first. The result is locally, not globally,
// optimal.
type GreedyMatcher struct{}

// Match pairs reference and target. It never uses a target crop twice and
// returns min(len(reference), len(target)) pairs.
func (GreedyMatcher) Match(reference, target SplitScan) Match {
	remaining := make([]Crop, len(target.Crops))
	copy(remaining, target.Crops)

	var m Match
	for i, ref := range reference.Crops {
		if len(remaining) == 0 {
			m.UnmatchedReference = append(m.UnmatchedReference, reference.Crops[i:]...)
			break
		}

		centroid := ref.Centroid()
		best := 0
		bestDistance := centroid.Distance(remaining[0].Centroid())
		for j := 1; j < len(remaining); j++ {
			if d := centroid.Distance(remaining[j].Centroid()); d < bestDistance {
				best = j
				bestDistance = d
			}
		}

		m.Pairs = append(m.Pairs, Pair{Obverse: ref, Reverse: remaining[best], Distance: bestDistance})
		remaining = append(remaining[:best], remaining[best+1:]...)
	}
	m.UnmatchedTarget = remaining

	return m
}

// ReorderByNearestMatch returns target reordered so that its i-th crop is
// the greedy nearest match of reference's i-th crop. Unmatched target crops
// are dropped.
func ReorderByNearestMatch(reference, target SplitScan) SplitScan {
	m := GreedyMatcher{}.Match(reference, target)
	return SplitScan{Source: target.Source, Crops: m.Targets()}
}
