package qm

import "sort"

// firstGeneration converts normalized minterms into generation-1 terms:
// duplicates are collapsed, terms are sorted by their number of positive
// literals and rows are assigned in that order.
func firstGeneration(minterms []Minterm) []*Term {
	byKey := make(map[string]*Term, len(minterms))
	terms := make([]*Term, 0, len(minterms))
	for _, m := range minterms {
		key := termString(m.Literals)
		if t, ok := byKey[key]; ok {
			// A row that is both a plain minterm and a don't care is
			// treated as a plain minterm.
			if !m.DontCare {
				t.DontCare = false
			}
			continue
		}
		t := &Term{
			Literals:   m.Literals,
			Ones:       countOnes(m.Literals),
			Generation: 1,
			Binary:     binaryPattern(m.Literals),
			DontCare:   m.DontCare,
		}
		byKey[key] = t
		terms = append(terms, t)
	}
	sort.SliceStable(terms, func(i, j int) bool { return terms[i].Ones < terms[j].Ones })
	for row, t := range terms {
		t.Row = row
		t.Source = []int{row}
	}
	return terms
}

// combine merges every combinable pair of generation gen terms and appends
// the resulting generation gen+1 to the term list. Two terms combine when
// they are identical except for one literal's polarity; both parents are
// then marked used and the child drops that literal. Children with the same
// literal set are collapsed into a single row whose source is the union of
// all parents' sources. combine reports whether it produced anything.
func combine(terms []*Term, gen, nbVars int) ([]*Term, bool) {
	buckets := make([][]*Term, nbVars+1)
	for _, t := range terms {
		if t.Generation == gen {
			buckets[t.Ones] = append(buckets[t.Ones], t)
		}
	}
	byKey := make(map[string]*Term)
	var produced []*Term
	for ones := 0; ones < nbVars; ones++ {
		for _, x := range buckets[ones] {
			for _, y := range buckets[ones+1] {
				drop, ok := combinable(x, y)
				if !ok {
					continue
				}
				x.Used = true
				y.Used = true
				source := mergeSources(x.Source, y.Source)
				lits := dropLiteral(x.Literals, drop)
				key := termString(lits)
				if t, ok := byKey[key]; ok {
					t.Source = mergeSources(t.Source, source)
					continue
				}
				t := &Term{
					Literals:   lits,
					Ones:       countOnes(lits),
					Source:     source,
					Generation: gen + 1,
					Final:      None,
				}
				byKey[key] = t
				produced = append(produced, t)
			}
		}
	}
	if len(produced) == 0 {
		return terms, false
	}
	sort.SliceStable(produced, func(i, j int) bool { return produced[i].Ones < produced[j].Ones })
	for i, t := range produced {
		t.Row = len(terms) + i
	}
	return append(terms, produced...), true
}

// combinable reports whether x and y differ in exactly one literal's
// polarity and are otherwise identical, returning the index of that
// literal. Both literal slices are sorted by name.
func combinable(x, y *Term) (int, bool) {
	if len(x.Literals) != len(y.Literals) {
		return 0, false
	}
	diff := -1
	for i := range x.Literals {
		a, b := x.Literals[i], y.Literals[i]
		if a.Name != b.Name {
			return 0, false
		}
		if a.Negated != b.Negated {
			if diff >= 0 {
				return 0, false
			}
			diff = i
		}
	}
	if diff < 0 {
		return 0, false
	}
	return diff, true
}

// markDontCares flags terms covering nothing but don't-care rows. Such
// terms must never be selected into the cover on their own.
func markDontCares(terms []*Term, dcRows map[int]bool) {
	if len(dcRows) == 0 {
		return
	}
	for _, t := range terms {
		if t.Generation == 1 {
			continue
		}
		dc := true
		for _, s := range t.Source {
			if !dcRows[s] {
				dc = false
				break
			}
		}
		t.DontCare = dc
	}
}
