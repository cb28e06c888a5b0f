package tours

// identifyHomeBasedTours numbers home-based tours per person-day. A trip
// opens a new tour when it is the first trip of its person-day, when it
// leaves home, or when the previous trip returned home. Tour numbering
// restarts with each diary day, so a day that begins away from home opens a
// partial tour rather than continuing the previous day's.
func (a *Assembler) identifyHomeBasedTours(refs []*tripRef) {
	type personDay struct{ person, day int64 }
	counts := make(map[personDay]int)

	var prev *tripRef
	for _, r := range refs {
		lt := r.lt
		if prev != nil && (prev.lt.PersonID != lt.PersonID || prev.lt.DayID != lt.DayID) {
			prev = nil
		}
		boundary := prev == nil || r.oIsHome || prev.dIsHome

		k := personDay{lt.PersonID, lt.DayID}
		if boundary {
			counts[k]++
		}
		lt.TourNum = counts[k]
		prev = r
	}
}

// markAnchorPeriods finds each tour's anchor period: the stretch between the
// first arrival at and the last departure from the person's usual workplace,
// or usual school when the tour never touches the workplace. Matching is by
// proximity to the usual location only, ignoring reported purposes, so that
// a work stop reported as "errand" still anchors the period.
func (a *Assembler) markAnchorPeriods(groups []*tourGroup, people map[int64]*personInfo) {
	for _, g := range groups {
		for i, r := range g.refs {
			r.numInTour = i + 1
		}

		atO, atD := anchorMatchers(g.refs)
		if atO == nil {
			continue
		}
		g.anchorStart, g.anchorEnd = 0, 0
		for _, r := range g.refs {
			if atD(r) && g.anchorStart == 0 {
				g.anchorStart = r.numInTour
			}
			if atO(r) {
				g.anchorEnd = r.numInTour
			}
		}
	}
}

// anchorMatchers picks the anchor location for a tour. Usual workplace wins
// when any trip end touches it; otherwise usual school. Tours touching
// neither have no anchor and the matchers are nil.
func anchorMatchers(refs []*tripRef) (atOrigin, atDest func(*tripRef) bool) {
	for _, r := range refs {
		if r.atUsualWorkO || r.atUsualWorkD {
			return func(r *tripRef) bool { return r.atUsualWorkO },
				func(r *tripRef) bool { return r.atUsualWorkD }
		}
	}
	for _, r := range refs {
		if r.atUsualSchoolO || r.atUsualSchoolD {
			return func(r *tripRef) bool { return r.atUsualSchoolO },
				func(r *tripRef) bool { return r.atUsualSchoolD }
		}
	}
	return nil, nil
}

// detectSubtours numbers work-based subtours inside each tour's anchor
// period. A subtour opens when a trip strictly inside the period leaves the
// anchor, and closes when a later trip arrives back at it. Excursions that
// never return stay part of the parent tour. Returns the total number of
// subtours assigned.
func detectSubtours(groups []*tourGroup) int {
	total := 0
	for _, g := range groups {
		if g.anchorEnd-g.anchorStart < 2 {
			continue
		}
		atO, atD := anchorMatchers(g.refs)

		sub := 0
		var pending []*tripRef
		for _, r := range g.refs {
			if r.numInTour <= g.anchorStart || r.numInTour >= g.anchorEnd {
				continue
			}
			if pending == nil {
				if atO(r) && !atD(r) {
					pending = []*tripRef{r}
				}
				continue
			}
			pending = append(pending, r)
			if atD(r) {
				sub++
				for _, pr := range pending {
					pr.lt.SubtourNum = sub
				}
				pending = nil
			}
		}
		total += sub
	}
	return total
}
