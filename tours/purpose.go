package tours

import (
	"fmt"

	"github.com/theoremus-urban-solutions/diary-to-tours/survey"
)

// Home never wins primary-purpose selection.
const homePurposePriority = 999

// scoreTrips computes the per-trip inputs to purpose selection: the
// destination purpose priority for the person's category, the mode priority
// from the configured hierarchy, and the activity duration at the
// destination. The last trip of a person-day has no following departure, so
// it gets the configured default activity duration.
func (a *Assembler) scoreTrips(refs []*tripRef, people map[int64]*personInfo) error {
	for i, r := range refs {
		lt := r.lt
		r.lastOfDay = i == len(refs)-1 ||
			refs[i+1].lt.PersonID != lt.PersonID ||
			refs[i+1].lt.DayID != lt.DayID
		if r.lastOfDay {
			r.activityMinutes = a.cfg.DefaultActivityDurationMinutes
		} else {
			r.activityMinutes = refs[i+1].lt.DepartTime.Sub(lt.ArriveTime).Minutes()
		}

		cat := survey.CategoryOther
		if info := people[lt.PersonID]; info != nil {
			cat = info.category
		}
		pr, err := a.purposePriority(cat, lt.DPurpose)
		if err != nil {
			return err
		}
		r.purposePriority = pr
		r.modePriority = a.modePriority(lt.Mode)
	}
	return nil
}

// purposePriority looks up the priority of a destination purpose for a
// person category. Non-home purposes absent from the configured table are
// fatal rather than ranked by default.
func (a *Assembler) purposePriority(cat survey.PersonCategory, p survey.PurposeCategory) (int, error) {
	if p == survey.PurposeHome {
		return homePurposePriority, nil
	}
	table, ok := a.cfg.PurposePriority[string(cat)]
	if !ok {
		return 0, fmt.Errorf("tours: no purpose priorities configured for person category %q", cat)
	}
	pr, ok := table[int(p)]
	if !ok {
		return 0, fmt.Errorf("tours: purpose category %d has no priority configured for person category %q", p, cat)
	}
	return pr, nil
}

// modePriority is the mode's position in the configured hierarchy; later
// positions outrank earlier ones. Modes outside the hierarchy rank lowest.
func (a *Assembler) modePriority(m survey.ModeType) int {
	for i, c := range a.cfg.ModeHierarchy {
		if survey.ModeType(c) == m {
			return i
		}
	}
	return -1
}

// selectPurposeAndDestination picks the tour's primary purpose and primary
// destination from its non-final trips: lowest priority value wins, ties
// broken by the longest activity duration. Single-trip tours have no
// non-final destination and keep a zero purpose.
func (a *Assembler) selectPurposeAndDestination(g *tourGroup) {
	candidates := g.refs[:len(g.refs)-1]
	if len(candidates) == 0 {
		g.primaryDLat, g.primaryDLon = nanPair()
		return
	}

	best := candidates[0]
	for _, r := range candidates[1:] {
		if r.purposePriority < best.purposePriority ||
			(r.purposePriority == best.purposePriority && r.activityMinutes > best.activityMinutes) {
			best = r
		}
	}

	g.purpose = best.lt.DPurpose
	g.primaryDLat, g.primaryDLon = best.lt.DLat, best.lt.DLon
	switch {
	case best.dIsHome:
		g.primaryType = locHome
	case best.dIsWork:
		g.primaryType = locWork
	case best.dIsSchool:
		g.primaryType = locSchool
	default:
		g.primaryType = locOther
	}
}
