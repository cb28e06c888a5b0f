package tours

import (
	"github.com/theoremus-urban-solutions/diary-to-tours/ids"
	"github.com/theoremus-urban-solutions/diary-to-tours/survey"
)

// locateDestinationTimes finds when the tour reached and left its primary
// destination by matching trip ends against the primary coordinate within
// the threshold for its location type. When no trip end matches (reported
// coordinates can disagree with the selected destination by more than the
// threshold), the first non-final arrival and the last non-final departure
// stand in.
func (a *Assembler) locateDestinationTimes(g *tourGroup) {
	nonFinal := g.refs[:len(g.refs)-1]
	if len(nonFinal) == 0 {
		return
	}
	thr := a.threshold(g.primaryType)

	for _, r := range nonFinal {
		if !near(r.lt.DLat, r.lt.DLon, g.primaryDLat, g.primaryDLon, thr) {
			continue
		}
		if r.lt.ArriveTime.After(g.destArrive) {
			g.destArrive = r.lt.ArriveTime
		}
		if r.lt.LinkedTripID > g.destLinkedTripID {
			g.destLinkedTripID = r.lt.LinkedTripID
		}
	}
	if g.destArrive.IsZero() {
		g.destArrive = nonFinal[0].lt.ArriveTime
		g.destLinkedTripID = nonFinal[0].lt.LinkedTripID
	}

	for _, r := range g.refs {
		if !near(r.lt.OLat, r.lt.OLon, g.primaryDLat, g.primaryDLon, thr) {
			continue
		}
		if r.lt.DepartTime.After(g.destDepart) {
			g.destDepart = r.lt.DepartTime
		}
	}
	if g.destDepart.IsZero() {
		g.destDepart = nonFinal[len(nonFinal)-1].lt.DepartTime
	}
}

// assignDirections labels each trip with its half-tour: arrivals up to the
// primary destination are outbound, departures from it onward are inbound,
// and every trip of a subtour is a subtour trip.
func assignDirections(g *tourGroup) {
	subtour := g.refs[0].lt.SubtourNum > 0
	for _, r := range g.refs {
		switch {
		case subtour:
			r.lt.TourDirection = survey.DirectionSubtour
		case !g.destArrive.IsZero() && !r.lt.ArriveTime.After(g.destArrive):
			r.lt.TourDirection = survey.DirectionOutbound
		case !g.destDepart.IsZero() && !r.lt.DepartTime.Before(g.destDepart):
			r.lt.TourDirection = survey.DirectionInbound
		default:
			r.lt.TourDirection = survey.DirectionOutbound
		}
	}
}

// aggregate collapses each tour group into a Tour record.
func (a *Assembler) aggregate(groups []*tourGroup) []survey.Tour {
	tours := make([]survey.Tour, 0, len(groups))
	for _, g := range groups {
		first, last := g.refs[0].lt, g.refs[len(g.refs)-1].lt

		t := survey.Tour{
			TourID:       g.tourID,
			PersonID:     first.PersonID,
			HHID:         first.HHID,
			DayID:        first.DayID,
			TourNum:      first.TourNum,
			SubtourNum:   first.SubtourNum,
			ParentTourID: ids.ParentTourID(first.DayID, first.TourNum),

			OriginLinkedTripID: first.LinkedTripID,
			DestLinkedTripID:   g.destLinkedTripID,

			OriginDepartTime: first.DepartTime,
			OriginArriveTime: last.ArriveTime,
			DestArriveTime:   g.destArrive,
			DestDepartTime:   g.destDepart,

			OLat: first.OLat,
			OLon: first.OLon,
			DLat: g.primaryDLat,
			DLon: g.primaryDLon,

			TourPurpose: g.purpose,

			TripCount:  len(g.refs),
			StopCount:  len(g.refs) - 1,
			SingleTrip: len(g.refs) == 1,
		}

		if first.SubtourNum > 0 {
			t.TourType = survey.TourWorkBased
		} else {
			t.TourType = survey.TourHomeBased
		}
		t.Category = classifyCategory(g.refs[0], g.refs[len(g.refs)-1])
		t.TourMode, t.OutboundMode, t.InboundMode = resolveTourModes(g.refs)

		tours = append(tours, t)
	}
	return tours
}

// classifyCategory checks the tour's home anchors: does it start from home
// and does it end at home.
func classifyCategory(first, last *tripRef) survey.TourCategory {
	switch {
	case first.oIsHome && last.dIsHome:
		return survey.TourComplete
	case first.oIsHome:
		return survey.TourPartialEnd
	case last.dIsHome:
		return survey.TourPartialStart
	default:
		return survey.TourPartialBoth
	}
}

// resolveTourModes picks the overall tour mode and the per-half-tour modes,
// each the highest-priority mode among the relevant trips. Later trips win
// priority ties.
func resolveTourModes(refs []*tripRef) (tour, outbound, inbound survey.ModeType) {
	tourBest, outBest, inBest := -1, -1, -1
	for _, r := range refs {
		if r.modePriority >= tourBest {
			tourBest, tour = r.modePriority, r.lt.Mode
		}
		switch r.lt.TourDirection {
		case survey.DirectionOutbound:
			if r.modePriority >= outBest {
				outBest, outbound = r.modePriority, r.lt.Mode
			}
		case survey.DirectionInbound:
			if r.modePriority >= inBest {
				inBest, inbound = r.modePriority, r.lt.Mode
			}
		}
	}
	return tour, outbound, inbound
}
