package linker

import (
	"fmt"
	"log"
	"sort"

	"github.com/theoremus-urban-solutions/diary-to-tours/config"
	"github.com/theoremus-urban-solutions/diary-to-tours/geo"
	"github.com/theoremus-urban-solutions/diary-to-tours/ids"
	"github.com/theoremus-urban-solutions/diary-to-tours/survey"
)

// Per-person linked trip numbers share a two-digit identifier block.
const maxLinkedTripsPerPerson = 99

// Linker merges consecutive trip segments split at change-mode stops into
// complete journeys.
type Linker struct {
	cfg     config.LinkerConfig
	transit map[survey.ModeType]bool
}

// New creates a Linker from configuration.
func New(cfg config.LinkerConfig) *Linker {
	transit := make(map[survey.ModeType]bool, len(cfg.TransitModeCodes))
	for _, c := range cfg.TransitModeCodes {
		transit[survey.ModeType(c)] = true
	}
	return &Linker{cfg: cfg, transit: transit}
}

// Link assigns LinkedTripID to every segment in trips and returns the
// aggregated linked trip records. Segments stay linked to their predecessor
// when the previous destination purpose is change-mode and the spatial and
// temporal gaps are within the configured dwell thresholds.
func (l *Linker) Link(trips []survey.UnlinkedTrip) ([]survey.LinkedTrip, error) {
	if len(trips) == 0 {
		log.Printf("linker: no trips to link")
		return nil, nil
	}
	log.Printf("linker: linking %d trip segments", len(trips))

	order := make([]int, len(trips))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ta, tb := &trips[order[a]], &trips[order[b]]
		if ta.PersonID != tb.PersonID {
			return ta.PersonID < tb.PersonID
		}
		if ta.DayID != tb.DayID {
			return ta.DayID < tb.DayID
		}
		if !ta.DepartTime.Equal(tb.DepartTime) {
			return ta.DepartTime.Before(tb.DepartTime)
		}
		return ta.ArriveTime.Before(tb.ArriveTime)
	})

	// Segment groups keyed by linked trip ID, in first-seen order.
	groups := make(map[int64][]*survey.UnlinkedTrip)
	var groupOrder []int64

	var prevPerson int64
	var prev *survey.UnlinkedTrip
	var num int64
	for _, idx := range order {
		t := &trips[idx]
		if t.PersonID != prevPerson {
			prevPerson = t.PersonID
			prev = nil
			num = 0
		}
		if l.startsNewTrip(prev, t) {
			num++
			if num > maxLinkedTripsPerPerson {
				return nil, fmt.Errorf("linker: person %d exceeds %d linked trips", t.PersonID, maxLinkedTripsPerPerson)
			}
		}
		t.LinkedTripID = ids.LinkedTripID(t.DayID, num)
		if _, seen := groups[t.LinkedTripID]; !seen {
			groupOrder = append(groupOrder, t.LinkedTripID)
		}
		groups[t.LinkedTripID] = append(groups[t.LinkedTripID], t)
		prev = t
	}

	linked := make([]survey.LinkedTrip, 0, len(groupOrder))
	for _, id := range groupOrder {
		lt, err := l.aggregate(id, groups[id])
		if err != nil {
			return nil, err
		}
		linked = append(linked, lt)
	}

	log.Printf("linker: %d segments linked into %d trips", len(trips), len(linked))
	return linked, nil
}

// startsNewTrip reports whether t opens a new linked trip rather than
// continuing prev. A segment continues its predecessor only when the
// predecessor ended at a change-mode stop and both the spatial and temporal
// gaps are within the dwell thresholds.
func (l *Linker) startsNewTrip(prev, t *survey.UnlinkedTrip) bool {
	if prev == nil {
		return true
	}
	if prev.DPurpose != survey.PurposeCategory(l.cfg.ChangeModeCode) {
		return true
	}
	gap := geo.Haversine(prev.DLat, prev.DLon, t.OLat, t.OLon)
	if !(gap <= l.cfg.DwellBufferDistanceMeters) {
		return true
	}
	dwell := t.DepartTime.Sub(prev.ArriveTime).Minutes()
	return dwell > l.cfg.MaxDwellTimeMinutes
}

// aggregate collapses a group of segments, already in time order, into one
// linked trip record.
func (l *Linker) aggregate(id int64, segs []*survey.UnlinkedTrip) (survey.LinkedTrip, error) {
	first, last := segs[0], segs[len(segs)-1]

	lt := survey.LinkedTrip{
		LinkedTripID: id,
		PersonID:     first.PersonID,
		HHID:         first.HHID,
		DayID:        first.DayID,
		TravelDOW:    first.TravelDOW,
		DepartTime:   first.DepartTime,
		ArriveTime:   last.ArriveTime,
		OLat:         first.OLat,
		OLon:         first.OLon,
		OPurpose:     first.OPurpose,
		DLat:         last.DLat,
		DLon:         last.DLon,
		DPurpose:     last.DPurpose,
		NumSegments:  len(segs),
	}
	_, lt.LinkedTripNum = ids.Decompose(id, 2)

	var weightSum float64
	lastArrive := last.ArriveTime
	for _, s := range segs {
		lt.DistanceMeters += s.DistanceMeters
		lt.TravelDurationMinutes += s.DurationMinutes
		weightSum += s.TripWeight
		if s.NumTravelers > lt.NumTravelers {
			lt.NumTravelers = s.NumTravelers
		}
		if s.ArriveTime.After(lastArrive) {
			lastArrive = s.ArriveTime
		}
	}
	lt.TripWeight = weightSum / float64(len(segs))
	// Reported arrivals are not always monotone across segments; the trip
	// spans from the first departure to the latest arrival.
	lt.DurationMinutes = lastArrive.Sub(first.DepartTime).Minutes()
	lt.DwellDurationMinutes = lt.DurationMinutes - lt.TravelDurationMinutes

	lt.Mode = l.resolveMode(segs)
	lt.Driver = resolveDriver(segs)

	access, egress, err := l.resolveAccessEgress(segs)
	if err != nil {
		return survey.LinkedTrip{}, fmt.Errorf("linked trip %d: %w", id, err)
	}
	lt.AccessMode, lt.EgressMode = access, egress

	return lt, nil
}

// resolveMode picks the journey mode: the longest transit segment when any
// segment is transit, otherwise the longest segment overall.
func (l *Linker) resolveMode(segs []*survey.UnlinkedTrip) survey.ModeType {
	var bestTransit, bestOther survey.ModeType
	var bestTransitDur, bestOtherDur float64 = -1, -1
	for _, s := range segs {
		dur := s.ArriveTime.Sub(s.DepartTime).Minutes()
		if l.transit[s.Mode] {
			if dur > bestTransitDur {
				bestTransitDur, bestTransit = dur, s.Mode
			}
		} else if dur > bestOtherDur {
			bestOtherDur, bestOther = dur, s.Mode
		}
	}
	if bestTransit != 0 {
		return bestTransit
	}
	return bestOther
}

// resolveAccessEgress derives access and egress modes for journeys with a
// transit leg: the non-transit mode just before the first transit segment
// and just after the last one.
func (l *Linker) resolveAccessEgress(segs []*survey.UnlinkedTrip) (access, egress survey.AccessEgressMode, err error) {
	firstTransit, lastTransit := -1, -1
	for i, s := range segs {
		if l.transit[s.Mode] {
			if firstTransit < 0 {
				firstTransit = i
			}
			lastTransit = i
		}
	}
	if firstTransit < 0 {
		return 0, 0, nil
	}
	for i := firstTransit - 1; i >= 0; i-- {
		if !l.transit[segs[i].Mode] {
			access, err = survey.AccessEgressForMode(segs[i].Mode)
			if err != nil {
				return 0, 0, err
			}
			break
		}
	}
	for i := lastTransit + 1; i < len(segs); i++ {
		if !l.transit[segs[i].Mode] {
			egress, err = survey.AccessEgressForMode(segs[i].Mode)
			if err != nil {
				return 0, 0, err
			}
			break
		}
	}
	return access, egress, nil
}

// resolveDriver collapses segment driver flags: unanimous value wins, all
// missing stays missing, any real mix becomes both.
func resolveDriver(segs []*survey.UnlinkedTrip) survey.Driver {
	uniq := make(map[survey.Driver]bool)
	real := make(map[survey.Driver]bool)
	for _, s := range segs {
		uniq[s.Driver] = true
		if s.Driver != survey.DriverMissing {
			real[s.Driver] = true
		}
	}
	switch {
	case len(uniq) == 1:
		return segs[0].Driver
	case len(real) == 0:
		return survey.DriverMissing
	default:
		return survey.DriverBoth
	}
}
