package tours

import (
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"github.com/theoremus-urban-solutions/diary-to-tours/config"
	"github.com/theoremus-urban-solutions/diary-to-tours/ids"
	"github.com/theoremus-urban-solutions/diary-to-tours/survey"
)

// Identifier suffix digits limit tours per person-day and subtours per tour.
const (
	maxToursPerDay     = 9
	maxSubtoursPerTour = 99
)

// Assembler extracts tours and work-based subtours from linked trips.
type Assembler struct {
	cfg config.ToursConfig
}

// NewAssembler creates an Assembler from configuration.
func NewAssembler(cfg config.ToursConfig) *Assembler {
	return &Assembler{cfg: cfg}
}

// personInfo caches the per-person attributes tour extraction reads.
type personInfo struct {
	category  survey.PersonCategory
	homeLat   float64
	homeLon   float64
	workLat   float64
	workLon   float64
	schoolLat float64
	schoolLon float64
}

// tripRef is the per-trip working state accumulated across the extraction
// stages. It points into the caller's slice so annotations land on the
// records themselves.
type tripRef struct {
	lt *survey.LinkedTrip

	oIsHome, dIsHome     bool
	oIsWork, dIsWork     bool
	oIsSchool, dIsSchool bool

	atUsualWorkO, atUsualWorkD     bool
	atUsualSchoolO, atUsualSchoolD bool

	numInTour int
	lastOfDay bool

	purposePriority int
	modePriority    int
	activityMinutes float64
}

// tourGroup is one tour's trips in time order plus the attributes derived
// from them.
type tourGroup struct {
	tourID int64
	refs   []*tripRef

	anchorStart int
	anchorEnd   int

	purpose     survey.PurposeCategory
	primaryDLat float64
	primaryDLon float64
	primaryType locationType

	destArrive       time.Time
	destDepart       time.Time
	destLinkedTripID int64
}

// Assemble annotates trips with tour assignments and returns the tour
// table. Trips must already carry linked trip identifiers.
func (a *Assembler) Assemble(persons []survey.Person, households []survey.Household, trips []survey.LinkedTrip) ([]survey.Tour, error) {
	if len(trips) == 0 {
		log.Printf("tours: no linked trips, nothing to assemble")
		return nil, nil
	}

	people, err := a.personIndex(persons, households)
	if err != nil {
		return nil, err
	}
	log.Printf("tours: assembling tours for %d persons, %d linked trips", len(people), len(trips))

	refs := make([]*tripRef, len(trips))
	for i := range trips {
		refs[i] = &tripRef{lt: &trips[i]}
	}
	sort.SliceStable(refs, func(i, j int) bool {
		ta, tb := refs[i].lt, refs[j].lt
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

	a.classifyLocations(refs, people)
	a.identifyHomeBasedTours(refs)

	groups := groupByTour(refs)
	a.markAnchorPeriods(groups, people)
	nSubtours := detectSubtours(groups)
	log.Printf("tours: detected %d work and school based subtours", nSubtours)

	// Subtour assignment changes grouping keys, so compose identifiers and
	// regroup before aggregation.
	if err := composeTourIDs(refs); err != nil {
		return nil, err
	}
	groups = groupByTour(refs)

	if err := a.scoreTrips(refs, people); err != nil {
		return nil, err
	}
	for _, g := range groups {
		a.selectPurposeAndDestination(g)
		a.locateDestinationTimes(g)
		assignDirections(g)
	}

	tours := a.aggregate(groups)
	a.validateAndCorrect(tours, groups)

	sort.SliceStable(tours, func(i, j int) bool {
		if tours[i].PersonID != tours[j].PersonID {
			return tours[i].PersonID < tours[j].PersonID
		}
		if tours[i].DayID != tours[j].DayID {
			return tours[i].DayID < tours[j].DayID
		}
		return tours[i].OriginDepartTime.Before(tours[j].OriginDepartTime)
	})

	log.Printf("tours: assembled %d tours from %d linked trips", len(tours), len(trips))
	return tours, nil
}

// personIndex joins household home locations onto persons and resolves each
// person's category, deriving the person type when the input omits it.
func (a *Assembler) personIndex(persons []survey.Person, households []survey.Household) (map[int64]*personInfo, error) {
	homes := make(map[int64]survey.Household, len(households))
	for _, h := range households {
		homes[h.HHID] = h
	}

	people := make(map[int64]*personInfo, len(persons))
	for _, p := range persons {
		pt := p.PersonType
		if pt == 0 {
			pt = survey.DerivePersonType(p)
		}
		cat, ok := survey.CategoryForPersonType[pt]
		if !ok {
			return nil, fmt.Errorf("tours: person %d has unmapped person type %d", p.PersonID, pt)
		}
		info := &personInfo{
			category:  cat,
			homeLat:   math.NaN(),
			homeLon:   math.NaN(),
			workLat:   p.WorkLat,
			workLon:   p.WorkLon,
			schoolLat: p.SchoolLat,
			schoolLon: p.SchoolLon,
		}
		if h, ok := homes[p.HHID]; ok {
			info.homeLat, info.homeLon = h.HomeLat, h.HomeLon
		}
		people[p.PersonID] = info
	}
	return people, nil
}

// composeTourIDs writes tour and parent tour identifiers onto the trips,
// bound-checking the sequence numbers against their identifier digits.
func composeTourIDs(refs []*tripRef) error {
	for _, r := range refs {
		lt := r.lt
		if lt.TourNum > maxToursPerDay {
			return fmt.Errorf("tours: person %d day %d has more than %d tours", lt.PersonID, lt.DayID, maxToursPerDay)
		}
		if lt.SubtourNum > maxSubtoursPerTour {
			return fmt.Errorf("tours: tour %d of person %d has more than %d subtours", lt.TourNum, lt.PersonID, maxSubtoursPerTour)
		}
		lt.TourID = ids.TourID(lt.DayID, lt.TourNum, lt.SubtourNum)
	}
	return nil
}

// groupByTour collects refs per tour identifier preserving time order.
// Before identifiers exist it groups by person, day, and tour number.
func groupByTour(refs []*tripRef) []*tourGroup {
	type key struct {
		person, day int64
		tour, sub   int
	}
	index := make(map[key]*tourGroup)
	var groups []*tourGroup
	for _, r := range refs {
		k := key{r.lt.PersonID, r.lt.DayID, r.lt.TourNum, r.lt.SubtourNum}
		g, ok := index[k]
		if !ok {
			g = &tourGroup{tourID: r.lt.TourID}
			index[k] = g
			groups = append(groups, g)
		}
		g.refs = append(g.refs, r)
	}
	return groups
}
