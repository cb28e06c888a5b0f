package tours

import (
	"fmt"
	"log"
	"sort"

	"github.com/theoremus-urban-solutions/diary-to-tours/ids"
	"github.com/theoremus-urban-solutions/diary-to-tours/survey"
)

// Joint tour numbers share a two-digit identifier block per household.
const maxJointToursPerHousehold = 99

// IdentifyJointTours finds tours made entirely together by a stable group of
// household members. A tour qualifies when every one of its trips is a joint
// trip and the same at-least-two people participate in all of them. Tours of
// the same household with identical participant groups form one joint tour.
// Qualifying tours and their trips are annotated with the joint tour
// identifier; a member who splits off partway keeps a zero identifier on
// their own records.
func IdentifyJointTours(trips []survey.LinkedTrip, tours []survey.Tour) ([]survey.JointTour, error) {
	byTour := make(map[int64][]*survey.LinkedTrip)
	participants := make(map[int64]map[int64]bool)
	for i := range trips {
		t := &trips[i]
		if t.TourID != 0 {
			byTour[t.TourID] = append(byTour[t.TourID], t)
		}
		if t.JointTripID != 0 {
			if participants[t.JointTripID] == nil {
				participants[t.JointTripID] = make(map[int64]bool)
			}
			participants[t.JointTripID][t.PersonID] = true
		}
	}

	groups := stableGroups(byTour, participants)
	if len(groups) == 0 {
		log.Printf("tours: no fully joint tours found")
		return nil, nil
	}

	counters := make(map[int64]int)
	assigned := make(map[string]int64)
	index := make(map[int64]*survey.JointTour)
	var order []int64

	covered := 0
	for i := range tours {
		t := &tours[i]
		persons, ok := groups[t.TourID]
		if !ok {
			continue
		}
		key := fmt.Sprintf("%d|%v", t.HHID, persons)
		id, ok := assigned[key]
		if !ok {
			counters[t.HHID]++
			if counters[t.HHID] > maxJointToursPerHousehold {
				return nil, fmt.Errorf("tours: household %d has more than %d joint tours", t.HHID, maxJointToursPerHousehold)
			}
			id = ids.JointTourID(t.HHID, int64(counters[t.HHID]))
			assigned[key] = id
			index[id] = &survey.JointTour{
				JointTourID:  id,
				HHID:         t.HHID,
				Participants: persons,
			}
			order = append(order, id)
		}
		t.JointTourID = id
		index[id].TourIDs = append(index[id].TourIDs, t.TourID)
		covered++
		for _, lt := range byTour[t.TourID] {
			lt.JointTourID = id
		}
	}

	result := make([]survey.JointTour, 0, len(order))
	for _, id := range order {
		result = append(result, *index[id])
	}
	log.Printf("tours: identified %d joint tours covering %d individual tours", len(result), covered)
	return result, nil
}

// stableGroups maps each fully joint tour to the sorted set of persons who
// participated in every one of its trips. Tours with any individual trip, a
// single trip, or no common group of at least two people are excluded.
func stableGroups(byTour map[int64][]*survey.LinkedTrip, participants map[int64]map[int64]bool) map[int64][]int64 {
	groups := make(map[int64][]int64)
	for tourID, ts := range byTour {
		if len(ts) < 2 {
			continue
		}
		fullyJoint := true
		for _, t := range ts {
			if t.JointTripID == 0 {
				fullyJoint = false
				break
			}
		}
		if !fullyJoint {
			continue
		}

		common := make(map[int64]bool)
		for p := range participants[ts[0].JointTripID] {
			common[p] = true
		}
		for _, t := range ts[1:] {
			members := participants[t.JointTripID]
			for p := range common {
				if !members[p] {
					delete(common, p)
				}
			}
		}
		if len(common) < 2 {
			continue
		}

		persons := make([]int64, 0, len(common))
		for p := range common {
			persons = append(persons, p)
		}
		sort.Slice(persons, func(i, j int) bool { return persons[i] < persons[j] })
		groups[tourID] = persons
	}
	return groups
}
