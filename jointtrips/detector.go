package jointtrips

import (
	"fmt"
	"log"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/theoremus-urban-solutions/diary-to-tours/config"
	"github.com/theoremus-urban-solutions/diary-to-tours/geo"
	"github.com/theoremus-urban-solutions/diary-to-tours/internal"
	"github.com/theoremus-urban-solutions/diary-to-tours/survey"
)

// The four pair features: origin distance, destination distance, depart time
// difference, arrive time difference.
const numFeatures = 4

// Detector finds trips that household members made together.
type Detector struct {
	cfg config.JointTripsConfig
	// Chi-squared quantile the mahalanobis distance is compared against.
	threshold float64
}

// NewDetector creates a Detector from configuration.
func NewDetector(cfg config.JointTripsConfig) (*Detector, error) {
	d := &Detector{cfg: cfg}
	if cfg.Method == "mahalanobis" {
		if len(cfg.Covariance) != numFeatures {
			return nil, fmt.Errorf("jointtrips: covariance needs %d diagonal entries, got %d", numFeatures, len(cfg.Covariance))
		}
		chi2 := distuv.ChiSquared{K: numFeatures}
		d.threshold = chi2.Quantile(1 - cfg.ConfidenceLevel)
	}
	return d, nil
}

// pairFeatures holds the similarity features of a candidate trip pair.
type pairFeatures struct {
	originMeters  float64
	destMeters    float64
	departMinutes float64
	arriveMinutes float64
}

// Detect annotates trips made together by members of the same household with
// a shared joint trip identifier and returns the joint trip table. Two trips
// are candidates when they belong to different persons of a multi-person
// household and overlap in time; the configured method then decides whether
// their origins, destinations, and times are close enough.
func (d *Detector) Detect(trips []survey.LinkedTrip) ([]survey.JointTrip, error) {
	if len(trips) == 0 {
		log.Printf("jointtrips: no linked trips to scan")
		return nil, nil
	}

	groups := householdGroups(trips)
	uf := newUnionFind(len(trips))

	pairs := 0
	for _, idxs := range groups {
		for i := 0; i < len(idxs); i++ {
			for j := i + 1; j < len(idxs); j++ {
				a, b := &trips[idxs[i]], &trips[idxs[j]]
				if a.PersonID == b.PersonID {
					continue
				}
				if !overlaps(a, b) {
					continue
				}
				pairs++
				if d.match(features(a, b)) {
					uf.union(idxs[i], idxs[j])
				}
			}
		}
	}
	log.Printf("jointtrips: evaluated %d candidate pairs with method %s", pairs, d.cfg.Method)

	joint := d.buildJointTrips(trips, uf)
	d.validateTravelerCounts(trips, joint)
	return joint, nil
}

// match applies the configured similarity method to one candidate pair.
func (d *Detector) match(f pairFeatures) bool {
	switch d.cfg.Method {
	case "mahalanobis":
		return d.mahalanobis(f) < d.threshold
	default:
		return f.originMeters < d.cfg.SpaceThresholdMeters &&
			f.destMeters < d.cfg.SpaceThresholdMeters &&
			f.departMinutes < d.cfg.TimeThresholdMinutes &&
			f.arriveMinutes < d.cfg.TimeThresholdMinutes
	}
}

// mahalanobis computes the pair's distance under the configured diagonal
// covariance. NaN features (missing coordinates) yield NaN, which never
// passes the threshold comparison.
func (d *Detector) mahalanobis(f pairFeatures) float64 {
	deltas := [numFeatures]float64{f.originMeters, f.destMeters, f.departMinutes, f.arriveMinutes}
	sum := 0.0
	for i, delta := range deltas {
		sum += delta * delta / d.cfg.Covariance[i]
	}
	return math.Sqrt(sum)
}

func features(a, b *survey.LinkedTrip) pairFeatures {
	return pairFeatures{
		originMeters:  geo.Haversine(a.OLat, a.OLon, b.OLat, b.OLon),
		destMeters:    geo.Haversine(a.DLat, a.DLon, b.DLat, b.DLon),
		departMinutes: math.Abs(a.DepartTime.Sub(b.DepartTime).Minutes()),
		arriveMinutes: math.Abs(a.ArriveTime.Sub(b.ArriveTime).Minutes()),
	}
}

// overlaps reports whether the two trips share any travel time.
func overlaps(a, b *survey.LinkedTrip) bool {
	latestDepart := a.DepartTime
	if b.DepartTime.After(latestDepart) {
		latestDepart = b.DepartTime
	}
	earliestArrive := a.ArriveTime
	if b.ArriveTime.Before(earliestArrive) {
		earliestArrive = b.ArriveTime
	}
	return !latestDepart.After(earliestArrive)
}

// householdGroups indexes trips of households with at least two traveling
// members. Grouping is by household only; the temporal overlap check prunes
// pairs, so trips recorded under different diary days can still match when
// they share travel time. Single-person households can never produce joint
// trips and are skipped up front.
func householdGroups(trips []survey.LinkedTrip) map[int64][]int {
	persons := make(map[int64]map[int64]bool)
	for i := range trips {
		t := &trips[i]
		if persons[t.HHID] == nil {
			persons[t.HHID] = make(map[int64]bool)
		}
		persons[t.HHID][t.PersonID] = true
	}

	groups := make(map[int64][]int)
	for i := range trips {
		t := &trips[i]
		if len(persons[t.HHID]) < 2 {
			continue
		}
		groups[t.HHID] = append(groups[t.HHID], i)
	}
	return groups
}

// buildJointTrips turns union-find components of two or more trips into
// joint trip records, numbered in order of their earliest member, and
// annotates the member trips.
func (d *Detector) buildJointTrips(trips []survey.LinkedTrip, uf *unionFind) []survey.JointTrip {
	components := make(map[int][]int)
	for i := range trips {
		root := uf.find(i)
		components[root] = append(components[root], i)
	}

	var groups [][]int
	for _, members := range components {
		if len(members) < 2 {
			continue
		}
		sort.Slice(members, func(a, b int) bool {
			return trips[members[a]].LinkedTripID < trips[members[b]].LinkedTripID
		})
		groups = append(groups, members)
	}
	sort.Slice(groups, func(a, b int) bool {
		return trips[groups[a][0]].LinkedTripID < trips[groups[b][0]].LinkedTripID
	})

	joint := make([]survey.JointTrip, 0, len(groups))
	for n, members := range groups {
		id := int64(n + 1)
		first := &trips[members[0]]
		jt := survey.JointTrip{
			JointTripID:       id,
			HHID:              first.HHID,
			DayID:             first.DayID,
			NumJointTravelers: len(members),
			MinDepartTime:     first.DepartTime,
			MaxArriveTime:     first.ArriveTime,
		}
		for _, m := range members {
			t := &trips[m]
			t.JointTripID = id
			jt.OLatMean += t.OLat
			jt.OLonMean += t.OLon
			jt.DLatMean += t.DLat
			jt.DLonMean += t.DLon
			if t.DepartTime.Before(jt.MinDepartTime) {
				jt.MinDepartTime = t.DepartTime
			}
			if t.ArriveTime.After(jt.MaxArriveTime) {
				jt.MaxArriveTime = t.ArriveTime
			}
		}
		size := float64(len(members))
		jt.OLatMean /= size
		jt.OLonMean /= size
		jt.DLatMean /= size
		jt.DLonMean /= size
		joint = append(joint, jt)
	}

	log.Printf("jointtrips: %d joint trips found across %d households", len(joint), countHouseholds(joint))
	return joint
}

func countHouseholds(joint []survey.JointTrip) int {
	hhs := make(map[int64]bool, len(joint))
	for _, jt := range joint {
		hhs[jt.HHID] = true
	}
	return len(hhs)
}

// validateTravelerCounts compares detected group sizes against the reported
// traveler counts and logs the agreement rate. Per-trip discrepancies are
// logged only when configured, at debug level.
func (d *Detector) validateTravelerCounts(trips []survey.LinkedTrip, joint []survey.JointTrip) {
	sizes := make(map[int64]int, len(joint))
	for _, jt := range joint {
		sizes[jt.JointTripID] = jt.NumJointTravelers
	}

	checked, matched := 0, 0
	for i := range trips {
		t := &trips[i]
		if t.JointTripID == 0 {
			continue
		}
		checked++
		if t.NumTravelers == sizes[t.JointTripID] {
			matched++
			continue
		}
		if d.cfg.LogDiscrepancies {
			internal.Debugf("jointtrips: trip %d reports %d travelers but joint trip %d has %d members",
				t.LinkedTripID, t.NumTravelers, t.JointTripID, sizes[t.JointTripID])
		}
	}
	if checked > 0 {
		log.Printf("jointtrips: reported traveler counts match detected group size for %d/%d joint trip members (%.1f%%)",
			matched, checked, 100*float64(matched)/float64(checked))
	}
}
