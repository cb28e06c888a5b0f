package tours

import (
	"math"

	"github.com/theoremus-urban-solutions/diary-to-tours/geo"
	"github.com/theoremus-urban-solutions/diary-to-tours/survey"
)

// locationType labels a tour's primary destination kind.
type locationType int

const (
	locOther locationType = iota
	locHome
	locWork
	locSchool
)

// threshold returns the proximity threshold for matching a coordinate to a
// location of the given type.
func (a *Assembler) threshold(lt locationType) float64 {
	switch lt {
	case locHome:
		return a.cfg.HomeThresholdMeters
	case locWork:
		return a.cfg.WorkThresholdMeters
	case locSchool:
		return a.cfg.SchoolThresholdMeters
	default:
		return a.cfg.HomeThresholdMeters
	}
}

// classifyLocations flags each trip end as home, work, or school. A trip end
// matches when either the reported purpose says so or the coordinate falls
// within the proximity threshold of the person's usual location. Distance
// checks against missing coordinates never match.
func (a *Assembler) classifyLocations(refs []*tripRef, people map[int64]*personInfo) {
	for _, r := range refs {
		lt := r.lt
		info := people[lt.PersonID]

		var homeLat, homeLon, workLat, workLon, schoolLat, schoolLon float64
		homeLat, homeLon = nanPair()
		workLat, workLon = nanPair()
		schoolLat, schoolLon = nanPair()
		if info != nil {
			homeLat, homeLon = info.homeLat, info.homeLon
			workLat, workLon = info.workLat, info.workLon
			schoolLat, schoolLon = info.schoolLat, info.schoolLon
		}

		r.oIsHome = lt.OPurpose == survey.PurposeHome ||
			near(lt.OLat, lt.OLon, homeLat, homeLon, a.cfg.HomeThresholdMeters)
		r.dIsHome = lt.DPurpose == survey.PurposeHome ||
			near(lt.DLat, lt.DLon, homeLat, homeLon, a.cfg.HomeThresholdMeters)

		r.atUsualWorkO = near(lt.OLat, lt.OLon, workLat, workLon, a.cfg.WorkThresholdMeters)
		r.atUsualWorkD = near(lt.DLat, lt.DLon, workLat, workLon, a.cfg.WorkThresholdMeters)
		r.oIsWork = lt.OPurpose == survey.PurposeWork || r.atUsualWorkO
		r.dIsWork = lt.DPurpose == survey.PurposeWork || r.atUsualWorkD

		r.atUsualSchoolO = near(lt.OLat, lt.OLon, schoolLat, schoolLon, a.cfg.SchoolThresholdMeters)
		r.atUsualSchoolD = near(lt.DLat, lt.DLon, schoolLat, schoolLon, a.cfg.SchoolThresholdMeters)
		r.oIsSchool = lt.OPurpose == survey.PurposeSchool || r.atUsualSchoolO
		r.dIsSchool = lt.DPurpose == survey.PurposeSchool || r.atUsualSchoolD
	}
}

// near reports whether two coordinates are within threshold meters of each
// other. NaN coordinates propagate through the distance and fail the
// comparison, so missing locations never match.
func near(lat1, lon1, lat2, lon2, threshold float64) bool {
	return geo.Haversine(lat1, lon1, lat2, lon2) <= threshold
}

func nanPair() (float64, float64) {
	return math.NaN(), math.NaN()
}
