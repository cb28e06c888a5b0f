package tours

import (
	"log"

	"github.com/theoremus-urban-solutions/diary-to-tours/internal"
	"github.com/theoremus-urban-solutions/diary-to-tours/survey"
)

// validateAndCorrect assigns a data quality label to every tour and corrects
// the categories the structural problems invalidate. tours and groups are
// parallel slices.
func (a *Assembler) validateAndCorrect(tours []survey.Tour, groups []*tourGroup) {
	counts := make(map[survey.TourDataQuality]int)
	indeterminate := 0

	for i := range tours {
		t := &tours[i]
		g := groups[i]

		q := classifyQuality(t, g)
		t.DataQuality = q
		counts[q]++

		// A tour reduced to one trip, or one never touching home, shows
		// neither anchor: both ends of the diary window are open.
		if q == survey.QualitySingleTrip || q == survey.QualityMissingHomeAnchor {
			t.Category = survey.TourPartialBoth
		}

		if q == survey.QualityIndeterminate {
			indeterminate++
			internal.Debugf("tours: indeterminate tour %d (person %d day %d): %d trips, home origin=%t home dest=%t",
				t.TourID, t.PersonID, t.DayID, len(g.refs), anyHomeOrigin(g), anyHomeDest(g))
		}
	}

	log.Printf("tours: quality summary: %d valid, %d single-trip, %d loop, %d missing home anchor, %d indeterminate, %d change-mode",
		counts[survey.QualityValid], counts[survey.QualitySingleTrip], counts[survey.QualityLoopTrip],
		counts[survey.QualityMissingHomeAnchor], counts[survey.QualityIndeterminate], counts[survey.QualityChangeMode])
	if indeterminate > 0 {
		log.Printf("tours: %d tours start before any detectable tour boundary; their trips keep tour number 0", indeterminate)
	}
}

// classifyQuality picks the most severe structural problem a tour exhibits.
func classifyQuality(t *survey.Tour, g *tourGroup) survey.TourDataQuality {
	first, last := g.refs[0], g.refs[len(g.refs)-1]
	switch {
	case t.TripCount == 1 && first.oIsHome && last.dIsHome:
		return survey.QualityLoopTrip
	case t.TripCount == 1:
		return survey.QualitySingleTrip
	case t.TourPurpose == survey.PurposeChangeMode:
		return survey.QualityChangeMode
	case t.TourType != survey.TourWorkBased && !anyHomeOrigin(g) && !anyHomeDest(g):
		return survey.QualityMissingHomeAnchor
	case t.TourNum == 0:
		return survey.QualityIndeterminate
	default:
		return survey.QualityValid
	}
}

func anyHomeOrigin(g *tourGroup) bool {
	for _, r := range g.refs {
		if r.oIsHome {
			return true
		}
	}
	return false
}

func anyHomeDest(g *tourGroup) bool {
	for _, r := range g.refs {
		if r.dIsHome {
			return true
		}
	}
	return false
}
