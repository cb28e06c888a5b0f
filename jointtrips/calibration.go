package jointtrips

import (
	"fmt"
	"log"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/theoremus-urban-solutions/diary-to-tours/survey"
)

var featureNames = [numFeatures]string{
	"origin distance (m)",
	"destination distance (m)",
	"depart delta (min)",
	"arrive delta (min)",
}

// Calibration holds per-feature covariance diagonals estimated from a survey
// sample, for configuring the mahalanobis method.
type Calibration struct {
	SampleSize int

	// Observed is the variance of each feature over all candidate pairs.
	Observed []float64
	// Conservative treats the 95th percentile as two standard deviations,
	// damping the influence of outlier pairs on the variance estimate.
	Conservative []float64
}

// Calibrate estimates covariance diagonals from the candidate pairs of the
// given trips: overlapping trips of different members of multi-person
// households. Pairs with a missing coordinate are excluded.
func Calibrate(trips []survey.LinkedTrip) (*Calibration, error) {
	var samples [numFeatures][]float64

	for _, idxs := range householdGroups(trips) {
		for i := 0; i < len(idxs); i++ {
			for j := i + 1; j < len(idxs); j++ {
				a, b := &trips[idxs[i]], &trips[idxs[j]]
				if a.PersonID == b.PersonID || !overlaps(a, b) {
					continue
				}
				f := features(a, b)
				values := [numFeatures]float64{f.originMeters, f.destMeters, f.departMinutes, f.arriveMinutes}
				if math.IsNaN(values[0]) || math.IsNaN(values[1]) {
					continue
				}
				for k, v := range values {
					samples[k] = append(samples[k], v)
				}
			}
		}
	}

	n := len(samples[0])
	if n < 2 {
		return nil, fmt.Errorf("jointtrips: %d candidate pairs is too few to calibrate a covariance", n)
	}

	cal := &Calibration{
		SampleSize:   n,
		Observed:     make([]float64, numFeatures),
		Conservative: make([]float64, numFeatures),
	}
	for k := range samples {
		cal.Observed[k] = stat.Variance(samples[k], nil)
		sort.Float64s(samples[k])
		p95 := stat.Quantile(0.95, stat.Empirical, samples[k], nil)
		sigma := p95 / 2
		cal.Conservative[k] = sigma * sigma
		log.Printf("jointtrips: calibration %s: variance %.1f, p95 %.1f", featureNames[k], cal.Observed[k], p95)
	}
	log.Printf("jointtrips: calibrated covariance from %d candidate pairs", n)
	return cal, nil
}
