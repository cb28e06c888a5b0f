package tours

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/diary-to-tours/config"
	"github.com/theoremus-urban-solutions/diary-to-tours/ids"
	"github.com/theoremus-urban-solutions/diary-to-tours/survey"
)

var (
	hhID     = int64(23000075)
	personID = int64(2300007501)
	dayID    = int64(230000750101)

	homeLat, homeLon = 37.7000, -122.4000
	workLat, workLon = 37.7500, -122.4100
	shopLat, shopLon = 37.7200, -122.4200
	mealLat, mealLon = 37.7480, -122.4300
)

func at(h, m int) time.Time {
	return time.Date(2023, 10, 3, h, m, 0, 0, time.UTC)
}

func trip(num int64, depart, arrive time.Time, oLat, oLon, dLat, dLon float64, oP, dP survey.PurposeCategory, mode survey.ModeType) survey.LinkedTrip {
	return survey.LinkedTrip{
		LinkedTripID: ids.LinkedTripID(dayID, num),
		PersonID:     personID,
		HHID:         hhID,
		DayID:        dayID,
		DepartTime:   depart,
		ArriveTime:   arrive,
		OLat:         oLat,
		OLon:         oLon,
		DLat:         dLat,
		DLon:         dLon,
		OPurpose:     oP,
		DPurpose:     dP,
		Mode:         mode,
	}
}

func worker() []survey.Person {
	return []survey.Person{{
		PersonID:   personID,
		HHID:       hhID,
		PersonType: survey.PersonFullTimeWorker,
		WorkLat:    workLat,
		WorkLon:    workLon,
		SchoolLat:  math.NaN(),
		SchoolLon:  math.NaN(),
	}}
}

func households() []survey.Household {
	return []survey.Household{{HHID: hhID, HomeLat: homeLat, HomeLon: homeLon}}
}

func newAssembler() *Assembler {
	return NewAssembler(config.Default().Tours)
}

func TestAssembleEmpty(t *testing.T) {
	tours, err := newAssembler().Assemble(worker(), households(), nil)
	require.NoError(t, err)
	assert.Empty(t, tours)
}

func TestAssembleSimpleWorkTour(t *testing.T) {
	trips := []survey.LinkedTrip{
		trip(1, at(8, 0), at(8, 30), homeLat, homeLon, workLat, workLon, survey.PurposeHome, survey.PurposeWork, survey.ModeCar),
		trip(2, at(17, 0), at(17, 30), workLat, workLon, homeLat, homeLon, survey.PurposeWork, survey.PurposeHome, survey.ModeCar),
	}

	tours, err := newAssembler().Assemble(worker(), households(), trips)
	require.NoError(t, err)
	require.Len(t, tours, 1)

	tr := tours[0]
	assert.Equal(t, ids.TourID(dayID, 1, 0), tr.TourID)
	assert.Equal(t, 1, tr.TourNum)
	assert.Equal(t, survey.TourHomeBased, tr.TourType)
	assert.Equal(t, survey.TourComplete, tr.Category)
	assert.Equal(t, survey.QualityValid, tr.DataQuality)
	assert.Equal(t, survey.PurposeWork, tr.TourPurpose)
	assert.Equal(t, 2, tr.TripCount)
	assert.Equal(t, 1, tr.StopCount)
	assert.False(t, tr.SingleTrip)
	assert.Equal(t, at(8, 30), tr.DestArriveTime)
	assert.Equal(t, at(17, 0), tr.DestDepartTime)
	assert.Equal(t, at(8, 0), tr.OriginDepartTime)
	assert.Equal(t, at(17, 30), tr.OriginArriveTime)
	assert.Equal(t, workLat, tr.DLat)
	assert.Equal(t, survey.ModeCar, tr.TourMode)
	assert.Equal(t, survey.ModeCar, tr.OutboundMode)
	assert.Equal(t, survey.ModeCar, tr.InboundMode)

	assert.Equal(t, survey.DirectionOutbound, trips[0].TourDirection)
	assert.Equal(t, survey.DirectionInbound, trips[1].TourDirection)
	assert.Equal(t, tr.TourID, trips[0].TourID)
	assert.Equal(t, tr.TourID, trips[1].TourID)
}

func TestAssembleTwoToursPerDay(t *testing.T) {
	trips := []survey.LinkedTrip{
		trip(1, at(9, 0), at(9, 20), homeLat, homeLon, shopLat, shopLon, survey.PurposeHome, survey.PurposeShop, survey.ModeWalk),
		trip(2, at(10, 0), at(10, 20), shopLat, shopLon, homeLat, homeLon, survey.PurposeShop, survey.PurposeHome, survey.ModeWalk),
		trip(3, at(13, 0), at(13, 30), homeLat, homeLon, workLat, workLon, survey.PurposeHome, survey.PurposeWork, survey.ModeCar),
		trip(4, at(18, 0), at(18, 30), workLat, workLon, homeLat, homeLon, survey.PurposeWork, survey.PurposeHome, survey.ModeCar),
	}

	tours, err := newAssembler().Assemble(worker(), households(), trips)
	require.NoError(t, err)
	require.Len(t, tours, 2)

	assert.Equal(t, 1, tours[0].TourNum)
	assert.Equal(t, survey.PurposeShop, tours[0].TourPurpose)
	assert.Equal(t, 2, tours[1].TourNum)
	assert.Equal(t, survey.PurposeWork, tours[1].TourPurpose)
	for _, tr := range tours {
		assert.Equal(t, survey.TourComplete, tr.Category)
		assert.Equal(t, survey.QualityValid, tr.DataQuality)
	}
}

func TestAssembleWorkBasedSubtour(t *testing.T) {
	trips := []survey.LinkedTrip{
		trip(1, at(8, 0), at(8, 30), homeLat, homeLon, workLat, workLon, survey.PurposeHome, survey.PurposeWork, survey.ModeCar),
		trip(2, at(12, 0), at(12, 10), workLat, workLon, mealLat, mealLon, survey.PurposeWork, survey.PurposeMeal, survey.ModeWalk),
		trip(3, at(12, 40), at(12, 50), mealLat, mealLon, workLat, workLon, survey.PurposeMeal, survey.PurposeWork, survey.ModeWalk),
		trip(4, at(17, 0), at(17, 30), workLat, workLon, homeLat, homeLon, survey.PurposeWork, survey.PurposeHome, survey.ModeCar),
	}

	tours, err := newAssembler().Assemble(worker(), households(), trips)
	require.NoError(t, err)
	require.Len(t, tours, 2)

	var parent, subtour *survey.Tour
	for i := range tours {
		if tours[i].TourType == survey.TourWorkBased {
			subtour = &tours[i]
		} else {
			parent = &tours[i]
		}
	}
	require.NotNil(t, parent)
	require.NotNil(t, subtour)

	assert.Equal(t, ids.TourID(dayID, 1, 0), parent.TourID)
	assert.Equal(t, ids.TourID(dayID, 1, 1), subtour.TourID)
	assert.Equal(t, parent.TourID, subtour.ParentTourID)
	assert.Equal(t, survey.PurposeWork, parent.TourPurpose)
	assert.Equal(t, survey.PurposeMeal, subtour.TourPurpose)
	assert.Equal(t, 1, subtour.SubtourNum)
	assert.Equal(t, at(8, 30), parent.DestArriveTime)
	assert.Equal(t, at(17, 0), parent.DestDepartTime)

	assert.Equal(t, 1, trips[1].SubtourNum)
	assert.Equal(t, 1, trips[2].SubtourNum)
	assert.Equal(t, survey.DirectionSubtour, trips[1].TourDirection)
	assert.Equal(t, survey.DirectionSubtour, trips[2].TourDirection)
	assert.Equal(t, survey.DirectionOutbound, trips[0].TourDirection)
	assert.Equal(t, survey.DirectionInbound, trips[3].TourDirection)
}

func TestAssembleSingleTripQuality(t *testing.T) {
	tests := []struct {
		name     string
		trip     survey.LinkedTrip
		quality  survey.TourDataQuality
		category survey.TourCategory
	}{
		{
			name:     "loop trip keeps its category",
			trip:     trip(1, at(9, 0), at(9, 40), homeLat, homeLon, homeLat, homeLon, survey.PurposeHome, survey.PurposeHome, survey.ModeWalk),
			quality:  survey.QualityLoopTrip,
			category: survey.TourComplete,
		},
		{
			name:     "single trip corrected to partial both",
			trip:     trip(1, at(9, 0), at(9, 40), shopLat, shopLon, homeLat, homeLon, survey.PurposeShop, survey.PurposeHome, survey.ModeWalk),
			quality:  survey.QualitySingleTrip,
			category: survey.TourPartialBoth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tours, err := newAssembler().Assemble(worker(), households(), []survey.LinkedTrip{tt.trip})
			require.NoError(t, err)
			require.Len(t, tours, 1)
			assert.Equal(t, tt.quality, tours[0].DataQuality)
			assert.Equal(t, tt.category, tours[0].Category)
			assert.True(t, tours[0].SingleTrip)
			assert.Zero(t, tours[0].TourPurpose)
		})
	}
}

func TestAssembleMissingHomeAnchor(t *testing.T) {
	trips := []survey.LinkedTrip{
		trip(1, at(9, 0), at(9, 20), shopLat, shopLon, mealLat, mealLon, survey.PurposeShop, survey.PurposeMeal, survey.ModeWalk),
		trip(2, at(10, 0), at(10, 20), mealLat, mealLon, shopLat, shopLon, survey.PurposeMeal, survey.PurposeShop, survey.ModeWalk),
	}

	tours, err := newAssembler().Assemble(worker(), households(), trips)
	require.NoError(t, err)
	require.Len(t, tours, 1)
	assert.Equal(t, survey.QualityMissingHomeAnchor, tours[0].DataQuality)
	assert.Equal(t, survey.TourPartialBoth, tours[0].Category)
}

func TestAssembleMultidayContinuation(t *testing.T) {
	// An overnight excursion: out on day one, meal stop and return home on
	// day two. Tour numbering restarts with each diary day, so day two opens
	// tour 1 even though it begins away from home.
	day2 := dayID + 1
	nextDay := func(tm time.Time) time.Time { return tm.AddDate(0, 0, 1) }
	day1Trip := trip(1, at(20, 0), at(20, 30), homeLat, homeLon, shopLat, shopLon, survey.PurposeHome, survey.PurposeOvernight, survey.ModeCar)
	day2TripA := trip(2, nextDay(at(9, 0)), nextDay(at(9, 20)), shopLat, shopLon, mealLat, mealLon, survey.PurposeOvernight, survey.PurposeMeal, survey.ModeCar)
	day2TripB := trip(3, nextDay(at(10, 0)), nextDay(at(10, 30)), mealLat, mealLon, homeLat, homeLon, survey.PurposeMeal, survey.PurposeHome, survey.ModeCar)
	day2TripA.DayID = day2
	day2TripB.DayID = day2

	trips := []survey.LinkedTrip{day1Trip, day2TripA, day2TripB}
	tours, err := newAssembler().Assemble(worker(), households(), trips)
	require.NoError(t, err)
	require.Len(t, tours, 2)

	assert.Equal(t, 1, trips[0].TourNum)
	assert.Equal(t, 1, trips[1].TourNum)
	assert.Equal(t, 1, trips[2].TourNum)

	// Day one is a lone outbound trip.
	assert.Equal(t, survey.QualitySingleTrip, tours[0].DataQuality)

	// Day two gets its own partial tour returning home.
	assert.Equal(t, ids.TourID(day2, 1, 0), tours[1].TourID)
	assert.Equal(t, survey.TourPartialStart, tours[1].Category)
	assert.Equal(t, survey.QualityValid, tours[1].DataQuality)
}

func TestAssembleUnmappedPurposeFails(t *testing.T) {
	cfg := config.Default().Tours
	delete(cfg.PurposePriority[string(survey.CategoryWorker)], int(survey.PurposeErrand))
	trips := []survey.LinkedTrip{
		trip(1, at(9, 0), at(9, 20), homeLat, homeLon, shopLat, shopLon, survey.PurposeHome, survey.PurposeErrand, survey.ModeWalk),
		trip(2, at(10, 0), at(10, 20), shopLat, shopLon, homeLat, homeLon, survey.PurposeErrand, survey.PurposeHome, survey.ModeWalk),
	}

	_, err := NewAssembler(cfg).Assemble(worker(), households(), trips)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "purpose category 10")
	assert.Contains(t, err.Error(), "worker")
}

func TestAssemblePurposeTieBreakByActivityDuration(t *testing.T) {
	// Shop and meal share a priority; the 60 minute meal stay beats the
	// 30 minute shop stay.
	trips := []survey.LinkedTrip{
		trip(1, at(9, 30), at(10, 0), homeLat, homeLon, shopLat, shopLon, survey.PurposeHome, survey.PurposeShop, survey.ModeWalk),
		trip(2, at(10, 30), at(11, 0), shopLat, shopLon, mealLat, mealLon, survey.PurposeShop, survey.PurposeMeal, survey.ModeWalk),
		trip(3, at(12, 0), at(12, 30), mealLat, mealLon, homeLat, homeLon, survey.PurposeMeal, survey.PurposeHome, survey.ModeWalk),
	}

	tours, err := newAssembler().Assemble(worker(), households(), trips)
	require.NoError(t, err)
	require.Len(t, tours, 1)
	assert.Equal(t, survey.PurposeMeal, tours[0].TourPurpose)
	assert.Equal(t, mealLat, tours[0].DLat)
}

func TestAssembleTourModeFromHierarchy(t *testing.T) {
	// Transit outranks car in the mode hierarchy regardless of direction.
	trips := []survey.LinkedTrip{
		trip(1, at(8, 0), at(8, 30), homeLat, homeLon, workLat, workLon, survey.PurposeHome, survey.PurposeWork, survey.ModeTransit),
		trip(2, at(17, 0), at(17, 30), workLat, workLon, homeLat, homeLon, survey.PurposeWork, survey.PurposeHome, survey.ModeCar),
	}

	tours, err := newAssembler().Assemble(worker(), households(), trips)
	require.NoError(t, err)
	require.Len(t, tours, 1)
	assert.Equal(t, survey.ModeTransit, tours[0].TourMode)
	assert.Equal(t, survey.ModeTransit, tours[0].OutboundMode)
	assert.Equal(t, survey.ModeCar, tours[0].InboundMode)
}
