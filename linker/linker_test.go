package linker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/diary-to-tours/config"
	"github.com/theoremus-urban-solutions/diary-to-tours/survey"
)

const dayID = int64(230000750101)

func at(h, m int) time.Time {
	return time.Date(2023, 10, 3, h, m, 0, 0, time.UTC)
}

func seg(tripID int64, depart, arrive time.Time, dPurpose survey.PurposeCategory, mode survey.ModeType) survey.UnlinkedTrip {
	return survey.UnlinkedTrip{
		TripID:          tripID,
		HHID:            23000075,
		PersonID:        2300007501,
		DayID:           dayID,
		DepartTime:      depart,
		ArriveTime:      arrive,
		OLat:            37.77, // all segments at the same point: gaps are zero
		OLon:            -122.41,
		DLat:            37.77,
		DLon:            -122.41,
		OPurpose:        survey.PurposeHome,
		DPurpose:        dPurpose,
		Mode:            mode,
		Driver:          survey.DriverMissing,
		NumTravelers:    1,
		DistanceMeters:  1000,
		DurationMinutes: arrive.Sub(depart).Minutes(),
		TripWeight:      1.0,
	}
}

func newLinker() *Linker {
	return New(config.Default().Linker)
}

func TestLinkEmptyInput(t *testing.T) {
	linked, err := newLinker().Link(nil)
	require.NoError(t, err)
	assert.Empty(t, linked)
}

func TestLinkWalkTransitWalk(t *testing.T) {
	trips := []survey.UnlinkedTrip{
		seg(1, at(8, 0), at(8, 10), survey.PurposeChangeMode, survey.ModeWalk),
		seg(2, at(8, 15), at(8, 45), survey.PurposeChangeMode, survey.ModeTransit),
		seg(3, at(8, 50), at(9, 0), survey.PurposeWork, survey.ModeWalk),
	}

	linked, err := newLinker().Link(trips)
	require.NoError(t, err)
	require.Len(t, linked, 1)

	lt := linked[0]
	assert.Equal(t, 3, lt.NumSegments)
	assert.Equal(t, survey.ModeTransit, lt.Mode)
	assert.Equal(t, survey.AccessEgressWalk, lt.AccessMode)
	assert.Equal(t, survey.AccessEgressWalk, lt.EgressMode)
	assert.Equal(t, survey.PurposeHome, lt.OPurpose)
	assert.Equal(t, survey.PurposeWork, lt.DPurpose)
	assert.Equal(t, at(8, 0), lt.DepartTime)
	assert.Equal(t, at(9, 0), lt.ArriveTime)
	assert.Equal(t, 3000.0, lt.DistanceMeters)
	assert.Equal(t, 60.0, lt.DurationMinutes)
	assert.Equal(t, 50.0, lt.TravelDurationMinutes)
	assert.Equal(t, 10.0, lt.DwellDurationMinutes)

	// every input segment carries the linked trip id
	for _, s := range trips {
		assert.Equal(t, lt.LinkedTripID, s.LinkedTripID)
	}
}

func TestLinkBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		first    survey.UnlinkedTrip
		second   survey.UnlinkedTrip
		expected int
	}{
		{
			name:     "non change-mode purpose splits",
			first:    seg(1, at(8, 0), at(8, 30), survey.PurposeShop, survey.ModeWalk),
			second:   seg(2, at(8, 40), at(9, 0), survey.PurposeWork, survey.ModeCar),
			expected: 2,
		},
		{
			name:     "dwell over two hours splits",
			first:    seg(1, at(8, 0), at(8, 30), survey.PurposeChangeMode, survey.ModeWalk),
			second:   seg(2, at(11, 0), at(11, 20), survey.PurposeWork, survey.ModeCar),
			expected: 2,
		},
		{
			name:     "change mode within thresholds links",
			first:    seg(1, at(8, 0), at(8, 30), survey.PurposeChangeMode, survey.ModeWalk),
			second:   seg(2, at(8, 40), at(9, 0), survey.PurposeWork, survey.ModeCar),
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			linked, err := newLinker().Link([]survey.UnlinkedTrip{tt.first, tt.second})
			require.NoError(t, err)
			assert.Len(t, linked, tt.expected)
		})
	}
}

func TestLinkSpatialGapSplits(t *testing.T) {
	first := seg(1, at(8, 0), at(8, 30), survey.PurposeChangeMode, survey.ModeWalk)
	second := seg(2, at(8, 40), at(9, 0), survey.PurposeWork, survey.ModeCar)
	second.OLat = 37.80 // ~3.3km from the first segment's destination

	linked, err := newLinker().Link([]survey.UnlinkedTrip{first, second})
	require.NoError(t, err)
	assert.Len(t, linked, 2)
}

func TestLinkCompletenessAndChronology(t *testing.T) {
	trips := []survey.UnlinkedTrip{
		seg(3, at(17, 0), at(17, 30), survey.PurposeHome, survey.ModeCar),
		seg(1, at(8, 0), at(8, 10), survey.PurposeChangeMode, survey.ModeWalk),
		seg(2, at(8, 15), at(8, 45), survey.PurposeWork, survey.ModeTransit),
	}

	linked, err := newLinker().Link(trips)
	require.NoError(t, err)
	require.Len(t, linked, 2)

	// every segment assigned exactly one linked trip
	for _, s := range trips {
		assert.NotZero(t, s.LinkedTripID)
	}
	// linked trips in chronological order per person
	assert.True(t, linked[0].DepartTime.Before(linked[1].DepartTime))
	assert.Equal(t, int64(1), linked[0].LinkedTripNum)
	assert.Equal(t, int64(2), linked[1].LinkedTripNum)
}

func TestLinkDriverResolution(t *testing.T) {
	tests := []struct {
		name     string
		drivers  []survey.Driver
		expected survey.Driver
	}{
		{"all driver", []survey.Driver{survey.DriverDriver, survey.DriverDriver}, survey.DriverDriver},
		{"all missing", []survey.Driver{survey.DriverMissing, survey.DriverMissing}, survey.DriverMissing},
		{"driver and passenger", []survey.Driver{survey.DriverDriver, survey.DriverPassenger}, survey.DriverBoth},
		{"driver and missing", []survey.Driver{survey.DriverDriver, survey.DriverMissing}, survey.DriverBoth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := seg(1, at(8, 0), at(8, 30), survey.PurposeChangeMode, survey.ModeCar)
			second := seg(2, at(8, 40), at(9, 0), survey.PurposeWork, survey.ModeCar)
			first.Driver = tt.drivers[0]
			second.Driver = tt.drivers[1]

			linked, err := newLinker().Link([]survey.UnlinkedTrip{first, second})
			require.NoError(t, err)
			require.Len(t, linked, 1)
			assert.Equal(t, tt.expected, linked[0].Driver)
		})
	}
}

func TestLinkNonTransitModeByLongestSegment(t *testing.T) {
	trips := []survey.UnlinkedTrip{
		seg(1, at(8, 0), at(8, 10), survey.PurposeChangeMode, survey.ModeWalk),
		seg(2, at(8, 15), at(9, 0), survey.PurposeShop, survey.ModeCar),
	}

	linked, err := newLinker().Link(trips)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, survey.ModeCar, linked[0].Mode)
	assert.Zero(t, linked[0].AccessMode)
	assert.Zero(t, linked[0].EgressMode)
}

func TestLinkDurationSpansLatestArrival(t *testing.T) {
	// Reported times are not always monotone: the middle segment arrives
	// after the final one. The trip duration runs to the latest arrival.
	trips := []survey.UnlinkedTrip{
		seg(1, at(8, 0), at(8, 10), survey.PurposeChangeMode, survey.ModeWalk),
		seg(2, at(8, 12), at(9, 0), survey.PurposeChangeMode, survey.ModeTransit),
		seg(3, at(8, 20), at(8, 40), survey.PurposeWork, survey.ModeWalk),
	}

	linked, err := newLinker().Link(trips)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, 60.0, linked[0].DurationMinutes)
	assert.Equal(t, at(8, 40), linked[0].ArriveTime)
}

func TestLinkAggregatesWeightsAndTravelers(t *testing.T) {
	first := seg(1, at(8, 0), at(8, 30), survey.PurposeChangeMode, survey.ModeWalk)
	second := seg(2, at(8, 40), at(9, 0), survey.PurposeWork, survey.ModeCar)
	first.TripWeight, second.TripWeight = 2.0, 4.0
	first.NumTravelers, second.NumTravelers = 1, 3

	linked, err := newLinker().Link([]survey.UnlinkedTrip{first, second})
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, 3.0, linked[0].TripWeight)
	assert.Equal(t, 3, linked[0].NumTravelers)
}
