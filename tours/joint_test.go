package tours

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/diary-to-tours/ids"
	"github.com/theoremus-urban-solutions/diary-to-tours/survey"
)

func jointTestTrip(person, tourID, jointTripID int64) survey.LinkedTrip {
	return survey.LinkedTrip{
		PersonID:    person,
		HHID:        hhID,
		DayID:       dayID,
		TourID:      tourID,
		JointTripID: jointTripID,
	}
}

func TestIdentifyJointToursFullyJointPair(t *testing.T) {
	tourA := ids.TourID(dayID, 1, 0)
	tourB := ids.TourID(dayID+1, 1, 0)
	trips := []survey.LinkedTrip{
		jointTestTrip(1, tourA, 501),
		jointTestTrip(1, tourA, 502),
		jointTestTrip(2, tourB, 501),
		jointTestTrip(2, tourB, 502),
	}
	tours := []survey.Tour{
		{TourID: tourA, PersonID: 1, HHID: hhID},
		{TourID: tourB, PersonID: 2, HHID: hhID},
	}

	joint, err := IdentifyJointTours(trips, tours)
	require.NoError(t, err)
	require.Len(t, joint, 1)

	jt := joint[0]
	assert.Equal(t, ids.JointTourID(hhID, 1), jt.JointTourID)
	assert.Equal(t, []int64{1, 2}, jt.Participants)
	assert.ElementsMatch(t, []int64{tourA, tourB}, jt.TourIDs)

	for i := range tours {
		assert.Equal(t, jt.JointTourID, tours[i].JointTourID)
	}
	for i := range trips {
		assert.Equal(t, jt.JointTourID, trips[i].JointTourID)
	}
}

func TestIdentifyJointToursPartialMemberExcluded(t *testing.T) {
	tourA := ids.TourID(dayID, 1, 0)
	tourB := ids.TourID(dayID+1, 1, 0)
	// Person 2 splits off: their second trip is individual.
	trips := []survey.LinkedTrip{
		jointTestTrip(1, tourA, 501),
		jointTestTrip(1, tourA, 502),
		jointTestTrip(2, tourB, 501),
		jointTestTrip(2, tourB, 0),
	}
	tours := []survey.Tour{
		{TourID: tourA, PersonID: 1, HHID: hhID},
		{TourID: tourB, PersonID: 2, HHID: hhID},
	}

	joint, err := IdentifyJointTours(trips, tours)
	require.NoError(t, err)
	// Person 1's tour is fully joint but the common group across its two
	// joint trips is only person 1, so no joint tour survives.
	assert.Empty(t, joint)
	assert.Zero(t, tours[1].JointTourID)
}

func TestIdentifyJointToursStablePairSurvivesDropoff(t *testing.T) {
	tourA := ids.TourID(dayID, 1, 0)
	tourB := ids.TourID(dayID+1, 1, 0)
	tourC := ids.TourID(dayID+2, 1, 0)
	// All three ride together on the first leg; person 3 then leaves the
	// group. Persons 1 and 2 remain a stable pair.
	trips := []survey.LinkedTrip{
		jointTestTrip(1, tourA, 501),
		jointTestTrip(1, tourA, 502),
		jointTestTrip(2, tourB, 501),
		jointTestTrip(2, tourB, 502),
		jointTestTrip(3, tourC, 501),
		jointTestTrip(3, tourC, 0),
	}
	tours := []survey.Tour{
		{TourID: tourA, PersonID: 1, HHID: hhID},
		{TourID: tourB, PersonID: 2, HHID: hhID},
		{TourID: tourC, PersonID: 3, HHID: hhID},
	}

	joint, err := IdentifyJointTours(trips, tours)
	require.NoError(t, err)
	require.Len(t, joint, 1)
	assert.Equal(t, []int64{1, 2}, joint[0].Participants)
	assert.ElementsMatch(t, []int64{tourA, tourB}, joint[0].TourIDs)
	assert.Zero(t, tours[2].JointTourID)
	assert.Zero(t, trips[4].JointTourID)
}

func TestIdentifyJointToursRequiresMultipleTrips(t *testing.T) {
	tourA := ids.TourID(dayID, 1, 0)
	tourB := ids.TourID(dayID+1, 1, 0)
	trips := []survey.LinkedTrip{
		jointTestTrip(1, tourA, 501),
		jointTestTrip(2, tourB, 501),
	}
	tours := []survey.Tour{
		{TourID: tourA, PersonID: 1, HHID: hhID},
		{TourID: tourB, PersonID: 2, HHID: hhID},
	}

	joint, err := IdentifyJointTours(trips, tours)
	require.NoError(t, err)
	assert.Empty(t, joint)
}

func TestIdentifyJointToursNoTrips(t *testing.T) {
	joint, err := IdentifyJointTours(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, joint)
}
