package survey

import "time"

// Missing coordinates are represented as NaN so distance comparisons
// against them are always false. Identifier and code annotation fields use
// zero as "unassigned"; every real identifier and code is positive.

// UnlinkedTrip is one reported trip segment from the travel diary.
type UnlinkedTrip struct {
	TripID   int64
	HHID     int64
	PersonID int64
	DayID    int64

	TravelDOW  int
	DepartTime time.Time
	ArriveTime time.Time

	OLat float64
	OLon float64
	DLat float64
	DLon float64

	OPurpose PurposeCategory
	DPurpose PurposeCategory

	Mode         ModeType
	Driver       Driver
	NumTravelers int

	DistanceMeters  float64
	DurationMinutes float64
	TripWeight      float64

	// Set by the trip linker and tour assembler. Zero means unassigned.
	LinkedTripID int64
	TourID       int64
}

// LinkedTrip is a complete journey aggregated from one or more consecutive
// segments that were split at change-mode stops.
type LinkedTrip struct {
	LinkedTripID  int64
	LinkedTripNum int64
	PersonID      int64
	HHID          int64
	DayID         int64

	TravelDOW  int
	DepartTime time.Time
	ArriveTime time.Time

	// Origin fields come from the first segment, destination fields from
	// the last.
	OLat     float64
	OLon     float64
	DLat     float64
	DLon     float64
	OPurpose PurposeCategory
	DPurpose PurposeCategory

	DistanceMeters        float64
	TravelDurationMinutes float64
	DurationMinutes       float64
	DwellDurationMinutes  float64
	NumSegments           int

	TripWeight   float64
	NumTravelers int

	Mode   ModeType
	Driver Driver
	// Access/egress are only set when the journey includes a transit leg.
	AccessMode AccessEgressMode
	EgressMode AccessEgressMode

	// Set by the tour assembler. TourNum 0 with a nonzero TourID marks
	// trips recorded before any detectable tour start.
	TourID        int64
	TourNum       int
	SubtourNum    int
	TourDirection TourDirection

	// Set by the joint travel stages. Zero means the trip was not joint.
	JointTripID int64
	JointTourID int64
}

// Tour is one round trip anchored at home, or a work-based subtour.
type Tour struct {
	TourID       int64
	PersonID     int64
	HHID         int64
	DayID        int64
	TourNum      int
	SubtourNum   int
	ParentTourID int64

	OriginLinkedTripID int64
	DestLinkedTripID   int64

	TourMode ModeType
	// Half-tour modes are zero when no trip falls in that half.
	OutboundMode ModeType
	InboundMode  ModeType

	OriginDepartTime time.Time
	OriginArriveTime time.Time
	DestArriveTime   time.Time
	DestDepartTime   time.Time

	OLat float64
	OLon float64
	DLat float64
	DLon float64

	// Zero for single-trip tours, which have no non-final destination.
	TourPurpose PurposeCategory

	TourType    TourType
	Category    TourCategory
	DataQuality TourDataQuality

	TripCount  int
	StopCount  int
	SingleTrip bool

	JointTourID int64
}

// JointTrip is a group of linked trips made together by household members.
type JointTrip struct {
	JointTripID       int64
	HHID              int64
	DayID             int64
	NumJointTravelers int

	OLatMean float64
	OLonMean float64
	DLatMean float64
	DLonMean float64

	MinDepartTime time.Time
	MaxArriveTime time.Time
}

// JointTour groups individual tours made together by a stable set of
// household members.
type JointTour struct {
	JointTourID  int64
	HHID         int64
	Participants []int64
	TourIDs      []int64
}

// Person carries the person attributes the tour assembler needs. Missing
// usual-location coordinates are NaN. PersonType zero means underived; the
// assembler derives it from the age, employment, student, and school type
// codes.
type Person struct {
	PersonID int64
	HHID     int64

	PersonType PersonType
	Age        int
	Employment int
	Student    int
	SchoolType int

	WorkLat   float64
	WorkLon   float64
	SchoolLat float64
	SchoolLon float64
}

// Household carries the home location used for anchoring tours.
type Household struct {
	HHID    int64
	HomeLat float64
	HomeLon float64
}
