package survey

import "fmt"

// ModeType is the travel mode of a trip segment.
type ModeType int

const (
	ModeWalk         ModeType = 1
	ModeBike         ModeType = 2
	ModeBikeshare    ModeType = 3
	ModeScootershare ModeType = 4
	ModeTaxi         ModeType = 5
	ModeTNC          ModeType = 6
	ModeOther        ModeType = 7
	ModeCar          ModeType = 8
	ModeCarshare     ModeType = 9
	ModeSchoolBus    ModeType = 10
	ModeShuttle      ModeType = 11
	ModeFerry        ModeType = 12
	ModeTransit      ModeType = 13
	ModeLongDistance ModeType = 14
	ModeMissing      ModeType = 995
)

// PurposeCategory is the activity purpose at a trip end.
type PurposeCategory int

const (
	PurposeHome         PurposeCategory = 1
	PurposeWork         PurposeCategory = 2
	PurposeWorkRelated  PurposeCategory = 3
	PurposeSchool       PurposeCategory = 4
	PurposeSchoolRel    PurposeCategory = 5
	PurposeEscort       PurposeCategory = 6
	PurposeShop         PurposeCategory = 7
	PurposeMeal         PurposeCategory = 8
	PurposeSocialRec    PurposeCategory = 9
	PurposeErrand       PurposeCategory = 10
	PurposeChangeMode   PurposeCategory = 11
	PurposeOvernight    PurposeCategory = 12
	PurposeOther        PurposeCategory = 13
	PurposeMissing      PurposeCategory = 995
	PurposeNotImputable PurposeCategory = 996
	PurposePNTA         PurposeCategory = 999
)

// Driver indicates whether the traveler drove on a trip segment.
type Driver int

const (
	DriverDriver    Driver = 1
	DriverPassenger Driver = 2
	DriverBoth      Driver = 3
	DriverMissing   Driver = 995
)

// AccessEgressMode classifies how a transit trip was accessed or egressed.
type AccessEgressMode int

const (
	AccessEgressWalk          AccessEgressMode = 1
	AccessEgressBicycle       AccessEgressMode = 2
	AccessEgressTransferBus   AccessEgressMode = 3
	AccessEgressMicromobility AccessEgressMode = 4
	AccessEgressTransferOther AccessEgressMode = 5
	AccessEgressTNC           AccessEgressMode = 6
	AccessEgressCarHousehold  AccessEgressMode = 7
	AccessEgressCarOther      AccessEgressMode = 8
	AccessEgressMissing       AccessEgressMode = 995
	AccessEgressOther         AccessEgressMode = 997
)

// accessEgressByMode maps segment modes onto transit access/egress classes.
var accessEgressByMode = map[ModeType]AccessEgressMode{
	ModeWalk:         AccessEgressWalk,
	ModeBike:         AccessEgressBicycle,
	ModeBikeshare:    AccessEgressBicycle,
	ModeScootershare: AccessEgressMicromobility,
	ModeTaxi:         AccessEgressTNC,
	ModeTNC:          AccessEgressTNC,
	ModeCar:          AccessEgressCarHousehold,
	ModeCarshare:     AccessEgressCarOther,
	ModeSchoolBus:    AccessEgressTransferBus,
	ModeShuttle:      AccessEgressTransferBus,
	ModeFerry:        AccessEgressTransferOther,
	ModeTransit:      AccessEgressTransferOther,
	ModeLongDistance: AccessEgressTransferOther,
	ModeOther:        AccessEgressOther,
	ModeMissing:      AccessEgressMissing,
}

// AccessEgressForMode converts a segment mode to its access/egress class.
// An unmapped mode is a structural error in the input coding.
func AccessEgressForMode(m ModeType) (AccessEgressMode, error) {
	ae, ok := accessEgressByMode[m]
	if !ok {
		return 0, fmt.Errorf("survey: mode type %d has no access/egress mapping", m)
	}
	return ae, nil
}

// TourType distinguishes home-based tours from work-based subtours.
type TourType int

const (
	TourHomeBased TourType = 1
	TourWorkBased TourType = 2
)

// TourCategory classifies a tour by whether it starts and ends at home.
type TourCategory int

const (
	TourComplete     TourCategory = 1
	TourPartialEnd   TourCategory = 2
	TourPartialStart TourCategory = 3
	TourPartialBoth  TourCategory = 4
)

// TourDirection is the half-tour classification of a linked trip.
type TourDirection int

const (
	DirectionOutbound TourDirection = 1
	DirectionInbound  TourDirection = 2
	DirectionSubtour  TourDirection = 3
)

// TourDataQuality labels tours whose structure indicates a data problem.
// Flagged tours stay in the output so downstream formatters decide what to
// filter.
type TourDataQuality int

const (
	QualityValid             TourDataQuality = 0
	QualitySingleTrip        TourDataQuality = 1
	QualityLoopTrip          TourDataQuality = 2
	QualityMissingHomeAnchor TourDataQuality = 3
	QualityIndeterminate     TourDataQuality = 4
	QualityChangeMode        TourDataQuality = 5
)

func (q TourDataQuality) String() string {
	switch q {
	case QualityValid:
		return "valid"
	case QualitySingleTrip:
		return "single_trip"
	case QualityLoopTrip:
		return "loop_trip"
	case QualityMissingHomeAnchor:
		return "missing_home_anchor"
	case QualityIndeterminate:
		return "indeterminate"
	case QualityChangeMode:
		return "change_mode"
	default:
		return fmt.Sprintf("quality(%d)", int(q))
	}
}

// PersonType is the derived person classification used for purpose
// prioritization.
type PersonType int

const (
	PersonFullTimeWorker    PersonType = 1
	PersonPartTimeWorker    PersonType = 2
	PersonRetired           PersonType = 3
	PersonNonWorker         PersonType = 4
	PersonUniversityStudent PersonType = 5
	PersonHighSchoolStudent PersonType = 6
	PersonChild5To15        PersonType = 7
	PersonChildUnder5       PersonType = 8
)

// PersonCategory groups person types for purpose priority lookup.
type PersonCategory string

const (
	CategoryWorker  PersonCategory = "worker"
	CategoryStudent PersonCategory = "student"
	CategoryOther   PersonCategory = "other"
)
