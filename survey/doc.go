// Package survey defines the canonical data model for travel diary
// processing: trip, tour, and joint travel records plus the coded
// vocabularies they use.
//
// # Tables
//
// The processing stages pass slices of these records between each other:
//   - UnlinkedTrip: reported trip segments, the raw diary input
//   - LinkedTrip: complete journeys after change-mode segments are merged
//   - Tour: home-based tours and work-based subtours
//   - JointTrip / JointTour: household members traveling together
//
// Person and Household carry the attributes the tour assembler needs
// (usual locations, person classification inputs).
//
// # Conventions
//
// Identifiers are int64 values built by the ids package; a zero identifier
// means "not assigned". Coordinates use NaN for missing values so that
// distance comparisons against them are always false. Times are time.Time
// and durations are minutes as float64, matching the survey instrument.
package survey
