// Package linker merges unlinked trip segments into linked trips.
//
// Survey respondents report a separate trip segment each time they change
// mode, so a walk-bus-walk commute arrives as three rows. The linker sorts
// segments per person, joins a segment to its predecessor when the
// predecessor ended at a change-mode stop within the configured dwell
// distance and time, and aggregates each chain into one LinkedTrip: origin
// fields from the first segment, destination fields from the last, summed
// distances and travel times, and a resolved journey mode with transit
// access and egress classification.
package linker
