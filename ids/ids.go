// Package ids builds the hierarchical identifiers used across the survey
// tables. Every level appends a fixed number of decimal digits to its parent:
//
//	hh_id                              (variable length, typically 8 digits)
//	person_id  = hh_id     + 2 digits
//	day_id     = person_id + 2 digits
//	linked_trip_id = day_id + 2 digits
//	tour_id    = day_id + 4 digits (tour_num*1000 + subtour_num*10)
//	joint_tour_id = hh_id + 2 digits
//
// Composition is pure integer arithmetic so an identifier remains sortable
// and its parent recoverable. Range checks on sequence numbers are the
// caller's responsibility.
package ids

// Compose appends seq to parent as a zero-padded block of the given number
// of decimal digits. The caller must ensure 0 <= seq < 10^digits.
func Compose(parent, seq int64, digits int) int64 {
	return parent*pow10(digits) + seq
}

// Decompose splits an identifier back into its parent and the trailing
// sequence block of the given number of decimal digits.
func Decompose(id int64, digits int) (parent, seq int64) {
	p := pow10(digits)
	return id / p, id % p
}

// LinkedTripID builds a linked trip identifier from its day and the
// per-person linked trip number.
func LinkedTripID(dayID, linkedTripNum int64) int64 {
	return Compose(dayID, linkedTripNum, 2)
}

// TourID builds a tour identifier from its day, tour number, and subtour
// number. The four-digit suffix reserves two digits for the tour number and
// two for the subtour, so subtours sort directly after their parent.
func TourID(dayID int64, tourNum, subtourNum int) int64 {
	return Compose(dayID, int64(tourNum)*1000+int64(subtourNum)*10, 4)
}

// ParentTourID builds the identifier of a tour's parent, which is the tour
// identifier with the subtour digits zeroed.
func ParentTourID(dayID int64, tourNum int) int64 {
	return Compose(dayID, int64(tourNum)*1000, 4)
}

// JointTourID builds a joint tour identifier from the household and the
// per-household joint tour number.
func JointTourID(hhID, jointTourNum int64) int64 {
	return Compose(hhID, jointTourNum, 2)
}

func pow10(digits int) int64 {
	p := int64(1)
	for i := 0; i < digits; i++ {
		p *= 10
	}
	return p
}
