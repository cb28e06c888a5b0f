package survey

// Coded values from the person table used to derive PersonType. Only the
// codes the derivation reads are named here.

// Age category codes.
const (
	AgeUnder5 = 1
	Age5To15  = 2
	Age16To17 = 3
	Age18To24 = 4
	Age25To34 = 5
	Age35To44 = 6
	Age45To54 = 7
	Age55To64 = 8
)

// Employment codes.
const (
	EmployedFullTime   = 1
	EmployedPartTime   = 2
	EmployedSelf       = 3
	EmployedUnpaid     = 7
	EmployedFurloughed = 8
)

// Student codes.
const (
	StudentFullTimeInPerson = 0
	StudentPartTimeInPerson = 1
	NonStudent              = 2
	StudentPartTimeOnline   = 3
	StudentFullTimeOnline   = 4
)

// School type codes read by the derivation.
const (
	SchoolHomeSchool = 4
	SchoolHighSchool = 7
)

// DerivePersonType classifies a person from employment, student status, and
// age category. Workers take precedence over students within each age band,
// and anyone past working age falls through to retired.
func DerivePersonType(p Person) PersonType {
	fullTime := p.Employment == EmployedFullTime ||
		p.Employment == EmployedSelf ||
		p.Employment == EmployedUnpaid
	partTime := p.Employment == EmployedPartTime ||
		p.Employment == EmployedSelf
	student := p.Student == StudentFullTimeInPerson ||
		p.Student == StudentPartTimeInPerson ||
		p.Student == StudentPartTimeOnline ||
		p.Student == StudentFullTimeOnline
	highSchool := p.SchoolType == SchoolHomeSchool ||
		p.SchoolType == SchoolHighSchool
	workingAge := p.Age >= Age25To34 && p.Age <= Age55To64

	switch {
	case p.Age == AgeUnder5:
		return PersonChildUnder5
	case p.Age == Age5To15:
		return PersonChild5To15
	case p.Age == Age16To17 && fullTime:
		return PersonFullTimeWorker
	case p.Age == Age16To17 && student:
		return PersonHighSchoolStudent
	case p.Age == Age18To24 && fullTime:
		return PersonFullTimeWorker
	case p.Age == Age18To24 && highSchool && student:
		return PersonHighSchoolStudent
	case p.Age == Age18To24 && student:
		return PersonUniversityStudent
	case p.Age == Age18To24 && partTime:
		return PersonPartTimeWorker
	case workingAge && fullTime:
		return PersonFullTimeWorker
	case workingAge && student:
		return PersonUniversityStudent
	case workingAge && partTime:
		return PersonPartTimeWorker
	case workingAge:
		return PersonNonWorker
	default:
		return PersonRetired
	}
}

// CategoryForPersonType maps a detailed person type to the simplified
// category used in purpose priority lookup.
var CategoryForPersonType = map[PersonType]PersonCategory{
	PersonFullTimeWorker:    CategoryWorker,
	PersonPartTimeWorker:    CategoryWorker,
	PersonRetired:           CategoryOther,
	PersonNonWorker:         CategoryOther,
	PersonUniversityStudent: CategoryStudent,
	PersonHighSchoolStudent: CategoryStudent,
	PersonChild5To15:        CategoryStudent,
	PersonChildUnder5:       CategoryOther,
}
