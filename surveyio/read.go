package surveyio

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/theoremus-urban-solutions/diary-to-tours/survey"
)

// Accepted timestamp layouts, tried in order.
var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05"}

// table reads one CSV table with a named header row.
type table struct {
	name string
	cols map[string]int
	rec  *csv.Reader
	row  []string
	line int
}

func newTable(name string, r io.Reader) (*table, error) {
	rec := csv.NewReader(r)
	rec.ReuseRecord = true
	header, err := rec.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: reading header: %w", name, err)
	}
	cols := make(map[string]int, len(header))
	for i, c := range header {
		cols[c] = i
	}
	return &table{name: name, cols: cols, rec: rec}, nil
}

func (t *table) require(names ...string) error {
	for _, n := range names {
		if _, ok := t.cols[n]; !ok {
			return fmt.Errorf("%s: missing required column %q", t.name, n)
		}
	}
	return nil
}

// next advances to the next row, reporting false at EOF.
func (t *table) next() (bool, error) {
	row, err := t.rec.Read()
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", t.name, err)
	}
	t.row = row
	t.line++
	return true, nil
}

func (t *table) str(name string) string {
	i, ok := t.cols[name]
	if !ok || i >= len(t.row) {
		return ""
	}
	return t.row[i]
}

func (t *table) int64Col(name string) (int64, error) {
	s := t.str(name)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s row %d: column %q: %w", t.name, t.line, name, err)
	}
	return v, nil
}

func (t *table) intCol(name string) (int, error) {
	v, err := t.int64Col(name)
	return int(v), err
}

// floatCol parses a float, mapping blank to NaN so missing coordinates
// never match a proximity check.
func (t *table) floatCol(name string) (float64, error) {
	s := t.str(name)
	if s == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s row %d: column %q: %w", t.name, t.line, name, err)
	}
	return v, nil
}

func (t *table) timeCol(name string) (time.Time, error) {
	s := t.str(name)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			return v, nil
		}
	}
	return time.Time{}, fmt.Errorf("%s row %d: column %q: unparseable time %q", t.name, t.line, name, s)
}

// ReadUnlinkedTrips reads the trip segment table.
func ReadUnlinkedTrips(r io.Reader) ([]survey.UnlinkedTrip, error) {
	t, err := newTable("trips", r)
	if err != nil {
		return nil, err
	}
	if err := t.require("trip_id", "hh_id", "person_id", "day_id",
		"depart_time", "arrive_time", "d_purpose_category", "mode_type"); err != nil {
		return nil, err
	}

	var trips []survey.UnlinkedTrip
	for {
		ok, err := t.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return trips, nil
		}

		var trip survey.UnlinkedTrip
		var mode, oPurpose, dPurpose, driver int
		fields := []struct {
			dst any
			col string
		}{
			{&trip.TripID, "trip_id"},
			{&trip.HHID, "hh_id"},
			{&trip.PersonID, "person_id"},
			{&trip.DayID, "day_id"},
			{&trip.TravelDOW, "travel_dow"},
			{&trip.DepartTime, "depart_time"},
			{&trip.ArriveTime, "arrive_time"},
			{&trip.OLat, "o_lat"},
			{&trip.OLon, "o_lon"},
			{&trip.DLat, "d_lat"},
			{&trip.DLon, "d_lon"},
			{&oPurpose, "o_purpose_category"},
			{&dPurpose, "d_purpose_category"},
			{&mode, "mode_type"},
			{&driver, "driver"},
			{&trip.NumTravelers, "num_travelers"},
			{&trip.DistanceMeters, "distance_meters"},
			{&trip.DurationMinutes, "duration_minutes"},
			{&trip.TripWeight, "trip_weight"},
		}
		for _, f := range fields {
			if err := t.scan(f.dst, f.col); err != nil {
				return nil, err
			}
		}
		trip.OPurpose = survey.PurposeCategory(oPurpose)
		trip.DPurpose = survey.PurposeCategory(dPurpose)
		trip.Mode = survey.ModeType(mode)
		trip.Driver = survey.Driver(driver)
		trips = append(trips, trip)
	}
}

// scan parses the named column into dst according to its type.
func (t *table) scan(dst any, name string) error {
	switch d := dst.(type) {
	case *int64:
		v, err := t.int64Col(name)
		if err != nil {
			return err
		}
		*d = v
	case *int:
		v, err := t.intCol(name)
		if err != nil {
			return err
		}
		*d = v
	case *float64:
		v, err := t.floatCol(name)
		if err != nil {
			return err
		}
		*d = v
	case *time.Time:
		v, err := t.timeCol(name)
		if err != nil {
			return err
		}
		*d = v
	default:
		return fmt.Errorf("%s: unsupported column type for %q", t.name, name)
	}
	return nil
}

// ReadPersons reads the person table. person_type is optional; when absent
// or blank the tour assembler derives it from the other codes.
func ReadPersons(r io.Reader) ([]survey.Person, error) {
	t, err := newTable("persons", r)
	if err != nil {
		return nil, err
	}
	if err := t.require("person_id", "hh_id"); err != nil {
		return nil, err
	}

	var persons []survey.Person
	for {
		ok, err := t.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return persons, nil
		}

		var p survey.Person
		var personType int
		fields := []struct {
			dst any
			col string
		}{
			{&p.PersonID, "person_id"},
			{&p.HHID, "hh_id"},
			{&personType, "person_type"},
			{&p.Age, "age"},
			{&p.Employment, "employment"},
			{&p.Student, "student"},
			{&p.SchoolType, "school_type"},
			{&p.WorkLat, "work_lat"},
			{&p.WorkLon, "work_lon"},
			{&p.SchoolLat, "school_lat"},
			{&p.SchoolLon, "school_lon"},
		}
		for _, f := range fields {
			if err := t.scan(f.dst, f.col); err != nil {
				return nil, err
			}
		}
		p.PersonType = survey.PersonType(personType)
		persons = append(persons, p)
	}
}

// ReadHouseholds reads the household table with home locations.
func ReadHouseholds(r io.Reader) ([]survey.Household, error) {
	t, err := newTable("households", r)
	if err != nil {
		return nil, err
	}
	if err := t.require("hh_id"); err != nil {
		return nil, err
	}

	var households []survey.Household
	for {
		ok, err := t.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return households, nil
		}

		var h survey.Household
		if err := t.scan(&h.HHID, "hh_id"); err != nil {
			return nil, err
		}
		if err := t.scan(&h.HomeLat, "home_lat"); err != nil {
			return nil, err
		}
		if err := t.scan(&h.HomeLon, "home_lon"); err != nil {
			return nil, err
		}
		households = append(households, h)
	}
}
