package surveyio

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/diary-to-tours/survey"
)

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.Format(time.RFC3339)
}

// formatID renders identifier and code fields, leaving unassigned zeroes
// blank.
func formatID(v int64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatInt(v, 10)
}

func writeAll(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLinkedTrips writes the linked trip table with its tour and joint
// travel annotations.
func WriteLinkedTrips(w io.Writer, trips []survey.LinkedTrip) error {
	header := []string{
		"linked_trip_id", "linked_trip_num", "person_id", "hh_id", "day_id",
		"travel_dow", "depart_time", "arrive_time",
		"o_lat", "o_lon", "d_lat", "d_lon",
		"o_purpose_category", "d_purpose_category",
		"distance_meters", "travel_duration_minutes", "duration_minutes",
		"dwell_duration_minutes", "num_segments",
		"trip_weight", "num_travelers",
		"mode_type", "driver", "access_mode", "egress_mode",
		"tour_id", "tour_num", "subtour_num", "tour_direction",
		"joint_trip_id", "joint_tour_id",
	}
	rows := make([][]string, 0, len(trips))
	for i := range trips {
		t := &trips[i]
		rows = append(rows, []string{
			strconv.FormatInt(t.LinkedTripID, 10),
			strconv.FormatInt(t.LinkedTripNum, 10),
			strconv.FormatInt(t.PersonID, 10),
			strconv.FormatInt(t.HHID, 10),
			strconv.FormatInt(t.DayID, 10),
			strconv.Itoa(t.TravelDOW),
			formatTime(t.DepartTime),
			formatTime(t.ArriveTime),
			formatFloat(t.OLat), formatFloat(t.OLon),
			formatFloat(t.DLat), formatFloat(t.DLon),
			strconv.Itoa(int(t.OPurpose)), strconv.Itoa(int(t.DPurpose)),
			formatFloat(t.DistanceMeters),
			formatFloat(t.TravelDurationMinutes),
			formatFloat(t.DurationMinutes),
			formatFloat(t.DwellDurationMinutes),
			strconv.Itoa(t.NumSegments),
			formatFloat(t.TripWeight),
			strconv.Itoa(t.NumTravelers),
			strconv.Itoa(int(t.Mode)),
			strconv.Itoa(int(t.Driver)),
			formatID(int64(t.AccessMode)),
			formatID(int64(t.EgressMode)),
			formatID(t.TourID),
			strconv.Itoa(t.TourNum),
			strconv.Itoa(t.SubtourNum),
			formatID(int64(t.TourDirection)),
			formatID(t.JointTripID),
			formatID(t.JointTourID),
		})
	}
	return writeAll(w, header, rows)
}

// WriteTours writes the tour table.
func WriteTours(w io.Writer, tours []survey.Tour) error {
	header := []string{
		"tour_id", "person_id", "hh_id", "day_id",
		"tour_num", "subtour_num", "parent_tour_id",
		"origin_linked_trip_id", "dest_linked_trip_id",
		"tour_mode", "outbound_mode", "inbound_mode",
		"origin_depart_time", "origin_arrive_time",
		"dest_arrive_time", "dest_depart_time",
		"o_lat", "o_lon", "d_lat", "d_lon",
		"tour_purpose", "tour_type", "tour_category", "data_quality",
		"trip_count", "stop_count", "single_trip", "joint_tour_id",
	}
	rows := make([][]string, 0, len(tours))
	for i := range tours {
		t := &tours[i]
		rows = append(rows, []string{
			strconv.FormatInt(t.TourID, 10),
			strconv.FormatInt(t.PersonID, 10),
			strconv.FormatInt(t.HHID, 10),
			strconv.FormatInt(t.DayID, 10),
			strconv.Itoa(t.TourNum),
			strconv.Itoa(t.SubtourNum),
			strconv.FormatInt(t.ParentTourID, 10),
			formatID(t.OriginLinkedTripID),
			formatID(t.DestLinkedTripID),
			formatID(int64(t.TourMode)),
			formatID(int64(t.OutboundMode)),
			formatID(int64(t.InboundMode)),
			formatTime(t.OriginDepartTime),
			formatTime(t.OriginArriveTime),
			formatTime(t.DestArriveTime),
			formatTime(t.DestDepartTime),
			formatFloat(t.OLat), formatFloat(t.OLon),
			formatFloat(t.DLat), formatFloat(t.DLon),
			formatID(int64(t.TourPurpose)),
			strconv.Itoa(int(t.TourType)),
			strconv.Itoa(int(t.Category)),
			strconv.Itoa(int(t.DataQuality)),
			strconv.Itoa(t.TripCount),
			strconv.Itoa(t.StopCount),
			strconv.FormatBool(t.SingleTrip),
			formatID(t.JointTourID),
		})
	}
	return writeAll(w, header, rows)
}

// WriteJointTrips writes the joint trip table.
func WriteJointTrips(w io.Writer, joint []survey.JointTrip) error {
	header := []string{
		"joint_trip_id", "hh_id", "day_id", "num_joint_travelers",
		"o_lat_mean", "o_lon_mean", "d_lat_mean", "d_lon_mean",
		"min_depart_time", "max_arrive_time",
	}
	rows := make([][]string, 0, len(joint))
	for i := range joint {
		jt := &joint[i]
		rows = append(rows, []string{
			strconv.FormatInt(jt.JointTripID, 10),
			strconv.FormatInt(jt.HHID, 10),
			strconv.FormatInt(jt.DayID, 10),
			strconv.Itoa(jt.NumJointTravelers),
			formatFloat(jt.OLatMean), formatFloat(jt.OLonMean),
			formatFloat(jt.DLatMean), formatFloat(jt.DLonMean),
			formatTime(jt.MinDepartTime),
			formatTime(jt.MaxArriveTime),
		})
	}
	return writeAll(w, header, rows)
}

// WriteJointTours writes the joint tour table. Participant and tour lists
// are semicolon separated.
func WriteJointTours(w io.Writer, joint []survey.JointTour) error {
	header := []string{"joint_tour_id", "hh_id", "participants", "tour_ids"}
	rows := make([][]string, 0, len(joint))
	for i := range joint {
		jt := &joint[i]
		rows = append(rows, []string{
			strconv.FormatInt(jt.JointTourID, 10),
			strconv.FormatInt(jt.HHID, 10),
			joinInt64(jt.Participants),
			joinInt64(jt.TourIDs),
		})
	}
	return writeAll(w, header, rows)
}

func joinInt64(vs []int64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ";")
}
