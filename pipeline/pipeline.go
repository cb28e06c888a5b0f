package pipeline

import (
	"fmt"
	"log"

	"github.com/theoremus-urban-solutions/diary-to-tours/config"
	"github.com/theoremus-urban-solutions/diary-to-tours/jointtrips"
	"github.com/theoremus-urban-solutions/diary-to-tours/linker"
	"github.com/theoremus-urban-solutions/diary-to-tours/survey"
	"github.com/theoremus-urban-solutions/diary-to-tours/tours"
)

// Pipeline runs the diary processing stages in order: trip linking, joint
// trip detection, tour assembly, joint tour identification.
type Pipeline struct {
	Persons    []survey.Person
	Households []survey.Household
	Trips      []survey.UnlinkedTrip
	Cfg        config.AppConfig
}

// Results holds every output table. The input trip segments are returned
// annotated with their linked trip and tour assignments.
type Results struct {
	UnlinkedTrips []survey.UnlinkedTrip
	LinkedTrips   []survey.LinkedTrip
	Tours         []survey.Tour
	JointTrips    []survey.JointTrip
	JointTours    []survey.JointTour
}

// Run executes all stages and returns the assembled tables.
func (p *Pipeline) Run() (*Results, error) {
	linked, err := linker.New(p.Cfg.Linker).Link(p.Trips)
	if err != nil {
		return nil, fmt.Errorf("linking trips: %w", err)
	}

	detector, err := jointtrips.NewDetector(p.Cfg.JointTrips)
	if err != nil {
		return nil, err
	}
	jointTrips, err := detector.Detect(linked)
	if err != nil {
		return nil, fmt.Errorf("detecting joint trips: %w", err)
	}

	allTours, err := tours.NewAssembler(p.Cfg.Tours).Assemble(p.Persons, p.Households, linked)
	if err != nil {
		return nil, fmt.Errorf("assembling tours: %w", err)
	}

	jointTours, err := tours.IdentifyJointTours(linked, allTours)
	if err != nil {
		return nil, fmt.Errorf("identifying joint tours: %w", err)
	}

	propagateTourIDs(p.Trips, linked)

	log.Printf("pipeline: %d segments, %d linked trips, %d tours, %d joint trips, %d joint tours",
		len(p.Trips), len(linked), len(allTours), len(jointTrips), len(jointTours))
	return &Results{
		UnlinkedTrips: p.Trips,
		LinkedTrips:   linked,
		Tours:         allTours,
		JointTrips:    jointTrips,
		JointTours:    jointTours,
	}, nil
}

// propagateTourIDs copies each linked trip's tour assignment back onto its
// constituent segments.
func propagateTourIDs(segments []survey.UnlinkedTrip, linked []survey.LinkedTrip) {
	byID := make(map[int64]int64, len(linked))
	for i := range linked {
		byID[linked[i].LinkedTripID] = linked[i].TourID
	}
	for i := range segments {
		segments[i].TourID = byID[segments[i].LinkedTripID]
	}
}
