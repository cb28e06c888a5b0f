package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/theoremus-urban-solutions/diary-to-tours/config"
	"github.com/theoremus-urban-solutions/diary-to-tours/internal"
	"github.com/theoremus-urban-solutions/diary-to-tours/pipeline"
	"github.com/theoremus-urban-solutions/diary-to-tours/survey"
	"github.com/theoremus-urban-solutions/diary-to-tours/surveyio"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file (defaults apply when omitted)")
	tripsPath := flag.String("trips", "", "trip segments CSV (required)")
	personsPath := flag.String("persons", "", "persons CSV (required)")
	householdsPath := flag.String("households", "", "households CSV (required)")
	outDir := flag.String("out", ".", "output directory")
	method := flag.String("method", "", "joint trip method override: buffer|mahalanobis")
	verbose := flag.Bool("verbose", false, "enable per-record debug logging")
	flag.Parse()

	internal.InitLogging()
	internal.SetVerbose(*verbose)

	if *tripsPath == "" || *personsPath == "" || *householdsPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := config.LoadAppConfig(*configPath); err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *method != "" {
		config.Config.JointTrips.Method = *method
	}

	if err := run(*tripsPath, *personsPath, *householdsPath, *outDir); err != nil {
		log.Fatal(err)
	}
}

func run(tripsPath, personsPath, householdsPath, outDir string) error {
	trips, err := readTrips(tripsPath)
	if err != nil {
		return err
	}
	persons, err := readPersons(personsPath)
	if err != nil {
		return err
	}
	households, err := readHouseholds(householdsPath)
	if err != nil {
		return err
	}

	p := &pipeline.Pipeline{
		Persons:    persons,
		Households: households,
		Trips:      trips,
		Cfg:        config.Config,
	}
	res, err := p.Run()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	outputs := []struct {
		name  string
		write func(f *os.File) error
	}{
		{"linked_trips.csv", func(f *os.File) error { return surveyio.WriteLinkedTrips(f, res.LinkedTrips) }},
		{"tours.csv", func(f *os.File) error { return surveyio.WriteTours(f, res.Tours) }},
		{"joint_trips.csv", func(f *os.File) error { return surveyio.WriteJointTrips(f, res.JointTrips) }},
		{"joint_tours.csv", func(f *os.File) error { return surveyio.WriteJointTours(f, res.JointTours) }},
	}
	for _, out := range outputs {
		path := filepath.Join(outDir, out.name)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := out.write(f); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		log.Printf("wrote %s", path)
	}
	return nil
}

func readTrips(path string) ([]survey.UnlinkedTrip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return surveyio.ReadUnlinkedTrips(f)
}

func readPersons(path string) ([]survey.Person, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return surveyio.ReadPersons(f)
}

func readHouseholds(path string) ([]survey.Household, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return surveyio.ReadHouseholds(f)
}
