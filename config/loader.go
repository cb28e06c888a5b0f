package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/theoremus-urban-solutions/diary-to-tours/survey"
)

// Config is the global application configuration
var Config AppConfig

// Default returns the configuration used when a section is not specified.
// Thresholds and priority tables carry the values the survey instrument was
// calibrated with.
func Default() AppConfig {
	sharedPriority := map[int]int{
		int(survey.PurposeEscort):       3,
		int(survey.PurposeShop):         4,
		int(survey.PurposeMeal):         4,
		int(survey.PurposeSocialRec):    4,
		int(survey.PurposeErrand):       4,
		int(survey.PurposeChangeMode):   5,
		int(survey.PurposeOvernight):    5,
		int(survey.PurposeOther):        5,
		int(survey.PurposeMissing):      5,
		int(survey.PurposePNTA):         5,
		int(survey.PurposeNotImputable): 5,
	}
	worker := map[int]int{
		int(survey.PurposeWork):        1,
		int(survey.PurposeWorkRelated): 1,
		int(survey.PurposeSchool):      2,
		int(survey.PurposeSchoolRel):   2,
	}
	student := map[int]int{
		int(survey.PurposeSchool):      1,
		int(survey.PurposeSchoolRel):   1,
		int(survey.PurposeWork):        2,
		int(survey.PurposeWorkRelated): 2,
	}
	other := map[int]int{
		int(survey.PurposeWork):        1,
		int(survey.PurposeWorkRelated): 1,
		int(survey.PurposeSchool):      2,
		int(survey.PurposeSchoolRel):   2,
	}
	for _, m := range []map[int]int{worker, student, other} {
		for k, v := range sharedPriority {
			m[k] = v
		}
	}

	return AppConfig{
		Linker: LinkerConfig{
			ChangeModeCode:            int(survey.PurposeChangeMode),
			TransitModeCodes:          []int{int(survey.ModeFerry), int(survey.ModeTransit)},
			MaxDwellTimeMinutes:       120,
			DwellBufferDistanceMeters: 100,
		},
		Tours: ToursConfig{
			HomeThresholdMeters:   100,
			WorkThresholdMeters:   100,
			SchoolThresholdMeters: 100,
			ModeHierarchy: []int{
				int(survey.ModeWalk),
				int(survey.ModeBike),
				int(survey.ModeBikeshare),
				int(survey.ModeScootershare),
				int(survey.ModeCar),
				int(survey.ModeCarshare),
				int(survey.ModeTaxi),
				int(survey.ModeTNC),
				int(survey.ModeShuttle),
				int(survey.ModeSchoolBus),
				int(survey.ModeFerry),
				int(survey.ModeTransit),
				int(survey.ModeLongDistance),
			},
			PurposePriority: map[string]map[int]int{
				string(survey.CategoryWorker):  worker,
				string(survey.CategoryStudent): student,
				string(survey.CategoryOther):   other,
			},
			DefaultActivityDurationMinutes: 240,
		},
		JointTrips: JointTripsConfig{
			Method:               "buffer",
			TimeThresholdMinutes: 15,
			SpaceThresholdMeters: 100,
			// Empirical variances from household joint trips: origin and
			// destination ~84m std, depart and arrive ~4.5min std.
			Covariance:      []float64{7000, 7000, 20, 20},
			ConfidenceLevel: 0.90,
		},
	}
}

// LoadAppConfig loads and validates the application configuration. A missing
// path keeps the defaults; environment variables override either way.
func LoadAppConfig(path string) error {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return err
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return err
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return err
	}
	Config = cfg
	return nil
}
