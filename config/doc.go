// Package config defines the application configuration for travel diary
// processing and its YAML loader.
//
// Configuration is split by stage: LinkerConfig for trip linking,
// ToursConfig for tour extraction, and JointTripsConfig for joint travel
// detection. Default() returns a fully populated configuration; LoadAppConfig
// layers a YAML file and environment variable overrides on top of it and
// validates the result.
package config
