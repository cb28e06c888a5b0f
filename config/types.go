package config

// LinkerConfig controls how trip segments are merged into linked trips.
type LinkerConfig struct {
	ChangeModeCode            int     `yaml:"changeModeCode" env:"DTT_CHANGE_MODE_CODE" validate:"gt=0"`
	TransitModeCodes          []int   `yaml:"transitModeCodes" validate:"min=1,dive,gt=0"`
	MaxDwellTimeMinutes       float64 `yaml:"maxDwellTimeMinutes" env:"DTT_MAX_DWELL_MINUTES" validate:"gte=0"`
	DwellBufferDistanceMeters float64 `yaml:"dwellBufferDistanceMeters" env:"DTT_DWELL_BUFFER_METERS" validate:"gte=0"`
}

// ToursConfig controls tour extraction behavior.
type ToursConfig struct {
	// Distance thresholds in meters for matching trip ends to known
	// locations. Also used to identify repeated visits to the primary
	// destination.
	HomeThresholdMeters   float64 `yaml:"homeThresholdMeters" env:"DTT_HOME_THRESHOLD_M" validate:"gt=0"`
	WorkThresholdMeters   float64 `yaml:"workThresholdMeters" env:"DTT_WORK_THRESHOLD_M" validate:"gt=0"`
	SchoolThresholdMeters float64 `yaml:"schoolThresholdMeters" env:"DTT_SCHOOL_THRESHOLD_M" validate:"gt=0"`

	// Ordered mode codes; later in the list wins the tour mode.
	ModeHierarchy []int `yaml:"modeHierarchy" validate:"min=1,dive,gt=0"`

	// Purpose priority per person category ("worker", "student", "other");
	// lower value wins. Every non-home purpose a trip can carry must be
	// mapped.
	PurposePriority map[string]map[int]int `yaml:"purposePriority" validate:"min=1"`

	DefaultActivityDurationMinutes float64 `yaml:"defaultActivityDurationMinutes" env:"DTT_DEFAULT_ACTIVITY_MINUTES" validate:"gt=0"`
}

// JointTripsConfig controls joint travel detection.
type JointTripsConfig struct {
	// buffer applies strict thresholds on all four pair features;
	// mahalanobis applies a statistical distance with the diagonal
	// covariance below.
	Method string `yaml:"method" env:"DTT_JOINT_METHOD" validate:"oneof=buffer mahalanobis"`

	TimeThresholdMinutes float64 `yaml:"timeThresholdMinutes" env:"DTT_JOINT_TIME_MINUTES" validate:"gt=0"`
	SpaceThresholdMeters float64 `yaml:"spaceThresholdMeters" env:"DTT_JOINT_SPACE_METERS" validate:"gt=0"`

	// Diagonal variances [origin m^2, dest m^2, depart min^2, arrive min^2].
	Covariance []float64 `yaml:"covariance" validate:"len=4,dive,gt=0"`

	// Share of pair comparisons the mahalanobis cutoff accepts is
	// 1 - ConfidenceLevel; higher confidence is stricter.
	ConfidenceLevel float64 `yaml:"confidenceLevel" env:"DTT_JOINT_CONFIDENCE" validate:"gt=0,lt=1"`

	LogDiscrepancies bool `yaml:"logDiscrepancies" env:"DTT_JOINT_LOG_DISCREPANCIES"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Linker     LinkerConfig     `yaml:"linker"`
	Tours      ToursConfig      `yaml:"tours"`
	JointTrips JointTripsConfig `yaml:"jointTrips"`
}
