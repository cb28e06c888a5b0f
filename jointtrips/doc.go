// Package jointtrips detects trips that members of the same household made
// together.
//
// Candidate pairs are overlapping trips of different persons in a
// multi-person household. The buffer method accepts a pair
// when origins, destinations, and both trip ends each fall within fixed
// thresholds; the mahalanobis method scores the four features against a
// calibrated diagonal covariance and a chi-squared confidence bound.
// Matched pairs are merged into connected components, so a three-person
// carpool becomes one joint trip even when only consecutive pairs matched.
//
// Calibrate estimates the covariance diagonals from a survey sample.
package jointtrips
