// Package tours extracts tours from linked trips.
//
// A tour is a chain of trips that starts and ends at home; a work-based
// subtour is an excursion made from the workplace during the workday. The
// Assembler detects tour boundaries, numbers tours within each person-day,
// carves out subtours inside the anchor period at the usual workplace or
// school, selects each tour's primary purpose and destination, labels trips
// with their half-tour direction, and grades every tour's structural data
// quality.
//
// IdentifyJointTours runs after joint trip detection and links tours that a
// stable group of household members made entirely together.
package tours
