// Package surveyio reads the survey input tables and writes the processed
// output tables as CSV.
//
// Readers are header driven: columns may appear in any order, optional
// columns may be absent, and blank coordinate cells become NaN. Timestamps
// accept RFC 3339 or "2006-01-02 15:04:05". Writers render unassigned
// identifier fields as blank cells.
package surveyio
