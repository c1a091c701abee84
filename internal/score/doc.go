// Package score turns raw analysis metrics into display data.
//
// Two independent classification scales live here and must stay separate:
// the aggregate score (derived from load time alone) is classified with
// ClassifyScore at 90/70, while each raw metric is classified with Classify
// against its own threshold row.
package score
