// Package domain models flood risk for the districts of Bangladesh.
//
// # Reference Data
//
// The district table covers all 64 administrative districts with their
// division, approximate headquarters coordinates, and a static
// flood-proneness coefficient in [0,1] reflecting historical flood exposure
// (haor basin and Brahmaputra-Jamuna char districts highest, Chattogram hill
// tracts lowest). The river table lists 13 major rivers with a single
// representative coordinate each. Both tables are embedded JSON, loaded once
// at startup, and immutable afterwards.
//
// # Risk Model
//
// A risk assessment blends three sub-scores, each in [0,1]:
//
//	rainfall:  clamp01((0.7*rain3d + 0.3*rain7d) / 150)
//	zone:      coarse latitude/longitude band heuristic
//	           (northern basin/haor 1.0, central floodplain 0.6, else 0.3)
//	river:     planar distance to the nearest major river, bucketed
//	           (<0.6 deg 1.0, <1.5 deg 0.6, else 0.3)
//
// The default strategy blends 0.45/0.35/0.20 and classifies into three tiers
// (Low <30, Medium <60, High >=60 on the 0-100 scale). The seasonal strategy
// adds a monsoon factor (Jun-Sep 1.0, May/Oct 0.6, else 0.2) with weights
// 0.35/0.30/0.20/0.15 and a fourth VeryHigh tier at >=80.
//
// Distances are planar Euclidean over degrees, not geodesic. Bangladesh spans
// roughly six degrees of latitude, so the error is acceptable for bucketing,
// but the resolver must not be used where geodesic accuracy matters.
//
// # Degradation
//
// Scoring never fails: malformed weather readings are sanitized to neutral
// defaults (0 mm rain, 25 C, 70% humidity) and the assessment records whether
// it was computed from live or fallback data via its confidence value.
package domain
