// Package kernel contains shared value objects used across all domain aggregates:
// UUID identifiers and WGS84 geo points. These types are immutable, validate
// themselves on construction, and carry no behavior beyond what every aggregate
// needs (identity comparison, distance calculation).
package kernel
