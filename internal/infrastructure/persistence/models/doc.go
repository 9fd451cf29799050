// Package models contains the GORM persistence models and their
// conversions to and from the domain entities. Domain packages never
// see these types.
package models
