package utils

import (
	"log"
	"time"
)

// LoadLocation resolves a configured time zone name, falling back to the
// process local zone when the name is unknown.
func LoadLocation(name string) *time.Location {
	if name == "" || name == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Unknown time zone %q, using local time: %v", name, err)
		return time.Local
	}
	return loc
}

func FromUnixSeconds(t int64, loc *time.Location) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).In(loc)
}
