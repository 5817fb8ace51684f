// Package frdate formats dates the way French administrative documents
// expect them.
package frdate

import (
	"fmt"
	"time"
)

var months = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// Long renders "2 janvier 2006".
func Long(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), months[t.Month()-1], t.Year())
}

// Short renders the numeric French form "02/01/2006".
func Short(t time.Time) string {
	return t.Format("02/01/2006")
}
