package util

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// TrackTime logs how long funcName took; use as defer TrackTime("x", time.Now())
func TrackTime(funcName string, start time.Time) {
	log.WithField("op", funcName).Debugf("took %d ms", time.Since(start).Milliseconds())
}
