// Package reproducible implements the SOURCE_DATE_EPOCH convention for reproducible builds.
//
// https://reproducible-builds.org/specs/source-date-epoch/
package reproducible

import (
	"os"
	"strconv"
	"sync"
	"time"
)

var (
	nowOnce sync.Once
	now     time.Time
)

// Now returns the timestamp that build outputs should be stamped with: SOURCE_DATE_EPOCH if it is
// set and valid, or else the wall-clock time of the first call.
func Now() time.Time {
	nowOnce.Do(func() {
		secs, err := strconv.ParseInt(os.Getenv("SOURCE_DATE_EPOCH"), 10, 64)
		if err == nil {
			now = time.Unix(secs, 0)
		} else {
			now = time.Now()
		}
	})
	return now
}
