// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"strings"
	"sync"
	"time"
)

// Format waktu yang dikirim Midtrans (transaction_time, settlement_time).
const GatewayLayout = "2006-01-02 15:04:05"

var (
	jktOnce sync.Once
	jkt     *time.Location
)

// Jakarta: Asia/Jakarta, fallback ke zona tetap +07:00 kalau tzdata tidak ada.
func Jakarta() *time.Location {
	jktOnce.Do(func() {
		loc, err := time.LoadLocation("Asia/Jakarta")
		if err != nil {
			loc = time.FixedZone("WIB", 7*60*60)
		}
		jkt = loc
	})
	return jkt
}

// ParseGatewayTime mem-parse waktu dari gateway (WIB). ok=false kalau kosong/format salah.
func ParseGatewayTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(GatewayLayout, s, Jakarta())
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// GatewayTimeOr: ParseGatewayTime dengan fallback.
func GatewayTimeOr(s string, fallback time.Time) time.Time {
	if t, ok := ParseGatewayTime(s); ok {
		return t
	}
	return fallback
}
