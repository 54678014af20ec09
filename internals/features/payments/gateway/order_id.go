package gateway

import (
	"regexp"
	"strconv"
	"time"
)

const orderPrefix = "ORDER-"

var orderIDRe = regexp.MustCompile(`ORDER-\d+-(\d+)$`)

// BuildOrderID: ORDER-<unix_ms>-<logID>, atau ORDER-<unix_ms> kalau logID <= 0.
func BuildOrderID(now time.Time, logID int64) string {
	ts := strconv.FormatInt(now.UnixMilli(), 10)
	if logID <= 0 {
		return orderPrefix + ts
	}
	return orderPrefix + ts + "-" + strconv.FormatInt(logID, 10)
}

// ExtractLogID mengambil id log dari suffix order id. ok=false kalau tidak ada.
func ExtractLogID(orderID string) (int64, bool) {
	m := orderIDRe.FindStringSubmatch(orderID)
	if len(m) != 2 {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
