package model

type LogStatus string

const (
	LogStatusUnpurchased LogStatus = "unpurchased"
	LogStatusPending     LogStatus = "pending"
	LogStatusPurchased   LogStatus = "purchased"
	LogStatusChallenge   LogStatus = "challenge"
	LogStatusFailed      LogStatus = "failed"
)

var AllLogStatuses = []LogStatus{
	LogStatusUnpurchased,
	LogStatusPending,
	LogStatusPurchased,
	LogStatusChallenge,
	LogStatusFailed,
}

// TerminalStatuses tidak boleh ditinggalkan lewat webhook/sync.
var TerminalStatuses = []LogStatus{LogStatusPurchased, LogStatusFailed}

func (s LogStatus) Valid() bool {
	for _, v := range AllLogStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func (s LogStatus) Terminal() bool {
	return s == LogStatusPurchased || s == LogStatusFailed
}

func ParseLogStatus(s string) (LogStatus, bool) {
	st := LogStatus(s)
	return st, st.Valid()
}
