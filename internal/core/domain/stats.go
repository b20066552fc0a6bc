package domain

import "time"

type DashboardStats struct {
	TotalUsers        int64 `json:"totalUsers"`
	TotalAppointments int64 `json:"totalAppointments"`
	TodayAppointments int64 `json:"todayAppointments"`
	PendingComplaints int64 `json:"pendingComplaints"`
}

// DayBounds returns the [start, end) interval of the calendar day that
// contains t, in t's location.
func DayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
