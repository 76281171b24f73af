package attendance

const (
	// DateLayout is the calendar-date form stored in the date column.
	DateLayout = "2006-01-02"
	// TimeLayout is the time-of-day form stored in clock_in/clock_out.
	TimeLayout = "15:04:05"
)

// Record is one clock-in event. A nil ClockOut means the student is
// still clocked in (an open record).
type Record struct {
	ID       int64   `json:"id"`
	MatricNo string  `json:"matric_no"`
	Name     string  `json:"name"`
	Date     string  `json:"date"`      // YYYY-MM-DD, server-local
	ClockIn  string  `json:"clock_in"`  // HH:MM:SS
	ClockOut *string `json:"clock_out"` // HH:MM:SS, nil while open
}

// Open reports whether the record has no clock-out yet.
func (r Record) Open() bool {
	return r.ClockOut == nil || *r.ClockOut == ""
}
