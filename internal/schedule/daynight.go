// Package schedule provides the pure day/night time function NPCs use to
// gate scheduled jobs to a portion of the in-game day.
package schedule

// HourMS is the length of one in-game "hour": ten real-time minutes.
const HourMS = 10 * 60 * 1000

// HoursPerDay is the length of one in-game "day" in in-game hours.
const HoursPerDay = 24

// DayLengthMS is the full in-game day length: a 4-hour day of 10-minute
// hours.
const DayLengthMS = HoursPerDay * HourMS

// DayTime reduces an absolute wall-clock millisecond time to milliseconds
// since the start of the current in-game day.
func DayTime(atMS int64) int64 {
	t := atMS % DayLengthMS
	if t < 0 {
		t += DayLengthMS
	}
	return t
}
