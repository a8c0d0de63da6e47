package schedule

import "testing"

func TestDayTimeWrapsAtDayLength(t *testing.T) {
	if got := DayTime(0); got != 0 {
		t.Fatalf("DayTime(0) = %d, want 0", got)
	}
	if got := DayTime(DayLengthMS); got != 0 {
		t.Fatalf("DayTime(DayLengthMS) = %d, want 0", got)
	}
	if got := DayTime(DayLengthMS + 1000); got != 1000 {
		t.Fatalf("DayTime(DayLengthMS+1000) = %d, want 1000", got)
	}
}

func TestDayTimeHandlesNegativeInput(t *testing.T) {
	got := DayTime(-1000)
	if got != DayLengthMS-1000 {
		t.Fatalf("DayTime(-1000) = %d, want %d", got, DayLengthMS-1000)
	}
}
