package scheduling

import (
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{input: "00:00", want: 0},
		{input: "09:30", want: 9*60 + 30},
		{input: "23:59", want: 23*60 + 59},
		{input: "24:00", wantErr: true},
		{input: "9:30am", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTimeOfDay(%q) expected error, got %v", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q) unexpected error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTimeOfDay(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestTimeRangeOverlaps(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		a    TimeRange
		b    TimeRange
		want bool
	}{
		{name: "identical", a: TimeRange{600, 660}, b: TimeRange{600, 660}, want: true},
		{name: "partial overlap", a: TimeRange{600, 660}, b: TimeRange{615, 675}, want: true},
		{name: "contained", a: TimeRange{540, 1020}, b: TimeRange{600, 630}, want: true},
		{name: "touching endpoints do not conflict", a: TimeRange{600, 660}, b: TimeRange{660, 720}, want: false},
		{name: "disjoint", a: TimeRange{600, 660}, b: TimeRange{720, 780}, want: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.a.Overlaps(tc.b); got != tc.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v (symmetry)", tc.b, tc.a, got, tc.want)
			}
		})
	}
}

func TestMergeRanges(t *testing.T) {
	t.Parallel()

	merged := MergeRanges([]TimeRange{
		{720, 780},
		{540, 600},
		{600, 660},
		{570, 630},
	})

	want := []TimeRange{{540, 660}, {720, 780}}
	if len(merged) != len(want) {
		t.Fatalf("MergeRanges returned %v, want %v", merged, want)
	}
	for i := range want {
		if merged[i] != want[i] {
			t.Fatalf("MergeRanges returned %v, want %v", merged, want)
		}
	}
}

func TestContainedInUnion(t *testing.T) {
	t.Parallel()

	union := MergeRanges([]TimeRange{{540, 720}, {780, 1020}})

	if !ContainedInUnion(TimeRange{600, 660}, union) {
		t.Error("range inside first window should be contained")
	}
	if ContainedInUnion(TimeRange{700, 800}, union) {
		t.Error("range spanning the gap should not be contained")
	}
	if ContainedInUnion(TimeRange{500, 560}, union) {
		t.Error("range starting before the union should not be contained")
	}
}

func TestDateOfNormalisesToMidnightUTC(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("JST", 9*60*60)
	stamp := time.Date(2024, time.June, 10, 18, 30, 0, 0, loc)

	date := DateOf(stamp)
	if date.Hour() != 0 || date.Minute() != 0 || date.Location() != time.UTC {
		t.Fatalf("DateOf(%v) = %v, want midnight UTC", stamp, date)
	}
	if date.Day() != 10 {
		t.Fatalf("DateOf(%v) moved the civil day: %v", stamp, date)
	}
}

func TestStartInstant(t *testing.T) {
	t.Parallel()

	date := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	instant := StartInstant(date, TimeOfDay(10*60))
	want := time.Date(2024, time.June, 10, 10, 0, 0, 0, time.UTC)
	if !instant.Equal(want) {
		t.Fatalf("StartInstant = %v, want %v", instant, want)
	}
}
