package reservation

import (
	"errors"
	"testing"
	"time"
)

func mustRange(t *testing.T, start, end string) TimeRange {
	t.Helper()
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		t.Fatalf("bad start %q: %v", start, err)
	}
	e, err := time.Parse(time.RFC3339, end)
	if err != nil {
		t.Fatalf("bad end %q: %v", end, err)
	}
	return TimeRange{Start: s, End: e}
}

func TestTimeRangeValidate(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		r       TimeRange
		wantErr bool
	}{
		{name: "valid", r: TimeRange{Start: base, End: base.Add(time.Hour)}},
		{name: "start equals end", r: TimeRange{Start: base, End: base}, wantErr: true},
		{name: "start after end", r: TimeRange{Start: base.Add(time.Hour), End: base}, wantErr: true},
		{name: "zero start", r: TimeRange{End: base}, wantErr: true},
		{name: "zero end", r: TimeRange{Start: base}, wantErr: true},
		{name: "one nanosecond", r: TimeRange{Start: base, End: base.Add(time.Nanosecond)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTimeRange) {
					t.Fatalf("Validate() = %v, want ErrInvalidTimeRange", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestTimeRangeOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    TimeRange
		b    TimeRange
		want bool
	}{
		{
			name: "identical",
			a:    mustRange(t, "2026-03-10T09:00:00Z", "2026-03-10T10:00:00Z"),
			b:    mustRange(t, "2026-03-10T09:00:00Z", "2026-03-10T10:00:00Z"),
			want: true,
		},
		{
			name: "partial overlap",
			a:    mustRange(t, "2026-03-10T09:00:00Z", "2026-03-10T10:00:00Z"),
			b:    mustRange(t, "2026-03-10T09:30:00Z", "2026-03-10T10:30:00Z"),
			want: true,
		},
		{
			name: "contained",
			a:    mustRange(t, "2026-03-10T09:00:00Z", "2026-03-10T12:00:00Z"),
			b:    mustRange(t, "2026-03-10T10:00:00Z", "2026-03-10T11:00:00Z"),
			want: true,
		},
		{
			name: "back to back",
			a:    mustRange(t, "2026-03-10T09:00:00Z", "2026-03-10T10:00:00Z"),
			b:    mustRange(t, "2026-03-10T10:00:00Z", "2026-03-10T11:00:00Z"),
			want: false,
		},
		{
			name: "disjoint",
			a:    mustRange(t, "2026-03-10T09:00:00Z", "2026-03-10T10:00:00Z"),
			b:    mustRange(t, "2026-03-10T14:00:00Z", "2026-03-10T15:00:00Z"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Overlap is symmetric
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps(%s, %s) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestNewTimeRange(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	if _, err := NewTimeRange(base, base.Add(time.Hour)); err != nil {
		t.Fatalf("NewTimeRange(valid) = %v, want nil", err)
	}
	if _, err := NewTimeRange(base.Add(time.Hour), base); !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("NewTimeRange(inverted) = %v, want ErrInvalidTimeRange", err)
	}
}
