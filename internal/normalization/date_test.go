package normalization

import (
	"errors"
	"testing"
	"time"

	"github.com/projectdesert/backend/internal/apierr"
)

func TestParseDay(t *testing.T) {
	jan5 := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		raw  string
		want time.Time
	}{
		{name: "bare_date", raw: "2026-01-05", want: jan5},
		{name: "rfc3339_midnight", raw: "2026-01-05T00:00:00Z", want: jan5},
		{name: "rfc3339_with_time_of_day", raw: "2026-01-05T18:45:12Z", want: jan5},
		{name: "no_zone_suffix", raw: "2026-01-05T07:30:00", want: jan5},
		{name: "surrounding_whitespace", raw: "  2026-01-05 ", want: jan5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDay(tc.raw)
			if err != nil {
				t.Fatalf("ParseDay(%q) returned error: %v", tc.raw, err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("ParseDay(%q)=%v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestParseDayRejectsMalformedInput(t *testing.T) {
	for _, raw := range []string{"", "not-a-date", "2026-13-40", "05/01/2026"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseDay(raw)
			if err == nil {
				t.Fatalf("ParseDay(%q) expected error", raw)
			}
			var ae *apierr.Error
			if !errors.As(err, &ae) || ae.Code != apierr.CodeInvalidDateFormat {
				t.Fatalf("ParseDay(%q) error %v, want code %s", raw, err, apierr.CodeInvalidDateFormat)
			}
		})
	}
}

func TestParseDayEquivalentInputsAgree(t *testing.T) {
	a, err := ParseDay("2026-01-05T00:00:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := ParseDay("2026-01-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.Equal(b) {
		t.Fatalf("equivalent inputs resolved to different days: %v vs %v", a, b)
	}
}

func TestParseCompactDay(t *testing.T) {
	got, err := ParseCompactDay("20260105")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ParseCompactDay=%v, want %v", got, want)
	}
	if _, err := ParseCompactDay("2026-01-05"); err == nil {
		t.Fatalf("expected error for dashed input")
	}
}
