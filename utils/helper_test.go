package utils_test

import (
	"errors"
	"testing"

	"github.com/habitamx/listings_backend/utils"
	"github.com/shopspring/decimal"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want decimal.Decimal
	}{
		{"1500000", decimal.NewFromInt(1500000)},
		{"$1,500,000.00", decimal.RequireFromString("1500000.00")},
		{"MXN 2,300.50", decimal.RequireFromString("2300.50")},
		{"", decimal.Zero},
		{"n/a", decimal.Zero},
	}
	for _, c := range cases {
		if got := utils.ParsePrice(c.in); !got.Equal(c.want) {
			t.Fatalf("ParsePrice(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestParseIntOrZero(t *testing.T) {
	if got := utils.ParseIntOrZero(" 3 "); got != 3 {
		t.Fatalf("ParseIntOrZero(\" 3 \") = %d, want 3", got)
	}
	if got := utils.ParseIntOrZero("tres"); got != 0 {
		t.Fatalf("ParseIntOrZero(\"tres\") = %d, want 0", got)
	}
	if got := utils.ParseIntOrZero(""); got != 0 {
		t.Fatalf("ParseIntOrZero(\"\") = %d, want 0", got)
	}
}

func TestUniqueSlice(t *testing.T) {
	got := utils.UniqueSlice([]string{"a", "b", "a", "c", "b"})
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("UniqueSlice = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("UniqueSlice = %v, want %v", got, want)
		}
	}
}

func TestIsValidURL(t *testing.T) {
	if !utils.IsValidURL("https://example.com/a.jpg") {
		t.Fatalf("expected https url to be valid")
	}
	if utils.IsValidURL("not a url") {
		t.Fatalf("expected plain text to be invalid")
	}
}

func TestProcessValidationErrorsNonValidatorError(t *testing.T) {
	fields := utils.ProcessValidationErrors(errors.New("invalid character '}' looking for beginning of value"))
	if fields["body"] != "malformed request body" {
		t.Fatalf("fields = %v, want generic body entry", fields)
	}
}
