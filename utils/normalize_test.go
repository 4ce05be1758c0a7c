package utils_test

import (
	"testing"

	"github.com/habitamx/listings_backend/utils"
)

func TestNormalizeStateNameAliases(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"cdmx", "Ciudad de México"},
		{"CDMX", "Ciudad de México"},
		{"  Ciudad de Mexico ", "Ciudad de México"},
		{"Ciudad de México", "Ciudad de México"},
		{"edomex", "Estado de México"},
		{"México", "Estado de México"},
		{"mexico", "Estado de México"},
		{"jalisco", "Jalisco"},
		{"NUEVO LEÓN", "Nuevo león"},
	}
	for _, c := range cases {
		if got := utils.NormalizeStateName(c.in); got != c.want {
			t.Fatalf("NormalizeStateName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeCityName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"guadalajara", "Guadalajara"},
		{"  SAN   PEDRO  ", "San pedro"},
		{"Coyoacán", "Coyoacan"},
	}
	for _, c := range cases {
		if got := utils.NormalizeCityName(c.in); got != c.want {
			t.Fatalf("NormalizeCityName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCleanValueKeepsCasingDropsAccents(t *testing.T) {
	if got := utils.CleanValue("  Querétaro "); got != "Queretaro" {
		t.Fatalf("CleanValue = %q, want %q", got, "Queretaro")
	}
	if got := utils.CleanValue(""); got != "" {
		t.Fatalf("CleanValue(\"\") = %q, want empty", got)
	}
}

func TestNormalizeStripsPunctuationAndCollapsesSpace(t *testing.T) {
	if got := utils.Normalize("  San  Luis, Potosí!  "); got != "san luis potosi" {
		t.Fatalf("Normalize = %q, want %q", got, "san luis potosi")
	}
}

func TestCapitalizeFirstIsRuneSafe(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"casa", "Casa"},
		{"VENTA", "Venta"},
		{"águila", "Águila"},
	}
	for _, c := range cases {
		if got := utils.CapitalizeFirst(c.in); got != c.want {
			t.Fatalf("CapitalizeFirst(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatZip(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"644", "00644"},
		{"06600", "06600"},
		{" 123 ", "00123"},
		{"123456", "123456"},
	}
	for _, c := range cases {
		if got := utils.FormatZip(c.in); got != c.want {
			t.Fatalf("FormatZip(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIsAffirmative(t *testing.T) {
	for _, yes := range []string{"sí", "Si", "SÍ", "yes", "true", "1"} {
		if !utils.IsAffirmative(yes) {
			t.Fatalf("IsAffirmative(%q) = false, want true", yes)
		}
	}
	for _, no := range []string{"", "no", "0", "false", "n/a"} {
		if utils.IsAffirmative(no) {
			t.Fatalf("IsAffirmative(%q) = true, want false", no)
		}
	}
}

func TestNormalizeUnchangedByCapitalizeFirst(t *testing.T) {
	values := []string{"económica", "LOCAL COMERCIAL", "Águila Azteca", "venta", "  san luis potosí  "}
	for _, v := range values {
		got := utils.Normalize(utils.CapitalizeFirst(v))
		want := utils.Normalize(v)
		if got != want {
			t.Fatalf("Normalize(CapitalizeFirst(%q)) = %q, want %q", v, got, want)
		}
	}
}
