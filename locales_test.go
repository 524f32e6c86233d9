package siteloc

import "testing"

func TestNormalizeLocale(t *testing.T) {
	tests := []struct{ in, want string }{
		{"da-DK", "da_DK"},
		{"da_DK", "da_DK"},
		{"en", "en"},
	}
	for _, tt := range tests {
		if got := NormalizeLocale(tt.in); got != tt.want {
			t.Errorf("NormalizeLocale(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToHTMLLang(t *testing.T) {
	if got := ToHTMLLang("da_DK"); got != "da-DK" {
		t.Errorf("ToHTMLLang = %q", got)
	}
}

func TestBaseLang(t *testing.T) {
	tests := []struct{ in, want string }{
		{"da_DK", "da"},
		{"pt-BR", "pt"},
		{"DE_DE", "de"},
		{"ja", "ja"},
	}
	for _, tt := range tests {
		if got := BaseLang(tt.in); got != tt.want {
			t.Errorf("BaseLang(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDirection(t *testing.T) {
	if got := Direction("ar_SA"); got != "rtl" {
		t.Errorf("Direction(ar_SA) = %q", got)
	}
	if got := Direction("da_DK"); got != "ltr" {
		t.Errorf("Direction(da_DK) = %q", got)
	}
	if !IsRTL("he-IL") {
		t.Error("Expected he-IL to be RTL")
	}
	if IsRTL("en_US") {
		t.Error("Expected en_US to be LTR")
	}
}

func TestSameLocale(t *testing.T) {
	if !SameLocale("da-DK", "da_DK") {
		t.Error("Expected separator-insensitive comparison")
	}
	if !SameLocale("da_dk", "da_DK") {
		t.Error("Expected case-insensitive region comparison")
	}
	if SameLocale("da_DK", "sv_SE") {
		t.Error("Expected different locales to differ")
	}
}

func TestLocaleName(t *testing.T) {
	if got := LocaleName("da-DK"); got != "Danish (Denmark)" {
		t.Errorf("LocaleName(da-DK) = %q", got)
	}
	if got := LocaleName("xx_XX"); got != "xx_XX" {
		t.Errorf("Expected fallback to the code, got %q", got)
	}
}
