package i18n

import "testing"

func TestInitAndAvailableLocales(t *testing.T) {
	got := AvailableLocales()
	if len(got) != 2 || got[0] != "de" || got[1] != "en" {
		t.Fatalf("unexpected locales: %v", got)
	}
}

func TestT_BasicFormattingAndLanguageSwitch(t *testing.T) {
	Init("en")
	defer Init("en")

	if got := T("flow.error.missing_serial"); got != "The boiler serial number is required." {
		t.Fatalf("unexpected translation: %q", got)
	}
	if got := T("flow.result.updated", "abc"); got != "Updated entry abc." {
		t.Fatalf("unexpected formatted translation: %q", got)
	}

	Init("de")
	if got := T("form.submit"); got != "Speichern" {
		t.Fatalf("expected German 'Speichern', got %q", got)
	}
}

func TestT_MissingIDFallsBack(t *testing.T) {
	Init("en")
	if got := T("no.such.message"); got != "no.such.message" {
		t.Fatalf("expected message ID fallback, got %q", got)
	}
	if got := TOr("no.such.message", "fallback"); got != "fallback" {
		t.Fatalf("expected TOr fallback, got %q", got)
	}
	if got := TOr("form.submit", "fallback"); got != "Submit" {
		t.Fatalf("expected translation, got %q", got)
	}
}

func TestInit_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	Init("xx")
	defer Init("en")
	if got := T("form.submit"); got != "Submit" {
		t.Fatalf("expected English fallback, got %q", got)
	}
}
