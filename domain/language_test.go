package domain

import "testing"

func TestResolveLanguage(t *testing.T) {
	cases := []struct {
		tag      string
		expected string
	}{
		{"en", "en"},
		{"pl", "pl"},
		{"ko", "ko"},
		{"", "en"},
		{"xx", "en"},
		{"EN", "en"},
		{"klingon", "en"},
	}

	for _, c := range cases {
		if got := ResolveLanguage(c.tag); got != c.expected {
			t.Errorf("ResolveLanguage(%q) = %q, expected %q", c.tag, got, c.expected)
		}
	}
}

func TestLanguageName_FallsBackToDefault(t *testing.T) {
	if name := LanguageName("nope"); name != "English" {
		t.Errorf("LanguageName(\"nope\") = %q, expected English", name)
	}
	if name := LanguageName("pl"); name != "Polish" {
		t.Errorf("LanguageName(\"pl\") = %q, expected Polish", name)
	}
}
