package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	got := Template()
	if !strings.Contains(got, Version) || !strings.Contains(got, Commit) || !strings.Contains(got, Date) {
		t.Errorf("Template() = %q, missing build fields", got)
	}
	if !strings.HasPrefix(got, "{{.Name}} version ") {
		t.Errorf("Template() should start with the command name placeholder, got %q", got)
	}
}

func TestUserAgent(t *testing.T) {
	if got, want := UserAgent(), "dailywall/"+Version; got != want {
		t.Errorf("UserAgent() = %q, want %q", got, want)
	}
}
