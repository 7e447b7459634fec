package tui

import (
	"bytes"
	"strings"
	"testing"
)

func TestShowBanner(t *testing.T) {
	var buf bytes.Buffer
	ShowBanner(&buf, "1.0.0-test")
	out := buf.String()

	if !strings.Contains(out, Tagline) {
		t.Errorf("Expected banner to contain %q, got: %s", Tagline, out)
	}
	if !strings.Contains(out, "╔") || !strings.Contains(out, "╝") {
		t.Errorf("Expected banner to contain border characters, got: %s", out)
	}
	if !strings.Contains(out, "v1.0.0-test") {
		t.Errorf("Expected banner to contain version 'v1.0.0-test', got: %s", out)
	}
}

func TestShowBannerDevVersion(t *testing.T) {
	var buf bytes.Buffer
	ShowBanner(&buf, "dev")
	if strings.Contains(buf.String(), "vdev") {
		t.Errorf("dev builds should not get a version tag, got: %s", buf.String())
	}
}

func TestLogoConstants(t *testing.T) {
	if len(LogoLines) != 3 {
		t.Errorf("Expected 3 logo lines, got %d", len(LogoLines))
	}
	if len(BannerColors) == 0 {
		t.Error("Expected banner colors")
	}
}
