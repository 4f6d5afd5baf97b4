package diagfmt

import (
	"errors"
	"strings"
	"testing"
)

func TestParseColorMode(t *testing.T) {
	cases := map[string]ColorMode{"auto": ColorAuto, "": ColorAuto, "on": ColorOn, "off": ColorOff}
	for s, want := range cases {
		got, err := ParseColorMode(s)
		if err != nil {
			t.Errorf("ParseColorMode(%q): %v", s, err)
		}
		if got != want {
			t.Errorf("ParseColorMode(%q) = %v, want %v", s, got, want)
		}
	}
	if _, err := ParseColorMode("rainbow"); err == nil {
		t.Error("expected an error for an unsupported --color value")
	}
}

func TestFatalWithColorOffHasNoEscapes(t *testing.T) {
	var buf strings.Builder
	Fatal(&buf, errors.New("boom"), false)
	out := buf.String()
	if !strings.Contains(out, "error: boom") {
		t.Errorf("expected %q to contain \"error: boom\"", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("expected no ANSI escapes with useColor=false, got %q", out)
	}
}

func TestFatalWithColorOnHasEscapes(t *testing.T) {
	var buf strings.Builder
	Fatal(&buf, errors.New("boom"), true)
	out := buf.String()
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("expected ANSI escapes with useColor=true, got %q", out)
	}
}

func TestNoteRestoresGlobalColorState(t *testing.T) {
	var buf strings.Builder
	Note(&buf, "section", true)
	Fatal(&buf, errors.New("x"), false)
	if strings.Contains(buf.String()[strings.LastIndex(buf.String(), "error:"):], "\x1b[") {
		t.Error("Note's color override should not leak into a later Fatal(useColor=false) call")
	}
}
