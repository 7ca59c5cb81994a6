package main

import "testing"

func TestReadUIMode(t *testing.T) {
	cases := []struct {
		input   string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"auto", uiModeAuto, false},
		{" AUTO ", uiModeAuto, false},
		{"on", uiModeOn, false},
		{"Off", uiModeOff, false},
		{"bogus", "", true},
	}
	for _, tc := range cases {
		got, err := readUIMode(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("readUIMode(%q): expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("readUIMode(%q): %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("readUIMode(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestShouldUseTUIExplicitModes(t *testing.T) {
	if !shouldUseTUI(uiModeOn) {
		t.Error("uiModeOn must force the TUI")
	}
	if shouldUseTUI(uiModeOff) {
		t.Error("uiModeOff must disable the TUI")
	}
}
