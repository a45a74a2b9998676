package main

import (
	"strings"
	"testing"
)

func TestDifficultyFromScriptName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"rom/script/pv_4939_hard.dsc", "hard"},
		{"pv_101_extreme.dsc", "extreme"},
		{"pv_101_easy.dsc", "easy"},
		{"pv_101.dsc", "common"},
		{"pv_101_01.dsc", "common"},
		{"script.dsc", "common"},
	}
	for _, tt := range tests {
		if got := difficultyFromScriptName(tt.path); got != tt.want {
			t.Errorf("difficultyFromScriptName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestStatusLine(t *testing.T) {
	if got := statusLine(true, false, "pv_%s", "101"); got != "[OK  ] pv_101" {
		t.Errorf("plain ok line = %q", got)
	}
	if got := statusLine(false, false, "pv_%s", "101"); got != "[FAIL] pv_101" {
		t.Errorf("plain fail line = %q", got)
	}
	colored := statusLine(true, true, "x")
	if !strings.Contains(colored, ansiGreen) || !strings.Contains(colored, ansiReset) {
		t.Errorf("colored line %q missing ANSI codes", colored)
	}
}

func TestRootCommandWiring(t *testing.T) {
	root := newRootCommand()
	want := map[string]bool{
		"convert": false, "batch": false, "inspect": false,
		"db": false, "history": false, "config": false,
	}
	for _, cmd := range root.Commands() {
		name := strings.Fields(cmd.Use)[0]
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
	if flag := root.PersistentFlags().Lookup("config"); flag == nil {
		t.Error("root command has no --config flag")
	}
}
