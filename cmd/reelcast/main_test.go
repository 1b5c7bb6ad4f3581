package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	cmd := newRootCommand()
	want := map[string]bool{"run": false, "presets": false, "deps": false, "history": false, "config": false}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("missing subcommand %s", name)
		}
	}
}

func TestPresetsCommandListsAllPresets(t *testing.T) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"presets"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("presets: %v", err)
	}
	for _, preset := range []string{"minimal", "subtitle_only", "process_only", "full"} {
		if !strings.Contains(out.String(), preset) {
			t.Errorf("output missing preset %s:\n%s", preset, out.String())
		}
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"config", "init", "--path", target})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("sample not written: %v", err)
	}
	if !strings.Contains(string(data), "[paths]") {
		t.Fatalf("sample missing paths section:\n%s", data)
	}
}

func TestRunCommandRequiresURL(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"run"})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	if err := cmd.Execute(); err == nil {
		t.Fatal("run without arguments should fail")
	}
}
