package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/nathoo/manorquest/config"
	"github.com/nathoo/manorquest/engine/state"
	"github.com/nathoo/manorquest/types"
)

func TestParseArgs(t *testing.T) {
	opts, err := parseArgs([]string{"--plain", "--fast", "--seed", "99", "--script", "walk.txt", "games/other"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	want := options{plain: true, fast: true, seed: 99, seedSet: true, script: "walk.txt", gameDir: "games/other"}
	if opts != want {
		t.Errorf("opts = %+v, want %+v", opts, want)
	}
}

func TestParseArgs_Errors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		usage bool
	}{
		{"script without file", []string{"--script"}, true},
		{"seed without value", []string{"--seed"}, true},
		{"seed not a number", []string{"--seed", "many"}, false},
		{"unknown flag", []string{"--trace"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(tt.args)
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.Is(err, errUsage) != tt.usage {
				t.Errorf("errors.Is(err, errUsage) = %v for %v", !tt.usage, err)
			}
		})
	}
}

func TestApplyFlags(t *testing.T) {
	cfg := config.Config{GameDir: "games/smith_manor", Seed: 5}
	applyFlags(&cfg, options{})
	if cfg.GameDir != "games/smith_manor" || cfg.Seed != 5 || cfg.Fast {
		t.Errorf("no flags should leave cfg alone: %+v", cfg)
	}

	applyFlags(&cfg, options{gameDir: "elsewhere", seed: 0, seedSet: true, fast: true})
	if cfg.GameDir != "elsewhere" || cfg.Seed != 0 || !cfg.Fast {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	printBanner(&buf, &state.Defs{Game: types.GameDef{Title: "Smith Manor", Version: "1.0", Author: "N. Athoo"}})
	if buf.String() != "Smith Manor v1.0 by N. Athoo\n\n" {
		t.Errorf("banner = %q", buf.String())
	}

	buf.Reset()
	printBanner(&buf, &state.Defs{Game: types.GameDef{Title: "Smith Manor"}})
	if strings.TrimSpace(buf.String()) != "Smith Manor" {
		t.Errorf("banner = %q", buf.String())
	}
}

func TestRandomSeed(t *testing.T) {
	for i := 0; i < 10; i++ {
		if s := randomSeed(); s <= 0 {
			t.Fatalf("seed %d is not positive", s)
		}
	}
}
