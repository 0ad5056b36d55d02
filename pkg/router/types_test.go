package router

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseHistoryMode(t *testing.T) {
	tests := []struct {
		input string
		want  HistoryMode
	}{
		{"", HistoryPath},
		{"path", HistoryPath},
		{"PATH", HistoryPath},
		{" hash ", HistoryHash},
	}
	for _, tt := range tests {
		got, err := ParseHistoryMode(tt.input)
		if err != nil {
			t.Errorf("ParseHistoryMode(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHistoryMode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	for _, bad := range []string{"memory", "history", "html5"} {
		if _, err := ParseHistoryMode(bad); !errors.Is(err, ErrUnknownHistoryMode) {
			t.Errorf("ParseHistoryMode(%q) error = %v, want ErrUnknownHistoryMode", bad, err)
		}
	}
}

func TestHistoryModeJSON(t *testing.T) {
	var cfg struct {
		History HistoryMode `json:"history"`
	}
	if err := json.Unmarshal([]byte(`{"history":"hash"}`), &cfg); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if cfg.History != HistoryHash {
		t.Errorf("History = %v, want hash", cfg.History)
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"history":"hash"}` {
		t.Errorf("Marshal = %s", data)
	}

	if err := json.Unmarshal([]byte(`{"history":"bogus"}`), &cfg); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestHistoryModeString(t *testing.T) {
	if HistoryPath.String() != "path" || HistoryHash.String() != "hash" {
		t.Error("unexpected mode names")
	}
	if HistoryMode(9).String() != "HistoryMode(9)" {
		t.Errorf("HistoryMode(9).String() = %q", HistoryMode(9).String())
	}
}

func TestRouteString(t *testing.T) {
	r := Route{Path: "/cv", Name: "cv"}
	if r.String() != "cv (/cv)" {
		t.Errorf("String() = %q", r.String())
	}
	if r.IsZero() {
		t.Error("non-empty route reported zero")
	}
	if !(Route{}).IsZero() {
		t.Error("empty route should be zero")
	}
}
