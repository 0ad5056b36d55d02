package main

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/folio/internal/errors"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func fields(s string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		rows = append(rows, strings.Fields(line))
	}
	return rows
}

func TestRoutesCommand(t *testing.T) {
	out, err := run(t, "routes", "--config", t.TempDir())
	if err != nil {
		t.Fatalf("routes error = %v", err)
	}

	want := [][]string{
		{"NAME", "PATH", "HREF"},
		{"home", "/", "/"},
		{"cv", "/cv", "/cv"},
	}
	got := fields(out)
	if len(got) != len(want) {
		t.Fatalf("routes output:\n%s", out)
	}
	for i := range want {
		if strings.Join(got[i], " ") != strings.Join(want[i], " ") {
			t.Errorf("row %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRoutesCommandHashMode(t *testing.T) {
	out, err := run(t, "routes", "--config", t.TempDir(), "--history", "hash", "--base", "/me")
	if err != nil {
		t.Fatalf("routes error = %v", err)
	}
	if !strings.Contains(out, "/me/#/cv") {
		t.Errorf("routes output missing hash href:\n%s", out)
	}
}

func TestRoutesCommandBadHistory(t *testing.T) {
	_, err := run(t, "routes", "--config", t.TempDir(), "--history", "memory")
	var fe *errors.FolioError
	if !stderrors.As(err, &fe) || fe.Code != "E103" {
		t.Fatalf("routes error = %v, want E103", err)
	}
}

func TestResolveCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    [][]string
		wantErr bool
	}{
		{
			name: "all found",
			args: []string{"/", "/cv"},
			want: [][]string{{"/", "home"}, {"/cv", "cv"}},
		},
		{
			name:    "miss",
			args:    []string{"/cv", "/cv/", "/about"},
			want:    [][]string{{"/cv", "cv"}, {"/cv/", "not", "found"}, {"/about", "not", "found"}},
			wantErr: true,
		},
		{
			name: "hash hrefs",
			args: []string{"--history", "hash", "--href", "/#/cv", "/"},
			want: [][]string{{"/#/cv", "cv"}, {"/", "home"}},
		},
		{
			name:    "href outside base",
			args:    []string{"--base", "/me", "--href", "/cv"},
			want:    [][]string{{"/cv", "not", "found"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"resolve", "--config", t.TempDir()}, tt.args...)
			out, err := run(t, args...)
			if tt.wantErr {
				if !stderrors.Is(err, errQuiet) {
					t.Fatalf("resolve error = %v, want errQuiet", err)
				}
			} else if err != nil {
				t.Fatalf("resolve error = %v", err)
			}

			got := fields(out)
			if len(got) != len(tt.want) {
				t.Fatalf("resolve output:\n%s", out)
			}
			for i := range tt.want {
				if strings.Join(got[i], " ") != strings.Join(tt.want[i], " ") {
					t.Errorf("row %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestResolveCommandRequiresArgs(t *testing.T) {
	if _, err := run(t, "resolve"); err == nil {
		t.Fatal("resolve without arguments should fail")
	}
}

func TestConfigFileIsUsed(t *testing.T) {
	dir := t.TempDir()
	data := `{"router": {"history": "hash", "base": "/site"}}`
	if err := os.WriteFile(filepath.Join(dir, "folio.json"), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "routes", "--config", dir)
	if err != nil {
		t.Fatalf("routes error = %v", err)
	}
	if !strings.Contains(out, "/site/#/cv") {
		t.Errorf("routes ignored folio.json:\n%s", out)
	}
}

func TestBrokenConfigFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "folio.json"), []byte(`{"server": {"port": 99999}}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := run(t, "routes", "--config", dir)
	var fe *errors.FolioError
	if !stderrors.As(err, &fe) || fe.Code != "E102" {
		t.Fatalf("routes error = %v, want E102", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version --short = %q, want %q", out, version)
	}

	out, err = run(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.Contains(out, "Go version:") {
		t.Errorf("version output:\n%s", out)
	}
}
