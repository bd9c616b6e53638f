package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MeKo-Tech/colorsync/internal/colormodel"
	"github.com/MeKo-Tech/colorsync/internal/converter"
	"github.com/MeKo-Tech/colorsync/internal/history"
	"github.com/MeKo-Tech/colorsync/internal/worker"
)

func TestMain(m *testing.M) {
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	os.Exit(m.Run())
}

func TestParseConvertArgs(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantKind  converter.Kind
		wantValue string
		wantErr   bool
	}{
		{name: "detected hex", args: []string{"#1976d2"}, wantKind: converter.KindHex, wantValue: "#1976d2"},
		{name: "detected hsl", args: []string{"hsl(1, 2%, 3%)"}, wantKind: converter.KindHSL, wantValue: "hsl(1, 2%, 3%)"},
		{name: "explicit rgb", args: []string{"rgb", "25 118 210"}, wantKind: converter.KindRGB, wantValue: "25 118 210"},
		{name: "unknown kind", args: []string{"cmyk", "1,2,3,4"}, wantErr: true},
		{name: "no args", args: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, value, err := parseConvertArgs(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseConvertArgs(%q) expected error, got nil", tt.args)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseConvertArgs(%q) unexpected error: %v", tt.args, err)
			}
			if kind != tt.wantKind || value != tt.wantValue {
				t.Errorf("parseConvertArgs(%q) = %v %q, want %v %q", tt.args, kind, value, tt.wantKind, tt.wantValue)
			}
		})
	}
}

func TestWriteColor(t *testing.T) {
	var buf bytes.Buffer
	if err := writeColor(&buf, colormodel.Default(), false); err != nil {
		t.Fatal(err)
	}
	want := "hex  #1976d2\nrgb  rgb(25, 118, 210)\nhsl  hsl(210deg, 79%, 46%)\n"
	if buf.String() != want {
		t.Errorf("writeColor() = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	if err := writeColor(&buf, colormodel.Default(), true); err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Hex string `json:"hex"`
		CSS struct {
			HSL string `json:"hsl"`
		} `json:"css"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if decoded.Hex != "#1976d2" || decoded.CSS.HSL != "hsl(210deg, 79%, 46%)" {
		t.Errorf("unexpected JSON output: %s", buf.String())
	}
}

func TestReadBatchTasks(t *testing.T) {
	in := strings.NewReader("#1976d2\n\n  rgb(255, 0, 0)  \nhsl(120, 100%, 25%)\n#12\n")
	tasks, err := readBatchTasks(in)
	if err != nil {
		t.Fatal(err)
	}

	want := []worker.Task{
		{Line: 1, Kind: converter.KindHex, Raw: "#1976d2"},
		{Line: 3, Kind: converter.KindRGB, Raw: "rgb(255, 0, 0)"},
		{Line: 4, Kind: converter.KindHSL, Raw: "hsl(120, 100%, 25%)"},
		{Line: 5, Kind: converter.KindHex, Raw: "#12"},
	}
	if len(tasks) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(tasks), len(want))
	}
	for i := range want {
		if tasks[i] != want[i] {
			t.Errorf("task %d = %+v, want %+v", i, tasks[i], want[i])
		}
	}
}

func TestWriteBatchResults(t *testing.T) {
	results := []worker.Result{
		{Task: worker.Task{Line: 1, Raw: "#fff"}, Color: colormodel.MustParseHex("#fff")},
		{Task: worker.Task{Line: 2, Raw: "#12"}, Err: errors.New("bad")},
	}

	var buf bytes.Buffer
	failed, err := writeBatchResults(&buf, results)
	if err != nil {
		t.Fatal(err)
	}
	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "1\t#fff\t#ffffff\trgb(255, 255, 255)\thsl(0deg, 0%, 100%)" {
		t.Errorf("unexpected line: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "2\t#12\terror: ") {
		t.Errorf("unexpected error line: %q", lines[1])
	}
}

func TestBuildPalette(t *testing.T) {
	base := colormodel.MustParseHex("#ff0000")

	colors, err := buildPalette(base, 4, 7, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(colors) != 4 || colors[0] != base {
		t.Errorf("generated palette should have 4 colors starting at base, got %v", colors)
	}

	colors, err = buildPalette(base, 0, 0, "complementary")
	if err != nil {
		t.Fatal(err)
	}
	if len(colors) != 2 || colors[1].Hex != "#00ffff" {
		t.Errorf("unexpected complementary palette: %v", colors)
	}

	_, err = buildPalette(base, 0, 0, "rainbow")
	if err == nil || !strings.Contains(err.Error(), "available: ") {
		t.Errorf("expected error listing schemes, got %v", err)
	}
}

func TestWriteHistory(t *testing.T) {
	entries := []history.Entry{{
		ID:        1,
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local),
		Kind:      "hex",
		Input:     "#fff",
		Hex:       "#ffffff",
		RGB:       "rgb(255, 255, 255)",
		HSL:       "hsl(0deg, 0%, 100%)",
	}}

	var buf bytes.Buffer
	if err := writeHistory(&buf, entries, false); err != nil {
		t.Fatal(err)
	}
	want := "2024-05-01 12:00:00\thex\t#fff\t#ffffff\trgb(255, 255, 255)\thsl(0deg, 0%, 100%)\n"
	if buf.String() != want {
		t.Errorf("writeHistory() = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	if err := writeHistory(&buf, nil, true); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("empty JSON history = %q, want []", buf.String())
	}
}

func TestConvertRecordsHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	rootCmd.SetArgs([]string{"convert", "--history-db", dbPath, "rgb", "rgb(255, 0, 0)"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if !strings.Contains(out.String(), "hex  #ff0000") {
		t.Errorf("unexpected convert output: %q", out.String())
	}

	store, err := history.Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	entries, err := store.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Hex != "#ff0000" || entries[0].Kind != "rgb" {
		t.Errorf("unexpected history: %+v", entries)
	}
}
