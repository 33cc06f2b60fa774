package cli

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/figerout/figerout/internal/colour"
	"github.com/figerout/figerout/internal/config"
	"github.com/figerout/figerout/internal/describe"
)

type stubGenerator struct{}

func (stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	if strings.Contains(prompt, "history") {
		return "Named after the sky.", nil
	}
	return "A calm colour.", nil
}

func (stubGenerator) Model() string { return "stub" }

type cliEnv struct {
	dir string
	db  string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	t.Setenv(config.EnvAPIKey, "test-key")
	t.Setenv(config.EnvGenAIBackend, "")
	dir := t.TempDir()
	return &cliEnv{dir: dir, db: filepath.Join(dir, "collection.db")}
}

func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := e.runAll(t, args...)
	return out, err
}

// runAll runs the CLI and returns stdout and stderr.
func (e *cliEnv) runAll(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	a := newApp()
	a.isTerminal = func(io.Writer) bool { return false }
	a.newGenerator = func(context.Context, config.GenAIConfig, hclog.Logger) (describe.Generator, error) {
		return stubGenerator{}, nil
	}

	cmd := newRootCmd(a)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(e.dir, "absent.env"), "--db", e.db}, args...))

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// writeBluePixelPNG writes a white 20x20 PNG with one blue pixel at (10, 10).
func (e *cliEnv) writeBluePixelPNG(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := range 20 {
		for x := range 20 {
			img.Set(x, y, color.White)
		}
	}
	img.Set(10, 10, color.RGBA{B: 255, A: 255})

	path := filepath.Join(e.dir, "blue.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersionCommand(t *testing.T) {
	e := newCLIEnv(t)
	out, err := e.run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "figerout version ") {
		t.Errorf("output = %q", out)
	}
}

func TestPickCommand(t *testing.T) {
	e := newCLIEnv(t)
	img := e.writeBluePixelPNG(t)

	out, err := e.run(t, "pick", "--x", "10", "--y", "10", "--shades", "1", img)
	if err != nil {
		t.Fatalf("pick: %v", err)
	}

	for _, want := range []string{
		"#0000FF  Blue\n",
		"Point:  (10, 10)\n",
		"RGB:    rgb(0, 0, 255)\n",
		"HSL:    hsl(240, 100%, 50%)\n",
		"Shades: #0000CC #0000FF #3333FF\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPickCommandClamps(t *testing.T) {
	e := newCLIEnv(t)
	img := e.writeBluePixelPNG(t)

	out, err := e.run(t, "pick", "--x", "999", "--y", "-5", img)
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	if !strings.Contains(out, "#FFFFFF  White") || !strings.Contains(out, "Point:  (19, 0)") {
		t.Errorf("output = %q", out)
	}
}

func TestPickCommandJSON(t *testing.T) {
	e := newCLIEnv(t)
	img := e.writeBluePixelPNG(t)

	out, err := e.run(t, "pick", "--x", "10", "--y", "10", "--describe", "--save", "--note", "dot", "-f", "json", img)
	if err != nil {
		t.Fatalf("pick: %v", err)
	}

	var got pickResult
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if got.Hex != "#0000FF" || got.Name != "Blue" {
		t.Errorf("hex/name = %s/%s", got.Hex, got.Name)
	}
	if got.Description == nil || got.Description.Text != "A calm colour." {
		t.Errorf("description = %+v", got.Description)
	}
	if got.Saved == nil || got.Saved.Note != "dot" {
		t.Fatalf("saved = %+v", got.Saved)
	}

	list, err := e.run(t, "collection", "list", "-f", "json")
	if err != nil {
		t.Fatalf("collection list: %v", err)
	}
	if !strings.Contains(list, got.Saved.ID) {
		t.Errorf("collection list missing %s: %s", got.Saved.ID, list)
	}
}

func TestPickCommandErrors(t *testing.T) {
	e := newCLIEnv(t)
	img := e.writeBluePixelPNG(t)

	if _, err := e.run(t, "pick", "--y", "1", img); err == nil {
		t.Error("expected error without --x")
	}
	if _, err := e.run(t, "pick", "--x", "1", "--y", "1", "-f", "yaml", img); err == nil {
		t.Error("expected error for bad format")
	}
	if _, err := e.run(t, "pick", "--x", "1", "--y", "1", filepath.Join(e.dir, "missing.png")); err == nil {
		t.Error("expected error for missing image")
	}
	if _, err := e.run(t, "pick", "--x", "1", "--y", "1", "--backdrop", "nothex", img); err == nil {
		t.Error("expected error for bad backdrop")
	}
}

func TestNameCommand(t *testing.T) {
	e := newCLIEnv(t)

	out, err := e.run(t, "name", "FF0000", "#fe0000", "ffffff")
	if err != nil {
		t.Fatalf("name: %v", err)
	}
	want := "#FF0000  Red\n#FE0000  Red\n#FFFFFF  White\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestNameCommandMalformed(t *testing.T) {
	e := newCLIEnv(t)

	out, err := e.run(t, "name", "00FF00", "zz")
	if !errors.Is(err, colour.ErrMalformedColour) {
		t.Errorf("err = %v, want ErrMalformedColour", err)
	}
	if !strings.Contains(out, "#00FF00  Lime\n") || !strings.Contains(out, "zz  Unknown\n") {
		t.Errorf("output = %q", out)
	}
}

func TestShadesCommand(t *testing.T) {
	e := newCLIEnv(t)

	out, err := e.run(t, "shades", "--count", "2", "808080")
	if err != nil {
		t.Fatalf("shades: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines: %q", len(lines), out)
	}
	wantHex := []string{"#4D4D4D", "#676767", "#808080", "#9A9A9A", "#B3B3B3"}
	for i, hex := range wantHex {
		if !strings.HasPrefix(lines[i], hex) {
			t.Errorf("line %d = %q, want prefix %s", i, lines[i], hex)
		}
	}
	if !strings.HasSuffix(lines[2], "(base)") {
		t.Errorf("base line = %q", lines[2])
	}
}

func TestShadesCommandJSON(t *testing.T) {
	e := newCLIEnv(t)

	out, err := e.run(t, "shades", "-c", "1", "--step", "50", "-f", "json", "#FFFFFF")
	if err != nil {
		t.Fatalf("shades: %v", err)
	}
	var set colour.ShadeSet
	if err := json.Unmarshal([]byte(out), &set); err != nil {
		t.Fatal(err)
	}
	if set.Lighter[0] != "#FFFFFF" {
		t.Errorf("lighter = %v, want clamped #FFFFFF", set.Lighter)
	}
}

func TestShadesCommandInvalid(t *testing.T) {
	e := newCLIEnv(t)

	if _, err := e.run(t, "shades", "--count", "-1", "808080"); !errors.Is(err, colour.ErrInvalidShadeParams) {
		t.Errorf("err = %v, want ErrInvalidShadeParams", err)
	}
	if _, err := e.run(t, "shades", "80808"); !errors.Is(err, colour.ErrMalformedColour) {
		t.Errorf("err = %v, want ErrMalformedColour", err)
	}
}

func TestDescribeCommand(t *testing.T) {
	e := newCLIEnv(t)

	out, err := e.run(t, "describe", "87ceeb")
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if out != "#87CEEB  Sky Blue\nA calm colour.\n" {
		t.Errorf("output = %q", out)
	}

	out, err = e.run(t, "describe", "--history", "87ceeb")
	if err != nil {
		t.Fatalf("describe --history: %v", err)
	}
	if !strings.Contains(out, "Named after the sky.") {
		t.Errorf("output = %q", out)
	}
}

func TestDescribeCommandUnavailable(t *testing.T) {
	e := newCLIEnv(t)
	t.Setenv(config.EnvAPIKey, "")

	if _, err := e.run(t, "describe", "87ceeb"); !errors.Is(err, describe.ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

var savedIDPattern = regexp.MustCompile(`as (col-\S+)`)

func TestCollectionCommands(t *testing.T) {
	e := newCLIEnv(t)

	out, err := e.run(t, "collection", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if out != "No saved colours.\n" {
		t.Errorf("empty list output = %q", out)
	}

	out, err = e.run(t, "collection", "save", "--note", "brand", "ff6b35")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	m := savedIDPattern.FindStringSubmatch(out)
	if m == nil {
		t.Fatalf("save output = %q", out)
	}
	id := m[1]
	if !strings.HasPrefix(out, "Saved #FF6B35 (Figerout Orange)") {
		t.Errorf("save output = %q", out)
	}

	out, err = e.run(t, "collection", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{id, "#FF6B35", "Figerout Orange", "brand"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}

	if _, err := e.run(t, "collection", "note", id, "logo"); err != nil {
		t.Fatalf("note: %v", err)
	}
	out, _ = e.run(t, "collection", "ls", "-f", "json")
	if !strings.Contains(out, `"note": "logo"`) {
		t.Errorf("note not updated: %s", out)
	}

	if _, err := e.run(t, "collection", "delete", id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := e.run(t, "collection", "rm", id); err == nil {
		t.Error("expected error deleting twice")
	}
}

func TestCollectionListMalformedRow(t *testing.T) {
	e := newCLIEnv(t)

	if _, err := e.run(t, "collection", "save", "336699"); err != nil {
		t.Fatalf("save: %v", err)
	}

	db, err := sql.Open("sqlite", e.db)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`UPDATE saved_colours SET hex = 'bogus'`); err != nil {
		t.Fatal(err)
	}
	db.Close()

	out, err := e.run(t, "collection", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "bogus") {
		t.Errorf("list output = %q, want the raw stored value", out)
	}
}

func TestLogFormatJSON(t *testing.T) {
	e := newCLIEnv(t)
	img := e.writeBluePixelPNG(t)

	_, stderr, err := e.runAll(t, "--log-format", "json", "pick", "--x", "999", "--y", "0", img)
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	if !strings.Contains(stderr, `"@message":"point clamped to surface"`) {
		t.Errorf("stderr = %q, want a JSON log line", stderr)
	}

	if _, err := e.run(t, "--log-format", "xml", "version"); err == nil {
		t.Error("expected error for unknown log format")
	}
}

func TestPickCommandSourceCoords(t *testing.T) {
	e := newCLIEnv(t)
	img := e.writeBluePixelPNG(t)

	out, err := e.run(t, "pick", "--max-size", "10", "--source-coords", "--x", "10", "--y", "10", "-f", "json", img)
	if err != nil {
		t.Fatalf("pick: %v", err)
	}

	var got pickResult
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.Point.X != 5 || got.Point.Y != 5 {
		t.Errorf("surface point = %+v, want (5, 5)", got.Point)
	}
	if got.Source.X != 10 || got.Source.Y != 10 {
		t.Errorf("source point = %+v, want (10, 10)", got.Source)
	}
}
