//go:build !tinygo

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"usdr/hmi/radio"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestWriteDefaultsAndDump(t *testing.T) {
	img := filepath.Join(t.TempDir(), "usdr.flash")
	out, err := execute(t, "write", "--out", img)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if want := "wrote 16 bands"; !strings.Contains(out, want) {
		t.Fatalf("write output = %q, want %q", out, want)
	}

	out, err = execute(t, "dump", "--in", img)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	for _, want := range []string{"version: 1", "name: Amateur-40m", "mode: LSB"} {
		if !strings.Contains(out, want) {
			t.Fatalf("dump output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteBandsFile(t *testing.T) {
	dir := t.TempDir()
	bands := filepath.Join(dir, "bands.yaml")
	body := `
bands:
  - name: Amateur-20m
    filter: "10-24"
    lower: 14000000
    upper: 14350000
    freq: 14074000
    step: 4
    mode: USB
`
	if err := os.WriteFile(bands, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	img := filepath.Join(dir, "usdr.flash")
	if _, err := execute(t, "write", "--bands", bands, "--out", img, "--size", "65536"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if st, err := os.Stat(img); err != nil || st.Size() != 65536 {
		t.Fatalf("image stat = %v, %v", st, err)
	}

	var buf bytes.Buffer
	if err := dumpImage(&buf, img); err != nil {
		t.Fatalf("dumpImage() = %v", err)
	}
	if !strings.Contains(buf.String(), "freq: 14074000") {
		t.Fatalf("dump = %s", buf.String())
	}
}

func TestReadBandsErrors(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"empty":   "bands: []\n",
		"invalid": "bands:\n  - name: x\n    lower: 9\n    upper: 1\n",
		"yaml":    "bands: [\n",
	}
	for name, body := range cases {
		path := filepath.Join(dir, name+".yaml")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := readBands(path); err == nil {
			t.Errorf("%s: readBands() = nil, want error", name)
		}
	}
}

func TestSmallImage(t *testing.T) {
	img := filepath.Join(t.TempDir(), "small.flash")
	if err := writeImage(img, 8192, radio.DefaultProfiles()[:1]); err != nil {
		t.Fatalf("writeImage() = %v", err)
	}
	var buf bytes.Buffer
	if err := dumpImage(&buf, img); err != nil {
		t.Fatalf("dumpImage() = %v", err)
	}
	if got := strings.Count(buf.String(), "name:"); got != 1 {
		t.Fatalf("dumped %d bands, want 1", got)
	}
	if _, err := execute(t, "dump", "--in", filepath.Join(t.TempDir(), "missing.flash")); err == nil {
		t.Fatal("dump of missing image = nil error")
	}
}
