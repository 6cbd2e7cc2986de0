package codec

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// writeFakeCodec writes a shell script standing in for the external codec
// binary: "compress" streams its input file to stdout, "decompress" copies
// the input file to the requested output path. Good enough to exercise the
// ProcessAdapter's process-wiring without a real mscompress binary.
func writeFakeCodec(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake codec script is a POSIX shell script")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "fake-codec.sh")
	script := `#!/bin/sh
case "$1" in
  compress)
    cat "$3"
    ;;
  decompress)
    cp "$3" "$5"
    ;;
esac
`
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("write fake codec: %v", err)
	}
	return path
}

func TestProcessAdapter_CompressStream(t *testing.T) {
	binary := writeFakeCodec(t)
	dir := t.TempDir()

	input := filepath.Join(dir, "sample.mzML")
	writeFile(t, input, "<?xml?><mzML>hello world</mzML>")

	a := NewProcessAdapter(binary)
	result, err := a.CompressStream(context.Background(), input, 64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	buf := make([]byte, 4096)
	n, _ := result.Reader.Read(buf)
	if err := result.Close(); err != nil {
		t.Fatalf("close error: %v", err)
	}

	if string(buf[:n]) != "<?xml?><mzML>hello world</mzML>" {
		t.Errorf("unexpected stream contents: %q", string(buf[:n]))
	}
}

func TestProcessAdapter_Decompress(t *testing.T) {
	binary := writeFakeCodec(t)
	dir := t.TempDir()

	input := filepath.Join(dir, "sample.msz")
	writeFile(t, input, "compressed-bytes")
	output := filepath.Join(dir, "sample.mzML")

	a := NewProcessAdapter(binary)
	if err := a.Decompress(context.Background(), input, output); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "compressed-bytes" {
		t.Errorf("unexpected output contents: %q", string(data))
	}
}

func TestProcessAdapter_DecompressFailure(t *testing.T) {
	dir := t.TempDir()
	nonexistentBinary := filepath.Join(dir, "does-not-exist")

	a := NewProcessAdapter(nonexistentBinary)
	err := a.Decompress(context.Background(), filepath.Join(dir, "in.msz"), filepath.Join(dir, "out.mzML"))
	if err == nil {
		t.Fatal("expected error when codec binary is missing")
	}
}
