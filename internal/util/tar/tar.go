// Package tar provides lightweight sniffing and reading helpers for mszx
// archives: tar files bundling a manifest.json with a spectra.msz stream.
// It never writes archives — building an mszx is the codec library's job,
// not this repo's.
package tar

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
)

// ManifestEntryName is the well-known manifest entry inside an mszx archive.
const ManifestEntryName = "manifest.json"

// SpectraEntryName is the well-known compressed-spectra entry inside an
// mszx archive.
const SpectraEntryName = "spectra.msz"

// IsTarArchive reports whether the file at path begins with a valid tar
// header, used by format detection to distinguish mszx from a bare msz
// stream without reading the whole file.
func IsTarArchive(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	tr := tar.NewReader(f)
	_, err = tr.Next()
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, nil
	}
	return true, nil
}

// ReadManifest extracts the manifest.json entry from an mszx archive.
func ReadManifest(path string) ([]byte, error) {
	return readEntry(path, ManifestEntryName)
}

// readEntry scans a tar archive for a named entry and returns its contents.
func readEntry(path, name string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	tr := tar.NewReader(f)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil, fmt.Errorf("entry %q not found in %s", name, path)
		}
		if err != nil {
			return nil, fmt.Errorf("read tar %s: %w", path, err)
		}
		if hdr.Name == name {
			return io.ReadAll(tr)
		}
	}
}

// Entries lists the entry names present in a tar archive, in archive
// order. The receiver does not call it: an mszx upload is marked done
// without its entries being checked.
func Entries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var names []string
	tr := tar.NewReader(f)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return names, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read tar %s: %w", path, err)
		}
		names = append(names, hdr.Name)
	}
}
