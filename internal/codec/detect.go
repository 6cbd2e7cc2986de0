package codec

import (
	"fmt"
	"os"
	"strings"

	tarutil "github.com/chrisagrams/mstransfer/internal/util/tar"
)

// detectByContent sniffs path's format from its structure rather than its
// extension, used when the extension is missing or untrustworthy (the
// server never trusts a sender-supplied X-Source-Format header — spec.md
// §4.2). mzML is plain XML, so it is identified by its leading "<?xml" or
// "<mzML" bytes; mszx is a tar archive; everything else that opens cleanly
// is treated as msz, since msz has no self-describing magic of its own and
// the codec library is the true authority on its bytes.
func detectByContent(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	header := make([]byte, 512)
	n, err := f.Read(header)
	if err != nil && n == 0 {
		// Zero-byte file: spec.md §4.2 accepts zero-byte bodies; treat as
		// msz since there is no structure to sniff.
		return FormatMSZ, nil
	}
	header = header[:n]

	if looksLikeXML(header) {
		return FormatMzML, nil
	}

	isTar, err := tarutil.IsTarArchive(path)
	if err != nil {
		return FormatUnknown, err
	}
	if isTar {
		return FormatMSZX, nil
	}

	return FormatMSZ, nil
}

func looksLikeXML(header []byte) bool {
	trimmed := strings.TrimLeft(string(header), " \t\r\n"+string(rune(0xFEFF)))
	return strings.HasPrefix(trimmed, "<?xml") || strings.HasPrefix(trimmed, "<mzML") || strings.HasPrefix(trimmed, "<indexedmzML")
}

// detectByExtension classifies path purely from its file extension, used
// as the fast path before falling back to content sniffing.
func detectByExtension(path string) Format {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".mzml"):
		return FormatMzML
	case strings.HasSuffix(lower, ".mszx"):
		return FormatMSZX
	case strings.HasSuffix(lower, ".msz"):
		return FormatMSZ
	default:
		return FormatUnknown
	}
}
