// Package sanitize strips path-traversal and invisible-character hazards
// from client-supplied filename metadata before a receiver uses it to build
// an on-disk path.
package sanitize

import "strings"

// SanitizeFilenameStem reduces a client-supplied X-Original-Filename header
// value to a bare, extension-free file name safe for joining onto a staging
// directory: it strips any directory components (both "/" and "\"
// separators, so a Windows-style path can't smuggle a traversal past a Unix
// receiver), removes invisible Unicode characters, rejects "." / ".."
// outright, and drops the extension the same way pathlib's Path.stem does.
func SanitizeFilenameStem(name string) string {
	name = removeInvisibleChars(name)
	name = strings.ReplaceAll(name, "\\", "/")

	if idx := strings.LastIndex(name, "/"); idx != -1 {
		name = name[idx+1:]
	}
	name = strings.TrimSpace(name)

	if name == "" || name == "." || name == ".." {
		return ""
	}

	name = name[:len(name)-len(extension(name))]

	if name == "" || name == "." || name == ".." {
		return ""
	}
	return name
}

// extension returns the suffix pathlib's Path.stem/.suffix would strip: the
// text from the last "." onward, unless that dot is the first character (a
// dotfile like ".gitignore" has no extension under pathlib's rules).
func extension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 {
		return ""
	}
	return name[idx:]
}

// removeInvisibleChars removes zero-width and other invisible Unicode
// characters that could make two distinct filenames render identically.
func removeInvisibleChars(s string) string {
	invisibleChars := []string{
		"​", // Zero-width space
		"‌", // Zero-width non-joiner
		"‍", // Zero-width joiner
		string(rune(0xFEFF)), // Zero-width no-break space (BOM)
		"­", // Soft hyphen
		"⁠", // Word joiner
		"᠎", // Mongolian vowel separator
	}
	for _, char := range invisibleChars {
		s = strings.ReplaceAll(s, char, "")
	}
	return s
}
