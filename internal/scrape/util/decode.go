package util

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeDocument converts an uploaded page to UTF-8. The encoding comes from
// a BOM, the contentType charset or a <meta charset> tag. Undeclared pages
// are read as UTF-8 unless they are not valid UTF-8. Bytes that do not
// decode become U+FFFD; it never fails.
func DecodeDocument(b []byte, contentType string) string {
	e, name, certain := charset.DetermineEncoding(b, contentType)
	if !certain && name == "windows-1252" && utf8.Valid(b) {
		name = "utf-8"
	}
	if name == "utf-8" {
		return strings.ToValidUTF8(string(bytes.TrimPrefix(b, utf8BOM)), "\uFFFD")
	}

	out, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "\uFFFD")
	}
	return strings.ToValidUTF8(string(out), "\uFFFD")
}
