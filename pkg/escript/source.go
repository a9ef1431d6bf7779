package escript

import (
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeSource converts raw script bytes into a Go string. UTF-16 input is
// recognized by its byte order mark; everything else is treated as UTF-8
// (with an optional UTF-8 BOM stripped by the scanner's whitespace rules).
func DecodeSource(data []byte) (string, error) {
	if len(data) >= 2 {
		var enc unicode.Endianness
		bom := true
		switch {
		case data[0] == 0xFE && data[1] == 0xFF:
			enc = unicode.BigEndian
		case data[0] == 0xFF && data[1] == 0xFE:
			enc = unicode.LittleEndian
		default:
			bom = false
		}
		if bom {
			decoder := unicode.UTF16(enc, unicode.ExpectBOM).NewDecoder()
			out, _, err := transform.Bytes(decoder, data)
			if err != nil {
				return "", err
			}
			return string(out), nil
		}
	}
	return string(data), nil
}
