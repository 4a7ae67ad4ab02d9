package source

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// ErrUndecodable is returned when file content cannot be decoded to UTF-8.
var ErrUndecodable = errors.New("source: content is not valid UTF-8")

// decodeText normalizes raw file bytes to UTF-8. UTF-16 input (detected by
// BOM) is transcoded; anything else must already be valid UTF-8.
// Возвращает декодированные байты и флаг транскодирования.
func decodeText(raw []byte) ([]byte, bool, error) {
	if len(raw) >= 2 {
		isBE := raw[0] == 0xFE && raw[1] == 0xFF
		isLE := raw[0] == 0xFF && raw[1] == 0xFE
		if isBE || isLE {
			endian := unicode.BigEndian
			if isLE {
				endian = unicode.LittleEndian
			}
			dec := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder()
			out, err := dec.Bytes(raw)
			if err != nil {
				return nil, false, ErrUndecodable
			}
			return out, true, nil
		}
	}
	if !utf8.Valid(raw) {
		return nil, false, ErrUndecodable
	}
	return raw, false, nil
}
