package database

import (
	"bytes"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

// CanonicalTransfers produces the serialized form of the transfers that is
// hashed into a block. Keys are written in sorted order with ", " and ": "
// separators and every non-ASCII character escaped, so the same list of
// transfers always produces the same bytes.
func CanonicalTransfers(trans []Transfer) []byte {
	var b bytes.Buffer

	b.WriteByte('[')
	for i, tx := range trans {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(`{"amount": `)
		b.WriteString(strconv.FormatUint(tx.Amount, 10))
		b.WriteString(`, "receiver": `)
		writeString(&b, string(tx.Receiver))
		b.WriteString(`, "sender": `)
		writeString(&b, string(tx.Sender))
		b.WriteByte('}')
	}
	b.WriteByte(']')

	return b.Bytes()
}

// =============================================================================

const hexDigits = "0123456789abcdef"

// writeString writes s as a quoted JSON string restricted to printable ASCII.
func writeString(b *bytes.Buffer, s string) {
	b.WriteByte('"')

	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			switch {
			case r >= 0x20 && r < 0x7f:
				b.WriteByte(byte(r))
			case r > 0xffff:
				r1, r2 := utf16.EncodeRune(r)
				writeEscape(b, r1)
				writeEscape(b, r2)
			default:
				writeEscape(b, r)
			}
		}
	}

	b.WriteByte('"')
}

// writeEscape writes a \uXXXX escape for a rune in the basic plane.
func writeEscape(b *bytes.Buffer, r rune) {
	if r > 0xffff {
		r = utf8.RuneError
	}

	b.WriteString(`\u`)
	b.WriteByte(hexDigits[r>>12&0xf])
	b.WriteByte(hexDigits[r>>8&0xf])
	b.WriteByte(hexDigits[r>>4&0xf])
	b.WriteByte(hexDigits[r&0xf])
}
