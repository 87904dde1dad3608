// Package base4 implements the text encodings used for the assembler's object,
// entries and externals files.
//
// It plays the role the teacher's Intel-Hex-flavoured "encoding" package plays for
// an LC-3 loader image, but the wire format here is the one this assembler's
// specification mandates: 10-bit words written as fixed-width digit strings over
// the four-letter alphabet a=0, b=1, c=2, d=3, most significant digit first.
//
//	file   = header nl { line } ;
//	header = digits space digits ;
//	line   = addr space word nl ;
//	addr   = digit digit digit digit ;
//	word   = digit digit digit digit digit ;
//	digit  = 'a' | 'b' | 'c' | 'd' ;
//
// # Bugs
//
// This is not a general-purpose base-4 codec; it only supports the fixed widths
// (4 digits for addresses, 5 digits for machine words) and the leading-digit-
// stripped header form the object file format requires.
package base4

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

const alphabet = "abcd"

// AddressWidth and WordWidth are the fixed digit counts the object file's body
// lines use for addresses and machine words, respectively.
const (
	AddressWidth = 4
	WordWidth    = 5
)

// ErrInvalidDigit is returned when a string contains a byte outside {a,b,c,d}.
var ErrInvalidDigit = fmt.Errorf("base4: invalid digit")

// Encode renders value as a fixed-width base-4 string, most significant digit
// first, using exactly width digits. It panics if value does not fit in width
// digits; callers choose width to match the value's known range.
func Encode(value uint16, width int) string {
	buf := make([]byte, width)

	for i := width - 1; i >= 0; i-- {
		buf[i] = alphabet[value&0x3]
		value >>= 2
	}

	if value != 0 {
		panic(fmt.Sprintf("base4: value overflows %d digits", width))
	}

	return string(buf)
}

// EncodeMinimal renders value as a base-4 string with its leading 'a' digits
// stripped, keeping at least one digit. This is the form the object file's
// header line uses for the instruction and data word counts.
func EncodeMinimal(value uint16) string {
	full := Encode(value, 8) // 16 bits = 8 base-4 digits, more than enough headroom.

	trimmed := strings.TrimLeft(full, "a")
	if trimmed == "" {
		trimmed = "a"
	}

	return trimmed
}

// Decode parses a base-4 digit string (of any width) back into its integer
// value. It is the inverse of Encode and EncodeMinimal alike.
func Decode(s string) (uint16, error) {
	if len(s) == 0 {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidDigit)
	}

	var value uint16

	for i := 0; i < len(s); i++ {
		idx := strings.IndexByte(alphabet, s[i])
		if idx < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDigit, s[i])
		}

		value = value<<2 | uint16(idx)
	}

	return value, nil
}

// Entry is one symbol-address pair, shared by the entries and externals file
// writers below.
type Entry struct {
	Name    string
	Address uint16
}

// Object renders the object file body: a header line with the instruction and
// data word counts, followed by one "ADDRESS WORD" line per word, instructions
// first in ascending order, then data words immediately after.
func Object(icCount, dcCount int, instrAt uint16, instructions []uint16, dataAt uint16, data []uint16) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s %s\n", EncodeMinimal(uint16(icCount)), EncodeMinimal(uint16(dcCount)))

	addr := instrAt

	for _, word := range instructions {
		fmt.Fprintf(&buf, "%s %s\n", Encode(addr, AddressWidth), Encode(word, WordWidth))
		addr++
	}

	addr = dataAt

	for _, word := range data {
		fmt.Fprintf(&buf, "%s %s\n", Encode(addr, AddressWidth), Encode(word, WordWidth))
		addr++
	}

	return buf.Bytes()
}

// Entries renders the entries file body: one "NAME ADDRESS" line per entry, in
// the order given. Callers omit writing the file entirely when there are no
// entries; this function does not special-case that.
func Entries(entries []Entry) []byte {
	return lines(entries)
}

// Externals renders the externals file body: one "SYMBOL ADDRESS" line per
// recorded use site, in order of occurrence.
func Externals(refs []Entry) []byte {
	return lines(refs)
}

func lines(entries []Entry) []byte {
	var buf bytes.Buffer

	for _, e := range entries {
		fmt.Fprintf(&buf, "%s %s\n", e.Name, Encode(e.Address, AddressWidth))
	}

	return buf.Bytes()
}

// ParseEntries reads back an entries- or externals-shaped file ("NAME ADDRESS"
// per line) and returns the decoded pairs. It exists primarily to round-trip
// golden test fixtures.
func ParseEntries(r *bufio.Scanner) ([]Entry, error) {
	var out []Entry

	for r.Scan() {
		line := strings.TrimSpace(r.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("base4: malformed line %q", line)
		}

		addr, err := Decode(fields[1])
		if err != nil {
			return nil, err
		}

		out = append(out, Entry{Name: fields[0], Address: addr})
	}

	return out, r.Err()
}
