package catid

import (
	"fmt"
	"math/bits"

	"lukechampine.com/uint128"
)

// CatalogID is an unsigned 128-bit catalog identifier.
//
// The zero value is the identifier 0.
type CatalogID struct {
	v uint128.Uint128
}

// NewCatalogID builds a CatalogID from its high and low 64-bit halves.
func NewCatalogID(hi, lo uint64) CatalogID {
	return CatalogID{v: uint128.New(lo, hi)}
}

// Halves returns the high and low 64-bit halves of id.
func (id CatalogID) Halves() (hi, lo uint64) {
	return id.v.Hi, id.v.Lo
}

func (id CatalogID) IsZero() bool { return id.v.IsZero() }

// Cmp compares id and other numerically and returns -1, 0 or +1.
func (id CatalogID) Cmp(other CatalogID) int { return id.v.Cmp(other.v) }

// FromBase16 parses a big-endian lowercase hex numeral.
//
// Leading zeros are accepted at any length; a value above 2^128-1 is an
// Overflow error.
func FromBase16(s string) (CatalogID, error) {
	return parseBase(s, 16, &base16Values, RuleBase16Digit, RuleBase16Overflow, "base-16")
}

// FromBase62 parses a big-endian numeral over Base62Alphabet.
func FromBase62(s string) (CatalogID, error) {
	return parseBase(s, 62, &base62Values, RuleBase62Digit, RuleBase62Overflow, "base-62")
}

// FromRaw reads exactly 16 big-endian bytes.
func FromRaw(b []byte) (CatalogID, error) {
	if len(b) != RawLen {
		return CatalogID{}, newError(KindLengthMismatch, RuleRawLength, -1,
			fmt.Sprintf("catid: raw catalog id must be %d bytes, got %d", RawLen, len(b)))
	}
	return CatalogID{v: uint128.FromBytesBE(b)}, nil
}

// Parse detects the form of s by its length: 22 characters are base-62 and
// 32 characters are base-16.
func Parse(s string) (CatalogID, error) {
	switch len(s) {
	case Base62Len:
		return FromBase62(s)
	case Base16Len:
		return FromBase16(s)
	default:
		return CatalogID{}, newError(KindLengthMismatch, RuleParseLength, -1,
			fmt.Sprintf("catid: cannot detect form of %d-character id (want %d or %d)", len(s), Base62Len, Base16Len))
	}
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) CatalogID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

func parseBase(s string, base uint64, values *[256]int8, digitRule, overflowRule, name string) (CatalogID, error) {
	var hi, lo uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x80 {
			return CatalogID{}, newError(KindInvalidDigit, RuleNonASCII, i,
				fmt.Sprintf("catid: non-ASCII byte 0x%02x at offset %d", c, i))
		}
		d := values[c]
		if d < 0 {
			return CatalogID{}, newError(KindInvalidDigit, digitRule, i,
				fmt.Sprintf("catid: invalid %s digit %q at offset %d", name, c, i))
		}
		var ok bool
		hi, lo, ok = mulAdd(hi, lo, base, uint64(d))
		if !ok {
			return CatalogID{}, newError(KindOverflow, overflowRule, i,
				fmt.Sprintf("catid: %s value exceeds 128 bits at offset %d", name, i))
		}
	}
	return CatalogID{v: uint128.New(lo, hi)}, nil
}

// mulAdd computes (hi:lo)*m + a and reports false if the result does not
// fit in 128 bits.
func mulAdd(hi, lo, m, a uint64) (uint64, uint64, bool) {
	carry, hiProd := bits.Mul64(hi, m)
	if carry != 0 {
		return 0, 0, false
	}
	loHi, loLo := bits.Mul64(lo, m)
	newHi, c := bits.Add64(hiProd, loHi, 0)
	if c != 0 {
		return 0, 0, false
	}
	newLo, c := bits.Add64(loLo, a, 0)
	newHi, c = bits.Add64(newHi, 0, c)
	if c != 0 {
		return 0, 0, false
	}
	return newHi, newLo, true
}

// Base16 renders id as exactly 32 lowercase hex characters.
func (id CatalogID) Base16() string {
	var buf [Base16Len]byte
	for i := 0; i < Base16Len; i++ {
		buf[Base16Len-1-i] = Base16Alphabet[id.v.Rsh(uint(4*i)).Lo&0xF]
	}
	return string(buf[:])
}

// Base62 renders id as exactly 22 characters, most significant digit first.
func (id CatalogID) Base62() string {
	var buf [Base62Len]byte
	n := id.v
	for i := Base62Len - 1; i >= 0; i-- {
		q, r := n.QuoRem64(62)
		buf[i] = Base62Alphabet[r]
		n = q
	}
	return string(buf[:])
}

// Raw renders id as 16 big-endian bytes.
func (id CatalogID) Raw() [RawLen]byte {
	var b [RawLen]byte
	id.v.PutBytesBE(b[:])
	return b
}

// String returns the base-62 form.
func (id CatalogID) String() string { return id.Base62() }

// MarshalText implements encoding.TextMarshaler using the base-62 form.
func (id CatalogID) MarshalText() ([]byte, error) {
	return []byte(id.Base62()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts either the
// base-62 or the base-16 form, distinguished by length.
func (id *CatalogID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
