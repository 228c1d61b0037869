package catid

import "fmt"

// ContentID is an opaque 20-byte content identifier.
type ContentID [ContentLen]byte

// ParseContentID parses the 40-character lowercase hex form produced by Base16.
func ParseContentID(s string) (ContentID, error) {
	var id ContentID
	if len(s) != ContentBase16Len {
		return id, newError(KindLengthMismatch, RuleContentLength, -1,
			fmt.Sprintf("catid: content id must be %d hex characters, got %d", ContentBase16Len, len(s)))
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x80 {
			return ContentID{}, newError(KindInvalidDigit, RuleNonASCII, i,
				fmt.Sprintf("catid: non-ASCII byte 0x%02x at offset %d", c, i))
		}
		d := base16Values[c]
		if d < 0 {
			return ContentID{}, newError(KindInvalidDigit, RuleContentDigit, i,
				fmt.Sprintf("catid: invalid content id digit %q at offset %d", c, i))
		}
		id[i/2] = id[i/2]<<4 | byte(d)
	}
	return id, nil
}

// ContentIDFromRaw copies exactly 20 bytes into a ContentID.
func ContentIDFromRaw(b []byte) (ContentID, error) {
	var id ContentID
	if len(b) != ContentLen {
		return id, newError(KindLengthMismatch, RuleContentLength, -1,
			fmt.Sprintf("catid: raw content id must be %d bytes, got %d", ContentLen, len(b)))
	}
	copy(id[:], b)
	return id, nil
}

// Base16 renders the bytes in order as 40 lowercase hex characters.
func (id ContentID) Base16() string {
	var buf [ContentBase16Len]byte
	for i, b := range id {
		buf[2*i] = Base16Alphabet[b>>4]
		buf[2*i+1] = Base16Alphabet[b&0xF]
	}
	return string(buf[:])
}

// Raw returns a copy of the identifier bytes.
func (id ContentID) Raw() []byte {
	out := make([]byte, ContentLen)
	copy(out, id[:])
	return out
}

func (id ContentID) IsZero() bool { return id == ContentID{} }

func (id ContentID) String() string { return id.Base16() }

func (id ContentID) MarshalText() ([]byte, error) {
	return []byte(id.Base16()), nil
}

func (id *ContentID) UnmarshalText(text []byte) error {
	parsed, err := ParseContentID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
