package cidutil

import (
	"errors"
	"strings"
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"xdao.co/catid/catid"
)

func TestContentIDOf_IsSHA1(t *testing.T) {
	got := ContentIDOf([]byte("hello"))
	if got.Base16() != "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d" {
		t.Fatalf("ContentIDOf(hello) = %s", got)
	}
	empty := ContentIDOf(nil)
	if empty.Base16() != "da39a3ee5e6b4b0d3255bfef95601890afd80709" {
		t.Fatalf("ContentIDOf(nil) = %s", empty)
	}
}

func TestCID_KnownVector(t *testing.T) {
	c := CID(ContentIDOf([]byte("hello")))
	if c.String() != "bafkrcffk6tdb3xgf5crnvpw6b45uqlgzv2uugti" {
		t.Fatalf("CID(hello) = %s", c)
	}
	if c.Type() != cid.Raw {
		t.Fatalf("expected raw codec, got %d", c.Type())
	}
}

func TestFromCID_RoundTrip(t *testing.T) {
	id := ContentIDOf([]byte("payload"))
	back, err := ParseCID(CID(id).String())
	if err != nil {
		t.Fatalf("ParseCID: %v", err)
	}
	if back != id {
		t.Fatalf("round trip mismatch: %s vs %s", back, id)
	}
}

func TestFromCID_RejectsOtherHashes(t *testing.T) {
	sum, err := multihash.Sum([]byte("hello"), multihash.SHA2_256, -1)
	if err != nil {
		t.Fatalf("multihash.Sum: %v", err)
	}
	_, err = FromCID(cid.NewCidV1(cid.Raw, sum))
	if !errors.Is(err, ErrNotContentCID) {
		t.Fatalf("expected ErrNotContentCID, got %v", err)
	}
	if _, err := FromCID(cid.Undef); !errors.Is(err, ErrNotContentCID) {
		t.Fatalf("expected ErrNotContentCID for undefined CID, got %v", err)
	}
}

func TestParseContentRef(t *testing.T) {
	id := ContentIDOf([]byte("ref"))
	for _, s := range []string{id.Base16(), CID(id).String()} {
		got, err := ParseContentRef(s)
		if err != nil {
			t.Fatalf("ParseContentRef(%s): %v", s, err)
		}
		if got != id {
			t.Fatalf("ParseContentRef(%s) = %s", s, got)
		}
	}
	if _, err := ParseContentRef("not-an-id"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestCID_ZeroContentID(t *testing.T) {
	var zero catid.ContentID
	back, err := FromCID(CID(zero))
	if err != nil {
		t.Fatalf("FromCID: %v", err)
	}
	if !back.IsZero() {
		t.Fatalf("expected zero id")
	}
}

func TestParseContentRef_KeepsHexDigitError(t *testing.T) {
	bad := strings.Repeat("0", 39) + "G"
	_, err := ParseContentRef(bad)
	if !catid.IsKind(err, catid.KindInvalidDigit) {
		t.Fatalf("expected InvalidDigit, got %v", err)
	}
	if got := catid.RuleID(err); got != catid.RuleContentDigit {
		t.Fatalf("rule: got %q want %q", got, catid.RuleContentDigit)
	}
	var ce *catid.Error
	if !errors.As(err, &ce) || ce.Offset != 39 {
		t.Fatalf("expected offset 39, got %+v", ce)
	}

	// A 40-character CID must still resolve.
	id := ContentIDOf([]byte("hello"))
	s := CID(id).String()
	if len(s) != catid.ContentBase16Len {
		t.Fatalf("test assumes a %d-char CID, got %d", catid.ContentBase16Len, len(s))
	}
	if got, err := ParseContentRef(s); err != nil || got != id {
		t.Fatalf("ParseContentRef(%s) = %s, %v", s, got, err)
	}
}
