package catid

import (
	"bytes"
	"strings"
	"testing"
	"testing/quick"
)

func TestBase16_RoundTripVector(t *testing.T) {
	const s = "a719283ffb17abcd0192ea49b20139ff"
	id, err := FromBase16(s)
	if err != nil {
		t.Fatalf("FromBase16: %v", err)
	}
	if got := id.Base16(); got != s {
		t.Fatalf("Base16: got %q want %q", got, s)
	}
	hi, lo := id.Halves()
	if hi != 0xa719283ffb17abcd || lo != 0x0192ea49b20139ff {
		t.Fatalf("Halves: got %x %x", hi, lo)
	}
}

func TestBase62_RoundTripVector(t *testing.T) {
	const s = "6rqhFgbbKwnb9MLmUQDhG6"
	id, err := FromBase62(s)
	if err != nil {
		t.Fatalf("FromBase62: %v", err)
	}
	if got := id.Base62(); got != s {
		t.Fatalf("Base62: got %q want %q", got, s)
	}
	if got := id.Base16(); got != "d3aca7e43e3b452cbfa9ddd2eab9497e" {
		t.Fatalf("Base16 of base-62 vector: got %q", got)
	}
}

func TestZeroRendersPadded(t *testing.T) {
	var zero CatalogID
	if got := zero.Base16(); got != strings.Repeat("0", Base16Len) {
		t.Fatalf("Base16(0) = %q", got)
	}
	if got := zero.Base62(); got != strings.Repeat("0", Base62Len) {
		t.Fatalf("Base62(0) = %q", got)
	}
	if raw := zero.Raw(); raw != [RawLen]byte{} {
		t.Fatalf("Raw(0) = %x", raw)
	}

	for _, s := range []string{strings.Repeat("0", Base16Len), ""} {
		id, err := FromBase16(s)
		if err != nil {
			t.Fatalf("FromBase16(%q): %v", s, err)
		}
		if !id.IsZero() {
			t.Fatalf("FromBase16(%q) not zero", s)
		}
	}
	id, err := FromBase62(strings.Repeat("0", Base62Len))
	if err != nil || !id.IsZero() {
		t.Fatalf("FromBase62(zeros) = %v, %v", id, err)
	}
}

func TestMaxValue(t *testing.T) {
	max := NewCatalogID(^uint64(0), ^uint64(0))
	if got := max.Base16(); got != strings.Repeat("f", Base16Len) {
		t.Fatalf("Base16(max) = %q", got)
	}
	if got := max.Base62(); got != "7N42dgm5tFLK9N8MT7fHC7" {
		t.Fatalf("Base62(max) = %q", got)
	}
	back, err := FromBase62("7N42dgm5tFLK9N8MT7fHC7")
	if err != nil {
		t.Fatalf("FromBase62(max): %v", err)
	}
	if back != max {
		t.Fatalf("max round trip mismatch")
	}
}

func TestFromBase16_AcceptsExtraLeadingZeros(t *testing.T) {
	id, err := FromBase16(strings.Repeat("0", 40) + "ff")
	if err != nil {
		t.Fatalf("FromBase16: %v", err)
	}
	if id != NewCatalogID(0, 0xff) {
		t.Fatalf("got %s", id.Base16())
	}
}

func TestRaw_BigEndianLayout(t *testing.T) {
	id := NewCatalogID(0x0102030405060708, 0x090a0b0c0d0e0f10)
	raw := id.Raw()
	want := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	if !bytes.Equal(raw[:], want) {
		t.Fatalf("Raw: got %x want %x", raw, want)
	}
	back, err := FromRaw(want)
	if err != nil {
		t.Fatalf("FromRaw: %v", err)
	}
	if back != id {
		t.Fatalf("FromRaw mismatch: %s", back.Base16())
	}
}

func TestParse_DetectsForm(t *testing.T) {
	a := MustParse("6rqhFgbbKwnb9MLmUQDhG6")
	b := MustParse("d3aca7e43e3b452cbfa9ddd2eab9497e")
	if a != b {
		t.Fatalf("expected base-62 and base-16 forms to denote the same id")
	}
	if _, err := Parse("abc"); !IsKind(err, KindLengthMismatch) {
		t.Fatalf("Parse(short): got %v", err)
	}
}

func TestCmp(t *testing.T) {
	lo := NewCatalogID(0, ^uint64(0))
	hi := NewCatalogID(1, 0)
	if lo.Cmp(hi) != -1 || hi.Cmp(lo) != 1 || lo.Cmp(lo) != 0 {
		t.Fatalf("unexpected ordering")
	}
}

func TestText_MarshalUnmarshal(t *testing.T) {
	id := MustParse("6rqhFgbbKwnb9MLmUQDhG6")
	b, err := id.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	if string(b) != "6rqhFgbbKwnb9MLmUQDhG6" {
		t.Fatalf("MarshalText: got %q", b)
	}
	var back CatalogID
	if err := back.UnmarshalText([]byte("d3aca7e43e3b452cbfa9ddd2eab9497e")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if back != id {
		t.Fatalf("UnmarshalText mismatch")
	}
	if err := back.UnmarshalText([]byte("6rqhFgbbKwnb9MLmUQDhG!")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestCatalogID_UsableAsMapKey(t *testing.T) {
	m := map[CatalogID]string{}
	m[MustParse("6rqhFgbbKwnb9MLmUQDhG6")] = "x"
	if m[MustParse("d3aca7e43e3b452cbfa9ddd2eab9497e")] != "x" {
		t.Fatalf("equal ids must hash equally")
	}
}

func TestProperty_RoundTrips(t *testing.T) {
	check := func(hi, lo uint64) bool {
		id := NewCatalogID(hi, lo)

		s16 := id.Base16()
		if len(s16) != Base16Len {
			return false
		}
		if back, err := FromBase16(s16); err != nil || back != id {
			return false
		}

		s62 := id.Base62()
		if len(s62) != Base62Len {
			return false
		}
		if back, err := FromBase62(s62); err != nil || back != id {
			return false
		}

		raw := id.Raw()
		back, err := FromRaw(raw[:])
		return err == nil && back == id
	}
	if err := quick.Check(check, &quick.Config{MaxCount: 5000}); err != nil {
		t.Fatal(err)
	}
}

func TestProperty_Base16IsLowercaseHex(t *testing.T) {
	check := func(hi, lo uint64) bool {
		for _, c := range NewCatalogID(hi, lo).Base16() {
			if !strings.ContainsRune(Base16Alphabet, c) {
				return false
			}
		}
		return true
	}
	if err := quick.Check(check, nil); err != nil {
		t.Fatal(err)
	}
}
