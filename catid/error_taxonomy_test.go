package catid

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorTaxonomy(t *testing.T) {
	cases := []struct {
		name   string
		run    func() error
		kind   Kind
		rule   string
		offset int
	}{
		{"base16 non-hex letter", func() error { _, err := FromBase16("g"); return err }, KindInvalidDigit, RuleBase16Digit, 0},
		{"base16 uppercase", func() error { _, err := FromBase16("00A"); return err }, KindInvalidDigit, RuleBase16Digit, 2},
		{"base16 non-ascii", func() error { _, err := FromBase16("0é"); return err }, KindInvalidDigit, RuleNonASCII, 1},
		{"base62 space", func() error { _, err := FromBase62("6rqhFgbbKw b9MLmUQDhG6"); return err }, KindInvalidDigit, RuleBase62Digit, 10},
		{"base62 punctuation", func() error { _, err := FromBase62("-"); return err }, KindInvalidDigit, RuleBase62Digit, 0},
		{"base16 33 digits", func() error { _, err := FromBase16("1" + strings.Repeat("0", 32)); return err }, KindOverflow, RuleBase16Overflow, 32},
		{"base62 just above max", func() error { _, err := FromBase62("7N42dgm5tFLK9N8MT7fHC8"); return err }, KindOverflow, RuleBase62Overflow, 21},
		{"base62 23 digits", func() error { _, err := FromBase62("1" + strings.Repeat("0", 22)); return err }, KindOverflow, RuleBase62Overflow, 22},
		{"raw 15 bytes", func() error { _, err := FromRaw(make([]byte, 15)); return err }, KindLengthMismatch, RuleRawLength, -1},
		{"raw 17 bytes", func() error { _, err := FromRaw(make([]byte, 17)); return err }, KindLengthMismatch, RuleRawLength, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			if err == nil {
				t.Fatalf("expected error")
			}
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("expected structured *catid.Error, got %T", err)
			}
			if e.Kind != tc.kind {
				t.Fatalf("expected %s, got %s", tc.kind, e.Kind)
			}
			if e.RuleID != tc.rule {
				t.Fatalf("expected RuleID %s, got %s", tc.rule, e.RuleID)
			}
			if e.Offset != tc.offset {
				t.Fatalf("expected offset %d, got %d", tc.offset, e.Offset)
			}
		})
	}
}

func TestErrorTaxonomy_Sentinels(t *testing.T) {
	_, err := FromBase16("xyz")
	if !errors.Is(err, ErrInvalidDigit) {
		t.Fatalf("expected errors.Is(err, ErrInvalidDigit), got %v", err)
	}
	if errors.Is(err, ErrOverflow) {
		t.Fatalf("InvalidDigit must not match ErrOverflow")
	}
	_, err = FromRaw(nil)
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected errors.Is(err, ErrLengthMismatch), got %v", err)
	}
	_, err = FromBase62(strings.Repeat("Z", 23))
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected errors.Is(err, ErrOverflow), got %v", err)
	}
	if RuleID(errors.New("plain")) != "" {
		t.Fatalf("RuleID of a plain error must be empty")
	}
}
