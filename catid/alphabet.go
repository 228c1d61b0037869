package catid

const (
	// Base16Alphabet orders the hex digits by value.
	Base16Alphabet = "0123456789abcdef"
	// Base62Alphabet orders digits, then lowercase, then uppercase letters.
	// A character's position is its digit value.
	Base62Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	Base16Len        = 32
	Base62Len        = 22
	RawLen           = 16
	ContentLen       = 20
	ContentBase16Len = 2 * ContentLen
)

var (
	base16Values = digitTable(Base16Alphabet)
	base62Values = digitTable(Base62Alphabet)
)

// digitTable maps every byte to its value in alphabet, or -1.
func digitTable(alphabet string) [256]int8 {
	var t [256]int8
	for i := range t {
		t[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		t[alphabet[i]] = int8(i)
	}
	return t
}
