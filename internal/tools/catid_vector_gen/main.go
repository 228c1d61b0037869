// Command catid_vector_gen prints testdata/conformance/catid/vectors.txt.
package main

import (
	"encoding/hex"
	"fmt"
	"math"

	"xdao.co/catid/catid"
)

func main() {
	ids := []catid.CatalogID{
		catid.NewCatalogID(0, 0),
		catid.NewCatalogID(0, 1),
		catid.NewCatalogID(0, 61),
		catid.NewCatalogID(0, 62),
		catid.NewCatalogID(0, math.MaxUint64),
		catid.NewCatalogID(1, 0),
		catid.MustParse("a719283ffb17abcd0192ea49b20139ff"),
		catid.MustParse("d3aca7e43e3b452cbfa9ddd2eab9497e"),
		// 62^21 and 62^21-1: the leading base-62 digit rolls over.
		catid.MustParse("1000000000000000000000"),
		catid.MustParse("0ZZZZZZZZZZZZZZZZZZZZZ"),
		catid.NewCatalogID(1<<63, 0),
		catid.NewCatalogID(math.MaxUint64, math.MaxUint64),
	}

	fmt.Println("# base16 base62 rawhex")
	for _, id := range ids {
		raw := id.Raw()
		fmt.Printf("%s %s %s\n", id.Base16(), id.Base62(), hex.EncodeToString(raw[:]))
	}
}
