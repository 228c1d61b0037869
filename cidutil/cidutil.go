// Package cidutil bridges content identifiers and IPFS CIDs.
//
// A ContentID is 20 bytes, the size of a sha1 digest. Stores in this module
// derive ContentIDs from bytes with sha1, so CID(ContentIDOf(b)) is the
// CIDv1 (raw + sha1) any IPFS implementation computes for b.
package cidutil

import (
	"errors"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"xdao.co/catid/catid"
)

var ErrNotContentCID = errors.New("cidutil: CID is not a raw sha1 content id")

// ContentIDOf returns the sha1-derived ContentID of data.
func ContentIDOf(data []byte) catid.ContentID {
	sum, err := multihash.Sum(data, multihash.SHA1, -1)
	if err != nil {
		// multihash.Sum only errors for unknown codes or bad lengths; SHA1 with
		// default length cannot reach that.
		return catid.ContentID{}
	}
	dec, err := multihash.Decode(sum)
	if err != nil {
		return catid.ContentID{}
	}
	var id catid.ContentID
	copy(id[:], dec.Digest)
	return id
}

// CID wraps id as a CIDv1 with the raw codec and a sha1 multihash.
func CID(id catid.ContentID) cid.Cid {
	mh, err := multihash.Encode(id[:], multihash.SHA1)
	if err != nil {
		return cid.Undef
	}
	return cid.NewCidV1(cid.Raw, mh)
}

// FromCID extracts the ContentID carried by c. Only sha1 multihashes of the
// full 20-byte length are accepted; the CID codec is not restricted.
func FromCID(c cid.Cid) (catid.ContentID, error) {
	if !c.Defined() {
		return catid.ContentID{}, ErrNotContentCID
	}
	dec, err := multihash.Decode(c.Hash())
	if err != nil {
		return catid.ContentID{}, fmt.Errorf("cidutil: %w", err)
	}
	if dec.Code != multihash.SHA1 || len(dec.Digest) != catid.ContentLen {
		return catid.ContentID{}, ErrNotContentCID
	}
	return catid.ContentIDFromRaw(dec.Digest)
}

// ParseCID decodes a CID string and extracts its ContentID.
func ParseCID(s string) (catid.ContentID, error) {
	c, err := cid.Decode(s)
	if err != nil {
		return catid.ContentID{}, fmt.Errorf("cidutil: %w", err)
	}
	return FromCID(c)
}

// ParseContentRef accepts either the 40-character base-16 form or a CID.
//
// A base32 CIDv1 of a sha1 digest is also 40 characters, so at that length
// both forms are tried and the base-16 error is reported when neither parses.
func ParseContentRef(s string) (catid.ContentID, error) {
	if len(s) != catid.ContentBase16Len {
		return ParseCID(s)
	}
	id, hexErr := catid.ParseContentID(s)
	if hexErr == nil {
		return id, nil
	}
	if id, err := ParseCID(s); err == nil {
		return id, nil
	}
	return catid.ContentID{}, hexErr
}
