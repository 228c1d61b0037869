package model

import (
	"encoding/hex"

	"xdao.co/catid/catid"
	"xdao.co/catid/cidutil"
)

// CatalogIDView shows a catalog identifier in every supported form.
type CatalogIDView struct {
	Base16 string `json:"base16"`
	Base62 string `json:"base62"`
	// RawHex is the 16 raw bytes, hex encoded.
	RawHex string `json:"rawHex"`
}

func NewCatalogIDView(id catid.CatalogID) CatalogIDView {
	raw := id.Raw()
	return CatalogIDView{
		Base16: id.Base16(),
		Base62: id.Base62(),
		RawHex: hex.EncodeToString(raw[:]),
	}
}

// ContentIDView shows a content identifier and its CIDv1 (raw + sha1).
type ContentIDView struct {
	Base16 string `json:"base16"`
	CID    string `json:"cid"`
}

func NewContentIDView(id catid.ContentID) ContentIDView {
	return ContentIDView{Base16: id.Base16(), CID: cidutil.CID(id).String()}
}

// StoreResult reports the outcome of a store operation.
type StoreResult struct {
	Content ContentIDView `json:"content"`
	Size    int           `json:"size,omitempty"`
	Present *bool         `json:"present,omitempty"`
}
