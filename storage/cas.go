package storage

import "xdao.co/catid/catid"

// CAS is a content-addressable store keyed by ContentID.
//
// Contract:
//   - Put MUST be idempotent.
//   - Stored objects MUST be immutable.
//   - IDs MUST be derived from the bytes written (cidutil.ContentIDOf).
//   - Get MUST return ErrNotFound when the ID is absent, and ErrIDMismatch when
//     stored bytes no longer hash to the requested ID.
type CAS interface {
	Put(bytes []byte) (catid.ContentID, error)
	Get(id catid.ContentID) ([]byte, error)
	Has(id catid.ContentID) bool
}
