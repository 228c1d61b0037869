package storage

import (
	"errors"

	"xdao.co/catid/catid"
)

// MultiCAS reads from several stores in a fixed order.
//
// Put writes only to the first adapter. Get returns the first hit and stops at
// the first error other than ErrNotFound.
type MultiCAS struct {
	Adapters []CAS
}

var _ CAS = MultiCAS{}

func (m MultiCAS) Put(bytes []byte) (catid.ContentID, error) {
	if len(m.Adapters) == 0 {
		return catid.ContentID{}, errors.New("storage: MultiCAS has no adapters")
	}
	return m.Adapters[0].Put(bytes)
}

func (m MultiCAS) Get(id catid.ContentID) ([]byte, error) {
	for _, cas := range m.Adapters {
		b, err := cas.Get(id)
		if err == nil {
			return b, nil
		}
		if IsNotFound(err) {
			continue
		}
		return nil, err
	}
	return nil, ErrNotFound
}

func (m MultiCAS) Has(id catid.ContentID) bool {
	for _, cas := range m.Adapters {
		if cas.Has(id) {
			return true
		}
	}
	return false
}
