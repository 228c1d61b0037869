package storage

import (
	"fmt"

	"xdao.co/catid/catid"
	"xdao.co/catid/cidutil"
)

// NamedCAS associates a CAS with a stable backend name.
type NamedCAS struct {
	Name string
	CAS  CAS
}

// ReplicatingCAS writes to all configured backends.
//
// Reads fall back in order. Writes go to all backends and require every
// returned ID to equal the ID computed from the bytes.
type ReplicatingCAS struct {
	Backends []NamedCAS
}

var _ CAS = ReplicatingCAS{}

// PutAll writes the same bytes to all backends and returns the computed ID
// plus what each backend reported. On ErrIDMismatch the partial map is
// returned for reporting.
func (r ReplicatingCAS) PutAll(bytes []byte) (catid.ContentID, map[string]catid.ContentID, error) {
	want := cidutil.ContentIDOf(bytes)
	if len(r.Backends) == 0 {
		return catid.ContentID{}, nil, fmt.Errorf("storage: ReplicatingCAS has no backends")
	}

	out := make(map[string]catid.ContentID, len(r.Backends))
	for _, b := range r.Backends {
		if b.CAS == nil {
			return catid.ContentID{}, nil, fmt.Errorf("storage: nil CAS for backend %q", b.Name)
		}
		got, err := b.CAS.Put(bytes)
		if err != nil {
			return catid.ContentID{}, nil, fmt.Errorf("storage: backend %q: %w", b.Name, err)
		}
		out[b.Name] = got
		if got != want {
			return catid.ContentID{}, out, ErrIDMismatch
		}
	}
	return want, out, nil
}

func (r ReplicatingCAS) Put(bytes []byte) (catid.ContentID, error) {
	id, _, err := r.PutAll(bytes)
	return id, err
}

func (r ReplicatingCAS) Get(id catid.ContentID) ([]byte, error) {
	for _, b := range r.Backends {
		if b.CAS == nil {
			continue
		}
		out, err := b.CAS.Get(id)
		if err == nil {
			return out, nil
		}
		if IsNotFound(err) {
			continue
		}
		return nil, err
	}
	return nil, ErrNotFound
}

func (r ReplicatingCAS) Has(id catid.ContentID) bool {
	for _, b := range r.Backends {
		if b.CAS != nil && b.CAS.Has(id) {
			return true
		}
	}
	return false
}
