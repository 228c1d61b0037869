// Package memory provides an in-process CAS.
//
// Contents are lost when the process exits. It is registered as the "memory"
// backend for daemons and tests that do not need persistence.
package memory

import (
	"bytes"
	"flag"
	"sync"

	"xdao.co/catid/catid"
	"xdao.co/catid/cidutil"
	"xdao.co/catid/storage"
	"xdao.co/catid/storage/casregistry"
)

// CAS is a map-backed store safe for concurrent use.
type CAS struct {
	mu      sync.RWMutex
	objects map[catid.ContentID][]byte
}

func New() *CAS {
	return &CAS{objects: map[catid.ContentID][]byte{}}
}

func (c *CAS) Put(data []byte) (catid.ContentID, error) {
	id := cidutil.ContentIDOf(data)

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.objects[id]; ok {
		if !bytes.Equal(existing, data) {
			return catid.ContentID{}, storage.ErrImmutable
		}
		return id, nil
	}
	c.objects[id] = append([]byte(nil), data...)
	return id, nil
}

func (c *CAS) Get(id catid.ContentID) ([]byte, error) {
	c.mu.RLock()
	b, ok := c.objects[id]
	c.mu.RUnlock()
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (c *CAS) Has(id catid.ContentID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.objects[id]
	return ok
}

// Len reports the number of stored objects.
func (c *CAS) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.objects)
}

func init() {
	casregistry.MustRegister(casregistry.Backend{
		Name:          "memory",
		Description:   "In-process CAS (not persisted)",
		Usage:         casregistry.UsageDaemon,
		RegisterFlags: func(fs *flag.FlagSet) {},
		Open: func() (storage.CAS, func() error, error) {
			return New(), nil, nil
		},
		OpenWithConfig: func(map[string]string) (storage.CAS, func() error, error) {
			return New(), nil, nil
		},
	})
}
