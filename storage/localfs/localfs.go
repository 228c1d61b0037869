package localfs

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	"xdao.co/catid/catid"
	"xdao.co/catid/cidutil"
	"xdao.co/catid/storage"
)

// CAS is a local filesystem-backed content-addressable store.
//
// Objects live at <root>/<id[:2]>/<id> where id is the 40-character base-16
// ContentID. Files are published with a hard link so readers never observe a
// partially written object.
type CAS struct {
	root string
}

// New constructs a filesystem CAS rooted at root. The directory will be created if needed.
func New(root string) (*CAS, error) {
	if root == "" {
		return nil, errors.New("localfs: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &CAS{root: root}, nil
}

func (c *CAS) Put(data []byte) (catid.ContentID, error) {
	id := cidutil.ContentIDOf(data)

	path := c.pathFor(id)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return catid.ContentID{}, err
	}
	if _, err := os.Stat(path); err == nil {
		return id, c.checkExisting(id, data)
	}

	tmp, err := os.CreateTemp(dir, ".put-*")
	if err != nil {
		return catid.ContentID{}, err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return catid.ContentID{}, err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return catid.ContentID{}, err
	}
	if err := tmp.Close(); err != nil {
		return catid.ContentID{}, err
	}
	if err := os.Chmod(tmpPath, 0o444); err != nil {
		return catid.ContentID{}, err
	}

	if err := os.Link(tmpPath, path); err != nil {
		if os.IsExist(err) {
			return id, c.checkExisting(id, data)
		}
		return catid.ContentID{}, err
	}
	return id, nil
}

// checkExisting enforces immutability when id is already present.
func (c *CAS) checkExisting(id catid.ContentID, data []byte) error {
	existing, err := c.Get(id)
	if err != nil {
		// Unreadable or corrupted objects are never repaired in place.
		return storage.ErrImmutable
	}
	if !bytes.Equal(existing, data) {
		return storage.ErrImmutable
	}
	return nil
}

func (c *CAS) Get(id catid.ContentID) ([]byte, error) {
	b, err := os.ReadFile(c.pathFor(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	if cidutil.ContentIDOf(b) != id {
		return nil, storage.ErrIDMismatch
	}
	return b, nil
}

func (c *CAS) Has(id catid.ContentID) bool {
	_, err := os.Stat(c.pathFor(id))
	return err == nil
}

func (c *CAS) pathFor(id catid.ContentID) string {
	s := id.Base16()
	return filepath.Join(c.root, s[:2], s)
}
