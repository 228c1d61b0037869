package ipfs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/ipfs/go-cid"

	"xdao.co/catid/catid"
	"xdao.co/catid/cidutil"
	"xdao.co/catid/storage"
)

// CAS stores content as raw IPFS blocks through the local Kubo "ipfs" CLI.
//
// Blocks are written as CIDv1 raw + sha1, so the block CID of any object is
// cidutil.CID of its ContentID. All commands run with --offline against the
// local repo; no daemon is needed and nothing is fetched from the network.
// Every read is re-hashed before it is returned.
type CAS struct {
	bin     string
	env     []string
	timeout time.Duration
}

var _ storage.CAS = (*CAS)(nil)

type Options struct {
	// Bin is the path to the ipfs binary. If empty, "ipfs" is used.
	Bin string
	// RepoPath sets IPFS_PATH for every command when non-empty.
	RepoPath string
	// Timeout bounds each command when non-zero.
	Timeout time.Duration
}

func New(opts Options) *CAS {
	bin := opts.Bin
	if bin == "" {
		bin = "ipfs"
	}
	var env []string
	if opts.RepoPath != "" {
		env = append(os.Environ(), "IPFS_PATH="+opts.RepoPath)
	}
	return &CAS{bin: bin, env: env, timeout: opts.Timeout}
}

func (c *CAS) Put(data []byte) (catid.ContentID, error) {
	id := cidutil.ContentIDOf(data)

	out, err := c.run(data,
		"block", "put",
		"--quiet",
		"--cid-codec=raw",
		"--mhtype=sha1",
		"--mhlen=20",
		"/dev/stdin",
	)
	if err != nil {
		return catid.ContentID{}, err
	}

	got, err := cid.Decode(strings.TrimSpace(string(out)))
	if err != nil {
		return catid.ContentID{}, fmt.Errorf("ipfs: unexpected block put output: %w", err)
	}
	if !got.Equals(cidutil.CID(id)) {
		return catid.ContentID{}, storage.ErrIDMismatch
	}
	return id, nil
}

func (c *CAS) Get(id catid.ContentID) ([]byte, error) {
	out, err := c.run(nil, "block", "get", cidutil.CID(id).String())
	if err != nil {
		if isLikelyNotFound(err) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	if cidutil.ContentIDOf(out) != id {
		return nil, storage.ErrIDMismatch
	}
	return out, nil
}

func (c *CAS) Has(id catid.ContentID) bool {
	_, err := c.run(nil, "block", "stat", cidutil.CID(id).String())
	return err == nil
}

func (c *CAS) run(stdin []byte, args ...string) ([]byte, error) {
	ctx := context.Background()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, c.bin, append([]string{"--offline"}, args...)...)
	if c.env != nil {
		cmd.Env = c.env
	}
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	out, err := cmd.Output()
	if err == nil {
		return out, nil
	}

	var ee *exec.ExitError
	if errors.As(err, &ee) {
		s := strings.TrimSpace(string(ee.Stderr))
		if s == "" {
			return nil, fmt.Errorf("ipfs: %v", err)
		}
		return nil, fmt.Errorf("ipfs: %s", s)
	}
	return nil, err
}

func isLikelyNotFound(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}
