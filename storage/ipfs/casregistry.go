package ipfs

import (
	"flag"
	"fmt"
	"time"

	"xdao.co/catid/storage"
	"xdao.co/catid/storage/casregistry"
)

var (
	flagBin     string
	flagPath    string
	flagTimeout time.Duration
)

func init() {
	casregistry.MustRegister(casregistry.Backend{
		Name:        "ipfs",
		Description: "Local IPFS repo via the Kubo CLI (raw + sha1 blocks, offline)",
		Usage:       casregistry.UsageCLI | casregistry.UsageDaemon,
		RegisterFlags: func(fs *flag.FlagSet) {
			fs.StringVar(&flagBin, "ipfs-bin", "ipfs", "Path to the ipfs binary (for --backend=ipfs)")
			fs.StringVar(&flagPath, "ipfs-path", "", "IPFS repo path, sets IPFS_PATH (for --backend=ipfs)")
			fs.DurationVar(&flagTimeout, "ipfs-timeout", 30*time.Second, "Per-command timeout (for --backend=ipfs)")
		},
		Open: func() (storage.CAS, func() error, error) {
			return New(Options{Bin: flagBin, RepoPath: flagPath, Timeout: flagTimeout}), nil, nil
		},
		OpenWithConfig: func(cfg map[string]string) (storage.CAS, func() error, error) {
			opts := Options{Bin: cfg["ipfs-bin"], RepoPath: cfg["ipfs-path"]}
			if v := cfg["ipfs-timeout"]; v != "" {
				d, err := time.ParseDuration(v)
				if err != nil {
					return nil, nil, fmt.Errorf("ipfs-timeout: %w", err)
				}
				opts.Timeout = d
			}
			return New(opts), nil, nil
		},
	})
}
