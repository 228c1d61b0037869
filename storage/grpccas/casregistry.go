package grpccas

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"xdao.co/catid/storage"
	"xdao.co/catid/storage/casregistry"
)

var (
	flagTarget      string
	flagDialTimeout time.Duration
	flagTimeout     time.Duration
	flagMaxMsgBytes int
)

func open(target string, dial DialOptions, rpcTimeout time.Duration) (storage.CAS, func() error, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, nil, fmt.Errorf("missing --grpc-target")
	}
	client, err := Dial(target, dial)
	if err != nil {
		return nil, nil, err
	}
	client.Timeout = rpcTimeout
	return client, client.Close, nil
}

// configFromMap reads the same keys as the backend flags.
func configFromMap(cfg map[string]string) (target string, dial DialOptions, rpcTimeout time.Duration, err error) {
	target = cfg["grpc-target"]
	dial.Timeout = 5 * time.Second
	if v := cfg["grpc-dial-timeout"]; v != "" {
		if dial.Timeout, err = time.ParseDuration(v); err != nil {
			return "", dial, 0, fmt.Errorf("grpc-dial-timeout: %w", err)
		}
	}
	if v := cfg["grpc-timeout"]; v != "" {
		if rpcTimeout, err = time.ParseDuration(v); err != nil {
			return "", dial, 0, fmt.Errorf("grpc-timeout: %w", err)
		}
	}
	if v := cfg["grpc-max-msg-bytes"]; v != "" {
		if dial.MaxMsgBytes, err = strconv.Atoi(v); err != nil {
			return "", dial, 0, fmt.Errorf("grpc-max-msg-bytes: %w", err)
		}
	}
	return target, dial, rpcTimeout, nil
}

func init() {
	casregistry.MustRegister(casregistry.Backend{
		Name:        "grpc",
		Description: "gRPC CAS client (talks to catid-casd)",
		Usage:       casregistry.UsageCLI,
		RegisterFlags: func(fs *flag.FlagSet) {
			fs.StringVar(&flagTarget, "grpc-target", "", "gRPC target host:port (for --backend=grpc)")
			fs.DurationVar(&flagDialTimeout, "grpc-dial-timeout", 5*time.Second, "Dial timeout (for --backend=grpc)")
			fs.DurationVar(&flagTimeout, "grpc-timeout", 0, "Per-RPC timeout (for --backend=grpc)")
			fs.IntVar(&flagMaxMsgBytes, "grpc-max-msg-bytes", 0, "Max gRPC message size in bytes (send+recv); 0 uses grpc defaults")
		},
		Open: func() (storage.CAS, func() error, error) {
			return open(flagTarget, DialOptions{Timeout: flagDialTimeout, MaxMsgBytes: flagMaxMsgBytes}, flagTimeout)
		},
		OpenWithConfig: func(cfg map[string]string) (storage.CAS, func() error, error) {
			target, dial, rpcTimeout, err := configFromMap(cfg)
			if err != nil {
				return nil, nil, err
			}
			return open(target, dial, rpcTimeout)
		},
	})
}
