package grpccas

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/catid/catid"
	"xdao.co/catid/cidutil"
	"xdao.co/catid/storage"
)

// Client implements storage.CAS over a CAS gRPC service.
//
// Every response is re-verified locally: Put must echo the ID computed from
// the request bytes, and Get must return bytes hashing to the requested ID.
type Client struct {
	cc     *grpc.ClientConn
	client CASClient

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

var _ storage.CAS = (*Client)(nil)

var errNilClient = errors.New("grpccas: nil client")

type DialOptions struct {
	// Timeout applies to the initial dial when non-zero.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int
}

func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cc, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return NewClient(cc), nil
}

// NewClient wraps an existing connection. Close closes cc.
func NewClient(cc *grpc.ClientConn) *Client {
	return &Client{cc: cc, client: NewCASClient(cc)}
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

func (c *Client) Put(data []byte) (catid.ContentID, error) {
	if c == nil || c.client == nil {
		return catid.ContentID{}, errNilClient
	}
	expected := cidutil.ContentIDOf(data)

	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.Put(ctx, wrapperspb.Bytes(data))
	if err != nil {
		return catid.ContentID{}, mapRPC(err)
	}
	id, err := catid.ParseContentID(reply.GetValue())
	if err != nil {
		return catid.ContentID{}, storage.ErrInvalidID
	}
	if id != expected {
		return catid.ContentID{}, storage.ErrIDMismatch
	}
	return id, nil
}

func (c *Client) Get(id catid.ContentID) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, errNilClient
	}
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.Get(ctx, wrapperspb.String(id.Base16()))
	if err != nil {
		return nil, mapRPC(err)
	}
	b := reply.GetValue()
	if cidutil.ContentIDOf(b) != id {
		return nil, storage.ErrIDMismatch
	}
	return b, nil
}

func (c *Client) Has(id catid.ContentID) bool {
	if c == nil || c.client == nil {
		return false
	}
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.Has(ctx, wrapperspb.String(id.Base16()))
	if err != nil {
		return false
	}
	return reply.GetValue()
}

func (c *Client) ctx() (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), c.Timeout)
}
