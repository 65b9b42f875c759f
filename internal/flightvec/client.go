package flightvec

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow/flight"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/tapeworks/npuref/internal/arrowio"
)

// Client fetches golden cases from a Flight server.
type Client struct {
	fc flight.Client
}

// Dial connects to a case server without transport security.
func Dial(addr string) (*Client, error) {
	fc, err := flight.NewClientWithMiddleware(addr, nil, nil,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	return &Client{fc: fc}, nil
}

// Close disconnects from the server.
func (c *Client) Close() error {
	return c.fc.Close()
}

// ListCases returns the names of every case the server offers.
func (c *Client) ListCases(ctx context.Context) ([]string, error) {
	stream, err := c.fc.ListFlights(ctx, &flight.Criteria{})
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}

	var names []string
	for {
		info, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list cases: %w", err)
		}
		if path := info.GetFlightDescriptor().GetPath(); len(path) > 0 {
			names = append(names, path[0])
		}
	}
	return names, nil
}

// FetchCase retrieves one case by name.
func (c *Client) FetchCase(ctx context.Context, name string) (*arrowio.Case, error) {
	stream, err := c.fc.DoGet(ctx, &flight.Ticket{Ticket: []byte(name)})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch case %s: %w", name, err)
	}

	r, err := flight.NewRecordReader(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read case %s: %w", name, err)
	}
	defer r.Release()

	for r.Next() {
		return arrowio.CaseFromRecord(r.Record())
	}
	if err := r.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read case %s: %w", name, err)
	}
	return nil, fmt.Errorf("case %s: empty stream", name)
}
