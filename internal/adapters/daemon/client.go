package daemon

import (
	"context"
	"errors"

	"go.trai.ch/railfare/internal/core/domain"
	"go.trai.ch/zerr"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client implements ports.Queries against a running daemon.
type Client struct {
	conn grpc.ClientConnInterface
	// closer is nil when the connection is owned by the caller.
	closer interface{ Close() error }
}

// Dial connects to the daemon described by cfg. The connection is made lazily
// on the first call.
func Dial(cfg domain.ServerConfig, opts ...grpc.DialOption) (*Client, error) {
	target := cfg.Address
	if cfg.Network == "unix" {
		target = "unix://" + cfg.Address
	}
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, zerr.Wrap(err, "daemon client creation failed")
	}
	return &Client{conn: conn, closer: conn}, nil
}

// NewClient wraps an existing connection.
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// Close releases the connection opened by Dial.
func (c *Client) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

// Ping checks that the daemon answers and returns its status.
func (c *Client) Ping(ctx context.Context) (*Status, error) {
	var st Status
	if err := c.call(ctx, MethodPing, struct{}{}, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Tickets implements ports.Queries.
func (c *Client) Tickets(ctx context.Context, q domain.TicketQuery) ([]domain.TrainInfo, error) {
	var trains []domain.TrainInfo
	if err := c.call(ctx, MethodTickets, q, &trains); err != nil {
		return nil, err
	}
	return trains, nil
}

// Schedule implements ports.Queries.
func (c *Client) Schedule(ctx context.Context, q domain.ScheduleQuery) (*domain.TrainSchedule, error) {
	var schedule domain.TrainSchedule
	if err := c.call(ctx, MethodSchedule, q, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// Fare implements ports.Queries. A partial result is returned together with
// an error wrapping domain.ErrIncompleteFare.
func (c *Client) Fare(ctx context.Context, q domain.FareQuery) (*domain.FareResult, error) {
	var result domain.FareResult
	err := c.call(ctx, MethodFare, q, &result)
	if err != nil && !errors.Is(err, domain.ErrIncompleteFare) {
		return nil, err
	}
	return &result, err
}

// Stations implements ports.Queries.
func (c *Client) Stations(ctx context.Context, keyword string, exact bool, limit int) ([]domain.Station, error) {
	var found []domain.Station
	req := stationsRequest{Keyword: keyword, Exact: exact, Limit: limit}
	if err := c.call(ctx, MethodStations, req, &found); err != nil {
		return nil, err
	}
	return found, nil
}

func (c *Client) call(ctx context.Context, method string, req, out any) error {
	in, err := toStruct(req)
	if err != nil {
		return err
	}
	resp := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, fullMethod(method), in, resp); err != nil {
		if status.Code(err) == codes.Unavailable {
			return domain.Annotate(domain.ErrDaemonUnavailable, "method", method, "cause", err.Error())
		}
		return zerr.With(zerr.Wrap(err, "daemon call failed"), "method", method)
	}
	return openEnvelope(resp, out)
}
