// Package daemon serves the query surface over gRPC and provides the matching
// client. Request and response bodies are google.protobuf.Struct messages;
// every response is an envelope of code, message and data.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.trai.ch/railfare/internal/core/domain"
	"go.trai.ch/zerr"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "railfare.v1.QueryService"

// Method names.
const (
	MethodTickets  = "Tickets"
	MethodSchedule = "Schedule"
	MethodFare     = "Fare"
	MethodStations = "Stations"
	MethodPing     = "Ping"
)

// Envelope codes.
const (
	CodeOK         = http.StatusOK
	CodeIncomplete = http.StatusPartialContent
	CodeInvalid    = http.StatusBadRequest
	CodeUnresolved = http.StatusNotFound
	CodeUpstream   = http.StatusBadGateway
	CodeInternal   = http.StatusInternalServerError
)

// knownErrors are the sentinels that survive a round trip through the envelope.
var knownErrors = []error{
	domain.ErrInvalidQuery,
	domain.ErrUnknownStation,
	domain.ErrStationNotOnRoute,
	domain.ErrStationOrder,
	domain.ErrRunNotFound,
	domain.ErrScheduleNotFound,
	domain.ErrWaypointMismatch,
	domain.ErrLegMismatch,
	domain.ErrIncompleteFare,
	domain.ErrUpstream,
	domain.ErrUpstreamParse,
	domain.ErrSessionRefresh,
	domain.ErrAdmission,
}

// queryServer is the handler type of the service descriptor.
type queryServer interface {
	tickets(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	schedule(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	fare(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	stations(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ping(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*queryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: MethodTickets, Handler: unary(MethodTickets, queryServer.tickets)},
		{MethodName: MethodSchedule, Handler: unary(MethodSchedule, queryServer.schedule)},
		{MethodName: MethodFare, Handler: unary(MethodFare, queryServer.fare)},
		{MethodName: MethodStations, Handler: unary(MethodStations, queryServer.stations)},
		{MethodName: MethodPing, Handler: unary(MethodPing, queryServer.ping)},
	},
	Metadata: "railfare/v1/query.proto",
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

type handlerFunc func(queryServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(method string, fn handlerFunc) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return fn(srv.(queryServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(method)}
		handler := func(ctx context.Context, req any) (any, error) {
			return fn(srv.(queryServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// toStruct converts a JSON-encodable value into a Struct.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode message")
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, zerr.Wrap(err, "failed to encode message")
	}
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode message")
	}
	return s, nil
}

// toValue converts a JSON-encodable value into a Value.
func toValue(v any) (*structpb.Value, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode message")
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, zerr.Wrap(err, "failed to encode message")
	}
	value, err := structpb.NewValue(generic)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode message")
	}
	return value, nil
}

// fromMessage decodes a Struct or Value into out.
func fromMessage(m proto.Message, out any) error {
	raw, err := protojson.Marshal(m)
	if err != nil {
		return zerr.Wrap(err, "failed to decode message")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return zerr.Wrap(err, "failed to decode message")
	}
	return nil
}

// errorDetail is the data of a failed response.
type errorDetail struct {
	Reason   string         `json:"reason,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// sentinelOf returns the known sentinel err wraps, or nil.
func sentinelOf(err error) error {
	for _, target := range knownErrors {
		if errors.Is(err, target) {
			return target
		}
	}
	return nil
}

// codeOf maps an error to an envelope code.
func codeOf(err error) int {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, domain.ErrIncompleteFare):
		return CodeIncomplete
	case errors.Is(err, domain.ErrInvalidQuery):
		return CodeInvalid
	case domain.IsResolution(err):
		return CodeUnresolved
	case domain.IsUpstream(err), errors.Is(err, domain.ErrAdmission):
		return CodeUpstream
	default:
		return CodeInternal
	}
}

// envelope builds a response. A partial fare carries its result as data;
// other failures carry an errorDetail.
func envelope(data any, err error) (*structpb.Struct, error) {
	code := codeOf(err)
	message := "OK"
	if err != nil {
		message = err.Error()
	}
	if err != nil && code != CodeIncomplete {
		detail := errorDetail{}
		if sentinel := sentinelOf(err); sentinel != nil {
			detail.Reason = sentinel.Error()
		}
		var zErr *zerr.Error
		if errors.As(err, &zErr) {
			detail.Metadata = zErr.Metadata()
		}
		data = detail
	}

	value, encErr := toValue(data)
	if encErr != nil {
		return nil, encErr
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"code":    structpb.NewNumberValue(float64(code)),
		"message": structpb.NewStringValue(message),
		"data":    value,
	}}, nil
}

// openEnvelope decodes the data of resp into out and rebuilds the error it
// carries. out is filled for successful and partial responses.
func openEnvelope(resp *structpb.Struct, out any) error {
	fields := resp.GetFields()
	code := int(fields["code"].GetNumberValue())
	message := fields["message"].GetStringValue()
	data := fields["data"]

	switch code {
	case CodeOK, CodeIncomplete:
		if data != nil && out != nil {
			if err := fromMessage(data, out); err != nil {
				return err
			}
		}
		if code == CodeIncomplete {
			return domain.Annotate(domain.ErrIncompleteFare, "message", message)
		}
		return nil
	}

	var detail errorDetail
	if data != nil {
		_ = fromMessage(data, &detail)
	}
	for _, sentinel := range knownErrors {
		if sentinel.Error() == detail.Reason {
			kv := make([]any, 0, 2*len(detail.Metadata)+2)
			for k, v := range detail.Metadata {
				kv = append(kv, k, v)
			}
			kv = append(kv, "code", code)
			return domain.Annotate(sentinel, kv...)
		}
	}
	return zerr.With(zerr.New(message), "code", code)
}
