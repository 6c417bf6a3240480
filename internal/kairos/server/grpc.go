package server

import (
	"context"
	"time"

	kerror "github.com/msto63/kairos/foundation/core/error"
	"github.com/msto63/kairos/internal/kairos/service"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Ensure Server implements DateFormatServer
var _ DateFormatServer = (*Server)(nil)

// Parse implements DateFormatServer.Parse.
//
// Request: pattern, text, optional locale and zone.
// Response: pattern, kind, seconds, nanos and time (RFC 3339, when
// representable). Offset seconds are included when the input carried one.
func (s *Server) Parse(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	pattern, err := requiredString(req, "pattern", "server.Parse")
	if err != nil {
		return nil, err
	}
	text, err := requiredString(req, "text", "server.Parse")
	if err != nil {
		return nil, err
	}

	result, err := s.service.Parse(ctx, service.ParseRequest{
		Pattern: pattern,
		Text:    text,
		Locale:  stringField(req, "locale"),
		Zone:    stringField(req, "zone"),
	})
	if err != nil {
		return nil, err
	}

	out := map[string]interface{}{
		"pattern": result.Pattern,
		"kind":    result.Kind,
	}
	instantFields(result.Time, out)
	if offset, ok := result.Parsed.Offset(); ok {
		out["offset_seconds"] = offset
	}
	return structpb.NewStruct(out)
}

// Format implements DateFormatServer.Format.
//
// Request: pattern, either time (RFC 3339) or epoch_millis, optional locale
// and zone. epoch_millis is an integer number or a string in the epoch_millis
// grammar. Response: text.
func (s *Server) Format(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	pattern, err := requiredString(req, "pattern", "server.Format")
	if err != nil {
		return nil, err
	}

	var t time.Time
	switch {
	case hasField(req, "time"):
		if t, err = parseTimestamp(stringField(req, "time"), "server.Format"); err != nil {
			return nil, err
		}
	case hasField(req, "epoch_millis"):
		if t, err = epochMillisField(req, "epoch_millis", "server.Format"); err != nil {
			return nil, err
		}
	default:
		return nil, kerror.New("one of [time] or [epoch_millis] is required").
			WithCode(kerror.CodeInvalidInput).
			WithOperation("server.Format")
	}

	text, err := s.service.Format(ctx, service.FormatRequest{
		Pattern: pattern,
		Time:    t,
		Locale:  stringField(req, "locale"),
		Zone:    stringField(req, "zone"),
	})
	if err != nil {
		return nil, err
	}
	return structpb.NewStruct(map[string]interface{}{"text": text})
}

// Detect implements DateFormatServer.Detect.
//
// Request: text. Response: matched, cached and, on a match, index, pattern,
// seconds, nanos and time.
func (s *Server) Detect(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	text, err := requiredString(req, "text", "server.Detect")
	if err != nil {
		return nil, err
	}

	result, err := s.service.Detect(ctx, text)
	if err != nil {
		return nil, err
	}

	out := map[string]interface{}{
		"matched": result.Matched,
		"cached":  result.Cached,
	}
	if result.Matched {
		out["index"] = result.Index
		out["pattern"] = result.Pattern
		instantFields(result.Time, out)
	}
	return structpb.NewStruct(out)
}

// Patterns implements DateFormatServer.Patterns.
//
// Response: patterns, a list of {name, kind}, and detection_formats.
func (s *Server) Patterns(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	infos := s.service.Patterns()
	patterns := make([]interface{}, len(infos))
	for i, p := range infos {
		patterns[i] = map[string]interface{}{"name": p.Name, "kind": p.Kind}
	}
	formats := s.service.DetectionFormats()
	detection := make([]interface{}, len(formats))
	for i, f := range formats {
		detection[i] = f
	}

	return structpb.NewStruct(map[string]interface{}{
		"patterns":          patterns,
		"detection_formats": detection,
	})
}
