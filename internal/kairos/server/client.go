package server

import (
	"context"
	"time"

	"github.com/msto63/kairos/foundation/dateformat"
	"github.com/msto63/kairos/internal/kairos/service"
	coreGrpc "github.com/msto63/kairos/pkg/core/grpc"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls a remote kairos.v1.DateFormatService
type Client struct {
	conn *grpc.ClientConn
	own  bool
}

// ParseReply is the remote result of a parse
type ParseReply struct {
	Pattern string
	Kind    string
	Time    time.Time
	// Offset in seconds east of UTC, when the input carried one
	Offset    int
	HasOffset bool
}

// PatternsReply lists the built-in patterns and the detection formats of a
// remote server
type PatternsReply struct {
	Patterns         []service.PatternInfo
	DetectionFormats []string
}

// NewClient wraps an existing connection
func NewClient(conn *grpc.ClientConn) *Client {
	return &Client{conn: conn}
}

// Dial connects to the server at target
func Dial(target string, timeout time.Duration) (*Client, error) {
	conn, err := coreGrpc.DialWithTimeout(target, timeout)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, own: true}, nil
}

// Close closes a connection opened by Dial
func (c *Client) Close() error {
	if c.own {
		return c.conn.Close()
	}
	return nil
}

func (c *Client) invoke(ctx context.Context, method string, fields map[string]interface{}) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	out := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, method, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func withOverrides(fields map[string]interface{}, locale, zone string) map[string]interface{} {
	if locale != "" {
		fields["locale"] = locale
	}
	if zone != "" {
		fields["zone"] = zone
	}
	return fields
}

// Parse parses text remotely
func (c *Client) Parse(ctx context.Context, req service.ParseRequest) (*ParseReply, error) {
	out, err := c.invoke(ctx, ParseMethod, withOverrides(map[string]interface{}{
		"pattern": req.Pattern,
		"text":    req.Text,
	}, req.Locale, req.Zone))
	if err != nil {
		return nil, err
	}

	reply := &ParseReply{
		Pattern: stringField(out, "pattern"),
		Kind:    stringField(out, "kind"),
		Time:    instantFrom(out),
	}
	if hasField(out, "offset_seconds") {
		reply.Offset = int(out.GetFields()["offset_seconds"].GetNumberValue())
		reply.HasOffset = true
	}
	return reply, nil
}

// Format prints t remotely
func (c *Client) Format(ctx context.Context, req service.FormatRequest) (string, error) {
	fields := map[string]interface{}{"pattern": req.Pattern}
	if s, ok := timestampString(req.Time); ok {
		fields["time"] = s
	} else {
		fields["epoch_millis"] = dateformat.MustForPattern(dateformat.EpochMillis).Format(req.Time)
	}

	out, err := c.invoke(ctx, FormatMethod, withOverrides(fields, req.Locale, req.Zone))
	if err != nil {
		return "", err
	}
	return stringField(out, "text"), nil
}

// Detect runs dynamic date detection remotely
func (c *Client) Detect(ctx context.Context, text string) (*service.DetectResult, error) {
	out, err := c.invoke(ctx, DetectMethod, map[string]interface{}{"text": text})
	if err != nil {
		return nil, err
	}

	fields := out.GetFields()
	result := &service.DetectResult{
		Matched: fields["matched"].GetBoolValue(),
		Cached:  fields["cached"].GetBoolValue(),
		Index:   -1,
	}
	if result.Matched {
		result.Index = int(fields["index"].GetNumberValue())
		result.Pattern = fields["pattern"].GetStringValue()
		result.Time = instantFrom(out)
	}
	return result, nil
}

// Patterns lists the remote pattern catalog
func (c *Client) Patterns(ctx context.Context) (*PatternsReply, error) {
	out := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, PatternsMethod, &emptypb.Empty{}, out); err != nil {
		return nil, err
	}

	reply := &PatternsReply{}
	for _, v := range out.GetFields()["patterns"].GetListValue().GetValues() {
		p := v.GetStructValue()
		reply.Patterns = append(reply.Patterns, service.PatternInfo{
			Name: stringField(p, "name"),
			Kind: stringField(p, "kind"),
		})
	}
	for _, v := range out.GetFields()["detection_formats"].GetListValue().GetValues() {
		reply.DetectionFormats = append(reply.DetectionFormats, v.GetStringValue())
	}
	return reply, nil
}
