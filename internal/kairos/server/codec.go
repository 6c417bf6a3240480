package server

import (
	"encoding/json"
	"math"
	"strconv"
	"time"

	kerror "github.com/msto63/kairos/foundation/core/error"
	"github.com/msto63/kairos/foundation/dateformat"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func stringField(s *structpb.Struct, name string) string {
	return s.GetFields()[name].GetStringValue()
}

func requiredString(s *structpb.Struct, name, op string) (string, error) {
	v, ok := s.GetFields()[name]
	if !ok {
		return "", kerror.Newf("field [%s] is required", name).
			WithCode(kerror.CodeInvalidInput).
			WithOperation(op)
	}
	if _, isString := v.GetKind().(*structpb.Value_StringValue); !isString {
		return "", kerror.Newf("field [%s] must be a string", name).
			WithCode(kerror.CodeInvalidInput).
			WithOperation(op)
	}
	return v.GetStringValue(), nil
}

func hasField(s *structpb.Struct, name string) bool {
	_, ok := s.GetFields()[name]
	return ok
}

// maxExactMillis bounds the integers a JSON number carries exactly
const maxExactMillis = 1 << 53

// epochMillisField reads an instant from field name. A string is parsed with
// the epoch_millis grammar, which keeps the full int64 range and
// sub-millisecond fractions. A number must be an integer of at most 2^53 in
// magnitude.
func epochMillisField(s *structpb.Struct, name, op string) (time.Time, error) {
	switch v := s.GetFields()[name].GetKind().(type) {
	case *structpb.Value_StringValue:
		t, err := dateformat.MustForPattern(dateformat.EpochMillis).ParseTime(v.StringValue)
		if err != nil {
			return time.Time{}, kerror.Wrap(err, "invalid field ["+name+"]").
				WithCode(kerror.CodeInvalidInput).
				WithOperation(op)
		}
		return t.UTC(), nil
	case *structpb.Value_NumberValue:
		n := v.NumberValue
		if n != math.Trunc(n) || math.Abs(n) > maxExactMillis {
			return time.Time{}, kerror.Newf("field [%s] must be an integer within +/-2^53, send other values as a string", name).
				WithCode(kerror.CodeInvalidInput).
				WithOperation(op).
				WithDetail("value", n)
		}
		return time.UnixMilli(int64(n)).UTC(), nil
	default:
		return time.Time{}, kerror.Newf("field [%s] must be a number or a string", name).
			WithCode(kerror.CodeInvalidInput).
			WithOperation(op)
	}
}

// timestampString renders t in the protobuf JSON form of a Timestamp. ok is
// false for instants outside the Timestamp range.
func timestampString(t time.Time) (string, bool) {
	ts := timestamppb.New(t)
	if ts.CheckValid() != nil {
		return "", false
	}
	raw, err := protojson.Marshal(ts)
	if err != nil {
		return "", false
	}
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return "", false
	}
	return s, true
}

// parseTimestamp reads the protobuf JSON form of a Timestamp
func parseTimestamp(s, op string) (time.Time, error) {
	ts := &timestamppb.Timestamp{}
	if err := protojson.Unmarshal([]byte(strconv.Quote(s)), ts); err != nil {
		return time.Time{}, kerror.Wrap(err, "invalid timestamp ["+s+"]").
			WithCode(kerror.CodeInvalidInput).
			WithOperation(op)
	}
	return ts.AsTime(), nil
}

// instantFields describes t as seconds, nanos and, when representable, an
// RFC 3339 time string
func instantFields(t time.Time, out map[string]interface{}) {
	out["seconds"] = t.Unix()
	out["nanos"] = t.Nanosecond()
	if s, ok := timestampString(t); ok {
		out["time"] = s
	}
}

// instantFrom reverses instantFields
func instantFrom(s *structpb.Struct) time.Time {
	fields := s.GetFields()
	return time.Unix(int64(fields["seconds"].GetNumberValue()), int64(fields["nanos"].GetNumberValue())).UTC()
}
