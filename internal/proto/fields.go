package proto

import (
	"math"

	"google.golang.org/protobuf/types/known/structpb"
)

// Struct field accessors. Struct carries every number as a float64, which
// represents integer IDs exactly up to 2^53.

func String(s *structpb.Struct, key string) string {
	if v, ok := s.GetFields()[key]; ok {
		return v.GetStringValue()
	}
	return ""
}

// Int64 reads an integral number. Missing keys and fractional or
// out-of-range values read as zero.
func Int64(s *structpb.Struct, key string) int64 {
	v, ok := s.GetFields()[key]
	if !ok {
		return 0
	}
	f, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || f.NumberValue != math.Trunc(f.NumberValue) || math.Abs(f.NumberValue) > 1<<53 {
		return 0
	}
	return int64(f.NumberValue)
}

func Int(s *structpb.Struct, key string) int {
	return int(Int64(s, key))
}

// Has reports whether key is present, even with a zero value.
func Has(s *structpb.Struct, key string) bool {
	_, ok := s.GetFields()[key]
	return ok
}

// List returns the structs held in the list under key. Non-struct
// elements are skipped.
func List(s *structpb.Struct, key string) []*structpb.Struct {
	v, ok := s.GetFields()[key]
	if !ok {
		return nil
	}
	values := v.GetListValue().GetValues()
	out := make([]*structpb.Struct, 0, len(values))
	for _, item := range values {
		if st := item.GetStructValue(); st != nil {
			out = append(out, st)
		}
	}
	return out
}

// NewStruct builds a Struct from Go values. Supported values are those of
// structpb.NewValue plus []map[string]any for lists of records.
func NewStruct(fields map[string]any) (*structpb.Struct, error) {
	for k, v := range fields {
		if rows, ok := v.([]map[string]any); ok {
			items := make([]any, len(rows))
			for i, r := range rows {
				items[i] = r
			}
			fields[k] = items
		}
	}
	return structpb.NewStruct(fields)
}
