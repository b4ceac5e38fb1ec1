package wire

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// Message is a typed wire message that converts to and from its dynamic
// protobuf form.
type Message interface {
	ProtoName() protoreflect.Name
	writeTo(f fields)
	readFrom(f fields)
}

// ToProto converts m to a dynamic message of its schema type.
func ToProto(m Message) *dynamicpb.Message {
	dm := New(m.ProtoName())
	m.writeTo(fields{dm})
	return dm
}

// FromProto fills m from pm, which must be of m's schema type.
func FromProto(pm proto.Message, m Message) error {
	r := pm.ProtoReflect()
	if got, want := r.Descriptor().FullName(), File.Package().Append(m.ProtoName()); got != want {
		return fmt.Errorf("wire: decode %s: got message %s", want, got)
	}
	m.readFrom(fields{r})
	return nil
}

// Marshal encodes m in the protobuf binary format.
func Marshal(m Message) ([]byte, error) {
	b, err := proto.Marshal(ToProto(m))
	if err != nil {
		return nil, fmt.Errorf("wire: marshal %s: %w", m.ProtoName(), err)
	}
	return b, nil
}

// Unmarshal decodes protobuf binary data into m.
func Unmarshal(b []byte, m Message) error {
	dm := New(m.ProtoName())
	if err := proto.Unmarshal(b, dm); err != nil {
		return fmt.Errorf("wire: unmarshal %s: %w", m.ProtoName(), err)
	}
	m.readFrom(fields{dm})
	return nil
}

// fields reads and writes a message by field name. Scalar setters skip zero
// values, which proto3 does not encode anyway; the opt* setters record
// presence and are only called for proto3 optional fields.
type fields struct {
	m protoreflect.Message
}

func (f fields) fd(name string) protoreflect.FieldDescriptor {
	fd := f.m.Descriptor().Fields().ByName(protoreflect.Name(name))
	if fd == nil {
		panic(fmt.Sprintf("wire: %s has no field %s", f.m.Descriptor().FullName(), name))
	}
	return fd
}

func (f fields) setString(name, v string) {
	if v != "" {
		f.m.Set(f.fd(name), protoreflect.ValueOfString(v))
	}
}

func (f fields) setBool(name string, v bool) {
	if v {
		f.m.Set(f.fd(name), protoreflect.ValueOfBool(v))
	}
}

func (f fields) setInt32(name string, v int32) {
	if v != 0 {
		f.m.Set(f.fd(name), protoreflect.ValueOfInt32(v))
	}
}

func (f fields) setInt64(name string, v int64) {
	if v != 0 {
		f.m.Set(f.fd(name), protoreflect.ValueOfInt64(v))
	}
}

func (f fields) setEnum(name string, v int32) {
	if v != 0 {
		f.m.Set(f.fd(name), protoreflect.ValueOfEnum(protoreflect.EnumNumber(v)))
	}
}

func (f fields) optString(name string, v *string) {
	if v != nil {
		f.m.Set(f.fd(name), protoreflect.ValueOfString(*v))
	}
}

func (f fields) optBool(name string, v *bool) {
	if v != nil {
		f.m.Set(f.fd(name), protoreflect.ValueOfBool(*v))
	}
}

func (f fields) optInt64(name string, v *int64) {
	if v != nil {
		f.m.Set(f.fd(name), protoreflect.ValueOfInt64(*v))
	}
}

func (f fields) optEnum(name string, v *int32) {
	if v != nil {
		f.m.Set(f.fd(name), protoreflect.ValueOfEnum(protoreflect.EnumNumber(*v)))
	}
}

func (f fields) setStrings(name string, vs []string) {
	if len(vs) == 0 {
		return
	}
	l := f.m.Mutable(f.fd(name)).List()
	for _, v := range vs {
		l.Append(protoreflect.ValueOfString(v))
	}
}

// child returns the singular message field name, creating it (and so
// marking it present).
func (f fields) child(name string) fields {
	return fields{f.m.Mutable(f.fd(name)).Message()}
}

// appendChild appends a new element to a repeated message field.
func (f fields) appendChild(name string) fields {
	l := f.m.Mutable(f.fd(name)).List()
	v := l.NewElement()
	l.Append(v)
	return fields{v.Message()}
}

// mapChild returns the message stored under key in a map field, creating it.
func (f fields) mapChild(name string, key protoreflect.MapKey) fields {
	return fields{f.m.Mutable(f.fd(name)).Map().Mutable(key).Message()}
}

func (f fields) str(name string) string   { return f.m.Get(f.fd(name)).String() }
func (f fields) boolean(name string) bool { return f.m.Get(f.fd(name)).Bool() }
func (f fields) int32(name string) int32  { return int32(f.m.Get(f.fd(name)).Int()) }
func (f fields) int64(name string) int64  { return f.m.Get(f.fd(name)).Int() }
func (f fields) enum(name string) int32   { return int32(f.m.Get(f.fd(name)).Enum()) }

func (f fields) has(name string) bool { return f.m.Has(f.fd(name)) }

func (f fields) getOptString(name string) *string {
	if !f.has(name) {
		return nil
	}
	v := f.str(name)
	return &v
}

func (f fields) getOptBool(name string) *bool {
	if !f.has(name) {
		return nil
	}
	v := f.boolean(name)
	return &v
}

func (f fields) getOptInt64(name string) *int64 {
	if !f.has(name) {
		return nil
	}
	v := f.int64(name)
	return &v
}

func (f fields) getOptEnum(name string) *int32 {
	if !f.has(name) {
		return nil
	}
	v := f.enum(name)
	return &v
}

func (f fields) strings(name string) []string {
	l := f.m.Get(f.fd(name)).List()
	out := make([]string, l.Len())
	for i := range out {
		out[i] = l.Get(i).String()
	}
	return out
}

// getChild returns the singular message field name, or false when unset.
func (f fields) getChild(name string) (fields, bool) {
	if !f.has(name) {
		return fields{}, false
	}
	return fields{f.m.Get(f.fd(name)).Message()}, true
}

func (f fields) children(name string) []fields {
	l := f.m.Get(f.fd(name)).List()
	out := make([]fields, l.Len())
	for i := range out {
		out[i] = fields{l.Get(i).Message()}
	}
	return out
}

// rangeMap calls fn for every entry of a message-valued map field.
func (f fields) rangeMap(name string, fn func(key protoreflect.MapKey, v fields)) {
	f.m.Get(f.fd(name)).Map().Range(func(k protoreflect.MapKey, v protoreflect.Value) bool {
		fn(k, fields{v.Message()})
		return true
	})
}

func stringKey(s string) protoreflect.MapKey { return protoreflect.ValueOfString(s).MapKey() }
func int32Key(n int32) protoreflect.MapKey   { return protoreflect.ValueOfInt32(n).MapKey() }
