package bannerv1

import (
	"google.golang.org/grpc/encoding"
	protocodec "google.golang.org/grpc/encoding/proto"
	"google.golang.org/grpc/mem"
)

// wireMessage is implemented by the banner.v1 messages.
type wireMessage interface {
	MarshalWire() []byte
	UnmarshalWire(b []byte) error
}

// codec replaces the default "proto" codec. It encodes banner.v1 messages
// itself and hands every other message to the stock protobuf codec.
type codec struct {
	fallback encoding.CodecV2
}

func init() { //nolint:gochecknoinits
	encoding.RegisterCodecV2(codec{fallback: encoding.GetCodecV2(protocodec.Name)})
}

func (c codec) Marshal(v any) (mem.BufferSlice, error) {
	if m, ok := v.(wireMessage); ok {
		return mem.BufferSlice{mem.SliceBuffer(m.MarshalWire())}, nil
	}

	return c.fallback.Marshal(v) //nolint:wrapcheck
}

func (c codec) Unmarshal(data mem.BufferSlice, v any) error {
	if m, ok := v.(wireMessage); ok {
		return m.UnmarshalWire(data.Materialize())
	}

	return c.fallback.Unmarshal(data, v) //nolint:wrapcheck
}

func (codec) Name() string {
	return protocodec.Name
}
