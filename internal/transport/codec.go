package transport

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// codecName is registered with grpc's global encoding registry so both
// ends of the connection pick it over the default proto codec, letting
// this module skip a protoc code-generation step for its one RPC
// method. A node daemon's own rpc subpackages are typically protoc-
// generated; this module's wire surface is small enough that a
// hand-registered codec is the better trade.
const codecName = "json"

// jsonCodec implements encoding.Codec (not encoding.CodecV2; grpc's
// default registry still accepts the v1 shape) over encoding/json.
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return codecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
