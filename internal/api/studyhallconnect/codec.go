package studyhallconnect

import (
	"connectrpc.com/connect"
	"github.com/goccy/go-json"
)

// jsonCodec encodes plain Go structs with goccy/go-json. It replaces
// Connect's default "json" codec, which only accepts protobuf messages.
type jsonCodec struct{}

var _ connect.Codec = jsonCodec{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

// WithJSONCodec installs the struct JSON codec on a handler or client.
func WithJSONCodec() connect.Option {
	return connect.WithCodec(jsonCodec{})
}
