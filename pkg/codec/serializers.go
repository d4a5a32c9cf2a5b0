package codec

import (
	jsoniter "github.com/json-iterator/go"
	ugorji "github.com/ugorji/go/codec"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeebo/bencode"
)

// Built-in serializers
var (
	JSONSerializer    Serializer = jsonSerializer{api: jsoniter.ConfigCompatibleWithStandardLibrary}
	CBORSerializer    Serializer = newCBORSerializer()
	MsgpackSerializer Serializer = msgpackSerializer{}
	BencodeSerializer Serializer = bencodeSerializer{}
)

type jsonSerializer struct {
	api jsoniter.API
}

func (jsonSerializer) Name() string { return "json" }

func (s jsonSerializer) Marshal(v any) ([]byte, error) {
	return s.api.Marshal(v)
}

func (s jsonSerializer) Unmarshal(data []byte, v any) error {
	return s.api.Unmarshal(data, v)
}

type cborSerializer struct {
	handle *ugorji.CborHandle
}

func newCBORSerializer() cborSerializer {
	h := &ugorji.CborHandle{}
	h.StructToArray = true
	return cborSerializer{handle: h}
}

func (cborSerializer) Name() string { return "cbor" }

func (s cborSerializer) Marshal(v any) ([]byte, error) {
	var out []byte
	if err := ugorji.NewEncoderBytes(&out, s.handle).Encode(v); err != nil {
		return nil, err
	}
	return out, nil
}

func (s cborSerializer) Unmarshal(data []byte, v any) error {
	return ugorji.NewDecoderBytes(data, s.handle).Decode(v)
}

type msgpackSerializer struct{}

func (msgpackSerializer) Name() string { return "msgpack" }

func (msgpackSerializer) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (msgpackSerializer) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

type bencodeSerializer struct{}

func (bencodeSerializer) Name() string { return "bencode" }

func (bencodeSerializer) Marshal(v any) ([]byte, error) {
	return bencode.EncodeBytes(v)
}

func (bencodeSerializer) Unmarshal(data []byte, v any) error {
	return bencode.DecodeBytes(data, v)
}
