package protocol_test

import (
	"fmt"

	"github.com/gear6io/protoreg/pkg/buffer"
	"github.com/gear6io/protoreg/pkg/protocol"
)

type Heartbeat struct {
	Seq uint32
}

func Example() {
	builder := protocol.NewBuilder()
	builder.MustRegister(42, protocol.NewRegistration(
		func(buf *buffer.ByteBuffer, m Heartbeat) error {
			buf.WriteUint32(m.Seq)
			return nil
		},
		func(buf *buffer.ByteBuffer) (Heartbeat, error) {
			seq, err := buf.ReadUint32()
			return Heartbeat{Seq: seq}, err
		},
	))
	registry := builder.Build()

	buf := buffer.New()
	if err := registry.Write(buf, Heartbeat{Seq: 7}); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("% x\n", buf.Bytes())

	msg, err := registry.Read(buf)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%+v remaining=%d\n", msg, buf.Len())

	// Output:
	// 00 2a 00 00 00 07
	// {Seq:7} remaining=0
}

func ExampleRegistry_Registrations() {
	builder := protocol.NewBuilder()
	builder.MustRegister(9, protocol.NewRegistration(
		func(*buffer.ByteBuffer, Heartbeat) error { return nil },
		func(*buffer.ByteBuffer) (Heartbeat, error) { return Heartbeat{}, nil },
	).Named("heartbeat"))

	for _, entry := range builder.Build().Registrations() {
		fmt.Printf("%d %s\n", entry.ID, entry.Name())
	}

	// Output:
	// 9 heartbeat
}
