package cli

import (
	"encoding/hex"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/gear6io/protoreg/pkg/buffer"
	"github.com/gear6io/protoreg/pkg/errors"
	"github.com/gear6io/protoreg/pkg/packet"
	"github.com/gear6io/protoreg/pkg/protocol"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func newEncodeCommand(a *app) *cobra.Command {
	var doc, attach, attachDoc string
	var asPacket bool

	cmd := &cobra.Command{
		Use:   "encode <name>",
		Short: "Encode a built-in message and print it as hex",
		Long: `Encode a built-in message from JSON fields and print the wire bytes as hex.

With --packet the message is written as a packet followed by the
attachment flag and, with --attach, an attachment message.

Examples:
  protoreg encode Ping
  protoreg encode Message --json '{"code":1,"text":"ok"}'
  protoreg encode Request --json '{"route":"/jobs","body":"run"}' --packet --attach Message --attach-json '{"code":2}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := buildMessage(args[0], doc)
			if err != nil {
				return err
			}

			buf := buffer.New(a.cfg.Protocol.BufferOptions()...)
			if asPacket || attach != "" {
				var attachment any
				if attach != "" {
					if attachment, err = buildMessage(attach, attachDoc); err != nil {
						return err
					}
				}
				if err := packet.NewService(a.registry, packet.WithLogger(a.logger)).Write(buf, msg, attachment); err != nil {
					return err
				}
			} else if err := a.registry.Write(buf, msg); err != nil {
				return err
			}

			a.logger.Debug().Str("message", args[0]).Int("bytes", buf.Len()).Msg("Encoded message")
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(buf.Bytes()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&doc, "json", "j", "", "message fields as a JSON object")
	cmd.Flags().BoolVarP(&asPacket, "packet", "p", false, "write packet framing with an attachment flag")
	cmd.Flags().StringVar(&attach, "attach", "", "attachment message name, implies --packet")
	cmd.Flags().StringVar(&attachDoc, "attach-json", "", "attachment fields as a JSON object")
	return cmd
}

func newDecodeCommand(a *app) *cobra.Command {
	var asPacket bool

	cmd := &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode hex wire bytes and print the message as JSON",
		Long: `Decode one message, or one packet with --packet, from hex and print it as JSON.
Whitespace in the hex string is ignored.

Examples:
  protoreg decode 0001
  protoreg decode "0064 00000001 00000002 6f6b"
  protoreg decode 000100 --packet`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := hex.DecodeString(strings.Join(strings.Fields(args[0]), ""))
			if err != nil {
				return errors.New(ErrInvalidHex, "invalid hex input", err)
			}

			buf := buffer.NewFromBytes(raw, a.cfg.Protocol.BufferOptions()...)
			var out any
			if asPacket {
				decoded, err := packet.NewService(a.registry, packet.WithLogger(a.logger)).Read(buf)
				if err != nil {
					return err
				}
				view := map[string]any{"packet": a.describe(decoded.Packet)}
				if decoded.HasAttachment() {
					view["attachment"] = a.describe(decoded.Attachment)
				}
				out = view
			} else {
				msg, err := a.registry.Read(buf)
				if err != nil {
					return err
				}
				out = a.describe(msg)
			}

			if buf.Len() > 0 {
				return errors.Newf(protocol.ErrTrailingData, "%d unread bytes after message", buf.Len())
			}

			encoded, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&asPacket, "packet", "p", false, "read packet framing with an attachment flag")
	return cmd
}

type messageView struct {
	ID      protocol.ID `json:"id"`
	Name    string      `json:"name"`
	Message any         `json:"message"`
}

func (a *app) describe(msg any) messageView {
	view := messageView{Message: msg}
	if id, err := a.registry.IdentifierOf(msg); err == nil {
		view.ID = id
		if reg, err := a.registry.RegistrationFor(id); err == nil {
			view.Name = reg.Name
		}
	}
	return view
}
