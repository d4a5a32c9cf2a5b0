// Package packet writes and reads a protocol message together with an
// optional attachment message. The layout is
//
//	packet | has_attachment (1 byte flag) | attachment (when present)
//
// where packet and attachment are each a 2-byte identifier and payload as
// written by protocol.Registry. Read treats a missing flag as no attachment.
package packet

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/gear6io/protoreg/pkg/buffer"
	"github.com/gear6io/protoreg/pkg/errors"
	"github.com/gear6io/protoreg/pkg/protocol"
)

// Decoded is a packet read back from a buffer
type Decoded struct {
	Packet     any
	Attachment any
}

// HasAttachment reports whether an attachment was present
func (d Decoded) HasAttachment() bool {
	return d.Attachment != nil
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the service logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics registers packet counters and size histograms on reg
func WithMetrics(reg prometheus.Registerer) Option {
	return func(s *Service) {
		s.metrics = newMetrics(reg)
	}
}

// Service encodes packets through a registry. It holds no per-call state
// and is safe for concurrent use with distinct buffers.
type Service struct {
	registry *protocol.Registry
	logger   zerolog.Logger
	metrics  *metrics
}

// NewService creates a packet service over registry
func NewService(registry *protocol.Registry, opts ...Option) *Service {
	s := &Service{
		registry: registry,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns the underlying registry
func (s *Service) Registry() *protocol.Registry {
	return s.registry
}

// Write appends packet and, when non-nil, attachment. On failure the buffer
// is rolled back to its previous writer index.
func (s *Service) Write(buf *buffer.ByteBuffer, packet any, attachment any) error {
	start := buf.WriterIndex()

	if err := s.write(buf, packet, attachment); err != nil {
		buf.Truncate(start)
		s.metrics.fail(directionWrite, errors.GetCode(err))
		s.logger.Debug().Err(err).Str("packet", fmt.Sprintf("%T", packet)).Msg("Failed to write packet")
		return err
	}

	names := []string{s.name(packet)}
	if attachment != nil {
		names = append(names, s.name(attachment))
	}
	s.metrics.observe(directionWrite, buf.WriterIndex()-start, names...)
	return nil
}

func (s *Service) write(buf *buffer.ByteBuffer, packet any, attachment any) error {
	if err := s.registry.Write(buf, packet); err != nil {
		return err
	}
	if attachment == nil {
		buf.WriteBool(false)
		return nil
	}
	buf.WriteBool(true)
	return s.registry.Write(buf, attachment)
}

// Read decodes a packet and its attachment
func (s *Service) Read(buf *buffer.ByteBuffer) (Decoded, error) {
	start := buf.ReaderIndex()

	decoded, err := s.read(buf)
	if err != nil {
		s.metrics.fail(directionRead, errors.GetCode(err))
		s.logger.Debug().Err(err).Int("offset", start).Msg("Failed to read packet")
		return Decoded{}, err
	}

	names := []string{s.name(decoded.Packet)}
	if decoded.HasAttachment() {
		names = append(names, s.name(decoded.Attachment))
	}
	s.metrics.observe(directionRead, buf.ReaderIndex()-start, names...)
	return decoded, nil
}

func (s *Service) read(buf *buffer.ByteBuffer) (Decoded, error) {
	packet, err := s.registry.Read(buf)
	if err != nil {
		return Decoded{}, err
	}

	// A packet without a trailing flag carries no attachment. Any non-zero
	// flag byte marks one.
	if buf.Len() == 0 {
		return Decoded{Packet: packet}, nil
	}
	flag, err := buf.ReadByte()
	if err != nil {
		return Decoded{}, err
	}
	if flag == 0 {
		return Decoded{Packet: packet}, nil
	}

	attachment, err := s.registry.Read(buf)
	if err != nil {
		return Decoded{}, err
	}
	return Decoded{Packet: packet, Attachment: attachment}, nil
}

func (s *Service) name(msg any) string {
	id, err := s.registry.IdentifierOf(msg)
	if err != nil {
		return fmt.Sprintf("%T", msg)
	}
	reg, err := s.registry.RegistrationFor(id)
	if err != nil {
		return fmt.Sprintf("%T", msg)
	}
	return reg.Name
}
