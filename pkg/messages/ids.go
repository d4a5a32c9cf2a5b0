// Package messages is the built-in message set: connection liveness,
// session setup, request/response and the generic status Message.
//
// Each message is a value type with a matching Registration. Register binds
// the whole set to its default identifiers; a manifest can bind the same
// registrations to other identifiers through Catalog.
package messages

import (
	"github.com/gear6io/protoreg/pkg/protocol"
	"github.com/gear6io/protoreg/pkg/protocol/manifest"
)

// Default protocol identifiers
const (
	IDPing        protocol.ID = 1
	IDPong        protocol.ID = 2
	IDSessionOpen protocol.ID = 10
	IDRequest     protocol.ID = 11
	IDResponse    protocol.ID = 12
	IDMessage     protocol.ID = 100
)

type catalogEntry struct {
	id  protocol.ID
	reg protocol.Registration
}

func defaults() []catalogEntry {
	return []catalogEntry{
		{IDPing, PingRegistration},
		{IDPong, PongRegistration},
		{IDSessionOpen, SessionOpenRegistration},
		{IDRequest, RequestRegistration},
		{IDResponse, ResponseRegistration},
		{IDMessage, MessageRegistration},
	}
}

// Catalog returns every built-in registration keyed by name
func Catalog() map[string]protocol.Registration {
	catalog := make(map[string]protocol.Registration)
	for _, e := range defaults() {
		catalog[e.reg.Name] = e.reg
	}
	return catalog
}

// DefaultManifest describes the default identifier assignment
func DefaultManifest() *manifest.Manifest {
	m := &manifest.Manifest{}
	for _, e := range defaults() {
		m.Protocols = append(m.Protocols, manifest.Entry{ID: e.id, Name: e.reg.Name})
	}
	return m
}

// Register binds the built-in set to its default identifiers
func Register(b *protocol.Builder) error {
	for _, e := range defaults() {
		if err := b.Register(e.id, e.reg); err != nil {
			return err
		}
	}
	return nil
}
