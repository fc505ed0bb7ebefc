// Package store keeps the band profile table in a flash region as a YAML
// document behind a small binary header.
//
// Layout at Offset:
//
//	0  magic   "USDR" (little-endian uint32)
//	4  length  payload bytes (little-endian uint32)
//	8  payload YAML
//
// An erased region reads as all 0xFF and is reported as ErrNoProfiles.
package store

import (
	"encoding/binary"
	"errors"
	"fmt"

	"usdr/hal"
	"usdr/hmi/radio"

	"gopkg.in/yaml.v3"
)

// Magic marks a written region.
const Magic = 0x52445355 // "USDR"

const headerSize = 8

// DefaultSize is the region size used when none is given.
const DefaultSize = 16 * 1024

var (
	// ErrNoProfiles means the region holds no profile table yet.
	ErrNoProfiles = errors.New("store: no profiles")
	// ErrCorrupt means the header or payload could not be decoded.
	ErrCorrupt = errors.New("store: corrupt profile table")
)

// Document is the YAML payload.
type Document struct {
	Version int             `yaml:"version"`
	Bands   []radio.Profile `yaml:"bands"`
}

// Flash is a radio.Store on a flash region.
type Flash struct {
	flash  hal.Flash
	offset uint32
	size   uint32
}

// New returns a store on the first DefaultSize bytes of f (less when the
// device is smaller).
func New(f hal.Flash) *Flash {
	return NewRegion(f, 0, DefaultSize)
}

// NewRegion returns a store on [off, off+size) of f. size is trimmed to the
// device.
func NewRegion(f hal.Flash, off, size uint32) *Flash {
	if f != nil {
		if dev := f.SizeBytes(); off >= dev {
			size = 0
		} else {
			size = min(size, dev-off)
		}
	}
	return &Flash{flash: f, offset: off, size: size}
}

// LoadProfiles reads and decodes the profile table.
func (s *Flash) LoadProfiles() ([]radio.Profile, error) {
	if s.flash == nil || s.size < headerSize {
		return nil, ErrNoProfiles
	}
	var hdr [headerSize]byte
	if _, err := s.flash.ReadAt(hdr[:], s.offset); err != nil {
		return nil, fmt.Errorf("store: read header: %w", err)
	}
	magic := binary.LittleEndian.Uint32(hdr[0:4])
	n := binary.LittleEndian.Uint32(hdr[4:8])
	switch {
	case magic == 0xFFFF_FFFF && n == 0xFFFF_FFFF:
		return nil, ErrNoProfiles
	case magic != Magic:
		return nil, fmt.Errorf("%w: bad magic %#08x", ErrCorrupt, magic)
	case n == 0 || n > s.size-headerSize:
		return nil, fmt.Errorf("%w: length %d", ErrCorrupt, n)
	}

	buf := make([]byte, n)
	if _, err := s.flash.ReadAt(buf, s.offset+headerSize); err != nil {
		return nil, fmt.Errorf("store: read payload: %w", err)
	}
	profiles, err := Decode(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return profiles, nil
}

// SaveProfiles erases the region and writes the table.
func (s *Flash) SaveProfiles(profiles []radio.Profile) error {
	if s.flash == nil {
		return fmt.Errorf("store: save: %w", hal.ErrNotImplemented)
	}
	payload, err := Encode(profiles)
	if err != nil {
		return err
	}
	img := Image(payload)
	if uint32(len(img)) > s.size {
		return fmt.Errorf("store: table of %d bytes exceeds region of %d", len(img), s.size)
	}

	if err := s.flash.Erase(s.offset, s.eraseSpan(uint32(len(img)))); err != nil {
		return fmt.Errorf("store: erase: %w", err)
	}
	if _, err := s.flash.WriteAt(img, s.offset); err != nil {
		return fmt.Errorf("store: write: %w", err)
	}
	return nil
}

// eraseSpan rounds n up to whole erase blocks.
func (s *Flash) eraseSpan(n uint32) uint32 {
	blk := s.flash.EraseBlockBytes()
	if blk == 0 {
		return n
	}
	return (n + blk - 1) / blk * blk
}

// Encode renders profiles as the YAML payload.
func Encode(profiles []radio.Profile) ([]byte, error) {
	b, err := yaml.Marshal(Document{Version: 1, Bands: profiles})
	if err != nil {
		return nil, fmt.Errorf("store: encode: %w", err)
	}
	return b, nil
}

// Decode parses a YAML payload. Every profile must validate.
func Decode(b []byte) ([]radio.Profile, error) {
	var doc Document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	if len(doc.Bands) == 0 {
		return nil, errors.New("empty band table")
	}
	for _, p := range doc.Bands {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	return doc.Bands, nil
}

// Image prefixes payload with the region header.
func Image(payload []byte) []byte {
	img := make([]byte, headerSize+len(payload))
	binary.LittleEndian.PutUint32(img[0:4], Magic)
	binary.LittleEndian.PutUint32(img[4:8], uint32(len(payload)))
	copy(img[headerSize:], payload)
	return img
}
