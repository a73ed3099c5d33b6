// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package asset

import (
	"fmt"

	"github.com/cosnicolaou/xnbtool/internal/typereader"
	"github.com/cosnicolaou/xnbtool/internal/xnbbin"
)

// SoundFormat identifies the WAVEFORMATEX format tag a SoundEffect's data
// was encoded with.
type SoundFormat uint16

const (
	SoundFormatPCM   SoundFormat = 1
	SoundFormatADPCM SoundFormat = 2
)

func (f SoundFormat) String() string {
	switch f {
	case SoundFormatPCM:
		return "PCM"
	case SoundFormatADPCM:
		return "ADPCM"
	default:
		return fmt.Sprintf("SoundFormat(%d)", uint16(f))
	}
}

// SoundEffect is a decoded SoundEffectReader payload: a WAVEFORMATEX-
// shaped header plus raw PCM data and XACT loop metadata.
type SoundEffect struct {
	Format          SoundFormat
	ChannelCount    uint16
	SampleRate      uint32
	AverageByteRate uint32
	BlockAlign      uint16
	BitsPerSample   uint16
	Data            []byte
	LoopStart       uint32
	LoopLength      uint32
	DurationMS      int32 // -1 if not present, per original_source
}

const soundEffectReaderName = "Microsoft.Xna.Framework.Content.SoundEffectReader"

func init() {
	typereader.Register(soundEffectReaderName, func(r *xnbbin.Reader) (interface{}, error) {
		return DecodeSoundEffect(r)
	})
}

// DecodeSoundEffect reads a SoundEffect payload: a length-prefixed
// WAVEFORMATEX header blob, length-prefixed PCM data, then loop start,
// loop length, and duration in milliseconds (all int32/uint32).
func DecodeSoundEffect(r *xnbbin.Reader) (SoundEffect, error) {
	formatSize, err := r.Uint32()
	if err != nil {
		return SoundEffect{}, fmt.Errorf("asset: soundeffect format header size: %w", err)
	}
	if formatSize != 18 {
		return SoundEffect{}, fmt.Errorf("asset: soundeffect unhandled format header size %d, want 18", formatSize)
	}

	formatTag, err := r.Uint16()
	if err != nil {
		return SoundEffect{}, fmt.Errorf("asset: soundeffect format tag: %w", err)
	}
	format := SoundFormat(formatTag)
	if format != SoundFormatPCM {
		return SoundEffect{}, fmt.Errorf("asset: soundeffect unhandled format %s", format)
	}

	s := SoundEffect{Format: format}
	if s.ChannelCount, err = r.Uint16(); err != nil {
		return SoundEffect{}, fmt.Errorf("asset: soundeffect channel count: %w", err)
	}
	if s.SampleRate, err = r.Uint32(); err != nil {
		return SoundEffect{}, fmt.Errorf("asset: soundeffect sample rate: %w", err)
	}
	if s.AverageByteRate, err = r.Uint32(); err != nil {
		return SoundEffect{}, fmt.Errorf("asset: soundeffect average byte rate: %w", err)
	}
	if s.BlockAlign, err = r.Uint16(); err != nil {
		return SoundEffect{}, fmt.Errorf("asset: soundeffect block align: %w", err)
	}
	if s.BitsPerSample, err = r.Uint16(); err != nil {
		return SoundEffect{}, fmt.Errorf("asset: soundeffect bits per sample: %w", err)
	}
	if s.BitsPerSample%8 != 0 {
		return SoundEffect{}, fmt.Errorf("asset: soundeffect bits per sample %d not a multiple of 8", s.BitsPerSample)
	}
	bytesPerSample := s.BitsPerSample / 8

	if s.AverageByteRate != s.SampleRate*uint32(s.ChannelCount)*uint32(bytesPerSample) {
		return SoundEffect{}, fmt.Errorf("asset: soundeffect average_byte_rate does not match sample_rate * channel_count * bytes_per_sample")
	}
	if s.BlockAlign != s.ChannelCount*bytesPerSample {
		return SoundEffect{}, fmt.Errorf("asset: soundeffect block_align does not match channel_count * bytes_per_sample")
	}

	extraInfoSize, err := r.Uint16()
	if err != nil {
		return SoundEffect{}, fmt.Errorf("asset: soundeffect extra info size: %w", err)
	}
	if extraInfoSize != 0 {
		return SoundEffect{}, fmt.Errorf("asset: soundeffect unexpected extra info of %d bytes", extraInfoSize)
	}

	dataSize, err := r.Uint32()
	if err != nil {
		return SoundEffect{}, fmt.Errorf("asset: soundeffect data size: %w", err)
	}
	if dataSize == 0 {
		return SoundEffect{}, fmt.Errorf("asset: soundeffect has no data")
	}
	if s.Data, err = r.Bytes(dataSize); err != nil {
		return SoundEffect{}, fmt.Errorf("asset: soundeffect data: %w", err)
	}

	if s.LoopStart, err = r.Uint32(); err != nil {
		return SoundEffect{}, fmt.Errorf("asset: soundeffect loop start: %w", err)
	}
	if s.LoopLength, err = r.Uint32(); err != nil {
		return SoundEffect{}, fmt.Errorf("asset: soundeffect loop length: %w", err)
	}
	if s.DurationMS, err = r.Int32(); err != nil {
		return SoundEffect{}, fmt.Errorf("asset: soundeffect duration: %w", err)
	}
	return s, nil
}
