// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package export

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cosnicolaou/xnbtool/internal/asset"
)

// WriteWAV emits a canonical RIFF/WAVE container (fmt + data chunks)
// wrapping s's PCM payload. No WAV-writing library appears anywhere in
// the retrieved example pack, so this is hand-rolled against the
// well-known RIFF layout via encoding/binary, matching the precision
// this module otherwise reserves for binary formats with no ecosystem
// library to reach for.
func WriteWAV(w io.Writer, s asset.SoundEffect) error {
	if s.Format != asset.SoundFormatPCM {
		return fmt.Errorf("export: WAV export only supports PCM sound effects, got %s", s.Format)
	}

	dataLen := uint32(len(s.Data))
	fmtChunkLen := uint32(16)
	riffLen := 4 /* "WAVE" */ + (8 + fmtChunkLen) + (8 + dataLen)

	var hdr [44]byte
	copy(hdr[0:4], "RIFF")
	binary.LittleEndian.PutUint32(hdr[4:8], riffLen)
	copy(hdr[8:12], "WAVE")

	copy(hdr[12:16], "fmt ")
	binary.LittleEndian.PutUint32(hdr[16:20], fmtChunkLen)
	binary.LittleEndian.PutUint16(hdr[20:22], uint16(s.Format))
	binary.LittleEndian.PutUint16(hdr[22:24], s.ChannelCount)
	binary.LittleEndian.PutUint32(hdr[24:28], s.SampleRate)
	binary.LittleEndian.PutUint32(hdr[28:32], s.AverageByteRate)
	binary.LittleEndian.PutUint16(hdr[32:34], s.BlockAlign)
	binary.LittleEndian.PutUint16(hdr[34:36], s.BitsPerSample)

	copy(hdr[36:40], "data")
	binary.LittleEndian.PutUint32(hdr[40:44], dataLen)

	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("export: writing WAV header: %w", err)
	}
	if _, err := w.Write(s.Data); err != nil {
		return fmt.Errorf("export: writing WAV data: %w", err)
	}
	return nil
}
