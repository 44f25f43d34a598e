package web

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/google/brotli/go/cbrotli"
	"github.com/thelolagemann/shellboy/internal/ppu"
	"github.com/thelolagemann/shellboy/internal/ppu/palette"
)

const (
	pixels    = ppu.ScreenWidth * ppu.ScreenHeight
	cacheSize = 64
)

// settings control how frames are encoded.
type settings struct {
	compression      bool
	compressionLevel int
	framePatching    bool
	framePatchRatio  int // percentage of changed pixels below which a patch is sent
	frameSkipping    bool
}

// info returns a byte of information containing the various
// settings. The byte is constructed as follows:
//
//	Bit 0: Paused
//	Bit 2: Compression enabled
//	Bit 3: Frame patching enabled
//	Bit 4: Frame skipping enabled
func (s settings) info(paused bool) byte {
	var info uint8
	if paused {
		info |= 1 << 0
	}
	if s.compression {
		info |= 1 << 2
	}
	if s.framePatching {
		info |= 1 << 3
	}
	if s.frameSkipping {
		info |= 1 << 4
	}
	return info
}

// encoder turns frames of shades into messages for the clients.
// Frames are sent as RGBA, either in full or as a patch holding
// only the pixels that changed since the last frame.
type encoder struct {
	palette palette.Palette

	current []byte // RGBA
	patch   []byte
	skipped int

	patchCache, frameCache *cache
}

func newEncoder(p palette.Palette) *encoder {
	return &encoder{
		palette:    p,
		current:    make([]byte, pixels*4),
		patch:      make([]byte, pixels*4),
		patchCache: newCache(cacheSize),
		frameCache: newCache(cacheSize),
	}
}

// encode returns the messages to send for frame.
func (e *encoder) encode(frame []byte, s settings) ([][]byte, error) {
	clear(e.patch)
	dirtied := 0
	for i := 0; i < pixels && i < len(frame); i++ {
		c := e.palette.GetColour(frame[i])
		px := e.current[i*4 : i*4+4]
		if px[0] != c[0] || px[1] != c[1] || px[2] != c[2] || px[3] != 0xFF {
			patch := e.patch[i*4 : i*4+4]
			patch[0], patch[1], patch[2], patch[3] = c[0], c[1], c[2], 0xFF
			px[0], px[1], px[2], px[3] = c[0], c[1], c[2], 0xFF
			dirtied++
		}
	}

	// unchanged frames are skipped
	if dirtied == 0 && s.frameSkipping {
		e.skipped++
		return nil, nil
	}

	var messages [][]byte
	if e.skipped > 0 {
		buf := binary.LittleEndian.AppendUint32(nil, uint32(e.skipped))
		messages = append(messages, append([]byte{FrameSkip}, bytes.TrimRight(buf, "\x00")...))
		e.skipped = 0
	}

	buffer, typ, c, cached := e.current, Frame, e.frameCache, FrameCache
	if s.framePatching && dirtied*100 < s.framePatchRatio*pixels {
		buffer, typ, c, cached = e.patch, FramePatch, e.patchCache, PatchCache
	}

	output := buffer
	if s.compression {
		var err error
		output, err = cbrotli.Encode(buffer, cbrotli.WriterOptions{Quality: s.compressionLevel})
		if err != nil {
			return nil, fmt.Errorf("web: compressing frame: %w", err)
		}
	} else {
		output = append([]byte(nil), buffer...)
	}

	// does this frame exist in the cache?
	hash := xxhash.Sum64(output)
	if idx := c.index(hash); idx != -1 {
		return append(messages, binary.LittleEndian.AppendUint16([]byte{cached}, uint16(idx))), nil
	}
	idx := c.add(hash, output)
	msg := binary.LittleEndian.AppendUint16([]byte{typ}, uint16(idx))
	return append(messages, append(msg, output...)), nil
}

// sync returns the messages that bring a newly connected client up
// to date: the current frame, and the contents of both caches.
func (e *encoder) sync() ([][]byte, error) {
	frameData, err := cbrotli.Encode(e.current, cbrotli.WriterOptions{Quality: 9})
	if err != nil {
		return nil, fmt.Errorf("web: compressing frame: %w", err)
	}

	return [][]byte{
		append([]byte{FrameSync}, frameData...),
		append([]byte{PatchCacheSync}, e.patchCache.marshal()...),
		append([]byte{FrameCacheSync}, e.frameCache.marshal()...),
	}, nil
}

// marshal encodes the cache as a sequence of
// [length (2), index (2), data] entries.
func (c *cache) marshal() []byte {
	var data []byte
	for i, e := range c.cache {
		if len(e.data) == 0 {
			continue
		}
		data = binary.LittleEndian.AppendUint16(data, uint16(len(e.data)))
		data = binary.LittleEndian.AppendUint16(data, uint16(i))
		data = append(data, e.data...)
	}
	return data
}
