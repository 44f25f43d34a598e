package web

import (
	"testing"

	"github.com/thelolagemann/shellboy/internal/ppu/palette"
)

var plain = settings{framePatching: true, framePatchRatio: 50, frameSkipping: true}

func TestEncoder_Frame(t *testing.T) {
	e := newEncoder(palette.Get(palette.Greyscale))

	messages, err := e.encode(make([]byte, pixels), plain)
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}

	// every pixel changed, so the full frame is sent
	m := messages[0]
	if m[0] != Frame {
		t.Errorf("expected Frame, got %d", m[0])
	}
	if len(m) != 3+pixels*4 {
		t.Errorf("expected %d bytes, got %d", 3+pixels*4, len(m))
	}
	white := palette.Get(palette.Greyscale).GetColour(0)
	if m[3] != white[0] || m[6] != 0xFF {
		t.Errorf("expected first pixel to be %v, got %v", white, m[3:7])
	}
}

func TestEncoder_Patch(t *testing.T) {
	e := newEncoder(palette.Get(palette.Greyscale))
	frame := make([]byte, pixels)
	if _, err := e.encode(frame, plain); err != nil {
		t.Fatal(err)
	}

	frame[1] = 3
	messages, err := e.encode(frame, plain)
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 1 || messages[0][0] != FramePatch {
		t.Fatalf("expected a single FramePatch, got %v", messages)
	}

	patch := messages[0][3:]
	black := palette.Get(palette.Greyscale).GetColour(3)
	if patch[4] != black[0] || patch[7] != 0xFF {
		t.Errorf("expected changed pixel to be %v, got %v", black, patch[4:8])
	}
	if patch[0] != 0 || patch[3] != 0 {
		t.Errorf("expected unchanged pixel to be empty, got %v", patch[0:4])
	}
}

func TestEncoder_Skip(t *testing.T) {
	e := newEncoder(palette.Get(palette.Greyscale))
	frame := make([]byte, pixels)
	e.encode(frame, plain)

	for i := 0; i < 3; i++ {
		messages, err := e.encode(frame, plain)
		if err != nil {
			t.Fatal(err)
		}
		if messages != nil {
			t.Errorf("expected unchanged frame to be skipped, got %v", messages)
		}
	}

	frame[0] = 1
	messages, err := e.encode(frame, plain)
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0][0] != FrameSkip || messages[0][1] != 3 {
		t.Errorf("expected [FrameSkip 3], got %v", messages[0])
	}

	// without skipping, an unchanged frame is sent as an empty patch
	noSkip := plain
	noSkip.frameSkipping = false
	messages, err = e.encode(frame, noSkip)
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 1 || messages[0][0] != FramePatch {
		t.Errorf("expected a single FramePatch, got %d messages", len(messages))
	}
}

func TestEncoder_Cache(t *testing.T) {
	e := newEncoder(palette.Get(palette.Greyscale))
	a := make([]byte, pixels)
	b := make([]byte, pixels)
	b[0] = 3

	for _, f := range [][]byte{a, b, a} {
		if _, err := e.encode(f, plain); err != nil {
			t.Fatal(err)
		}
	}

	// the patch from a to b has already been sent
	messages, err := e.encode(b, plain)
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
	expected := []byte{PatchCache, 0, 0}
	if string(messages[0]) != string(expected) {
		t.Errorf("expected %v, got %v", expected, messages[0])
	}
}

func TestEncoder_Compression(t *testing.T) {
	e := newEncoder(palette.Get(palette.Greyscale))
	s := plain
	s.compression = true
	s.compressionLevel = 4

	messages, err := e.encode(make([]byte, pixels), s)
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 1 || messages[0][0] != Frame {
		t.Fatalf("expected a single Frame, got %d messages", len(messages))
	}
	if len(messages[0]) >= pixels*4 {
		t.Errorf("expected compressed frame, got %d bytes", len(messages[0]))
	}

	sync, err := e.sync()
	if err != nil {
		t.Fatal(err)
	}
	if len(sync) != 3 || sync[0][0] != FrameSync || sync[1][0] != PatchCacheSync || sync[2][0] != FrameCacheSync {
		t.Errorf("unexpected sync messages")
	}
}

func TestSettings(t *testing.T) {
	var s settings
	if err := s.set(Compression, 1); err != nil || !s.compression {
		t.Errorf("expected compression to be enabled, got %v", err)
	}
	if err := s.set(CompressionLevel, 12); err == nil {
		t.Errorf("expected error for compression level 12")
	}
	if err := s.set(FramePatchingRatio, 20); err != nil || s.framePatchRatio != 20 {
		t.Errorf("expected ratio 20, got %d", s.framePatchRatio)
	}
	if err := s.set(0xEE, 0); err == nil {
		t.Errorf("expected error for unknown setting")
	}

	s.frameSkipping = true
	if info := s.info(true); info != 0b10101 {
		t.Errorf("expected info 0b10101, got %08b", info)
	}
}
