package wire

import (
	"bytes"
	"testing"

	"pgregory.net/rapid"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	body := []byte{0x08}
	frame := EncodeData(body)

	var d Decoder
	d.Feed(frame)
	f, err := d.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if f.Kind != Data {
		t.Fatalf("Kind = %v, want Data", f.Kind)
	}
	if !bytes.Equal(f.Body, body) {
		t.Fatalf("Body = % x, want % x", f.Body, body)
	}
}

func TestDecodeGoldenVector(t *testing.T) {
	// \n 02 08 0A : length=2, body=[0x08], checksum = 2+8 = 0x0A
	raw := []byte{0x0A, '0', '2', '0', '8', '0', 'A'}

	var d Decoder
	d.Feed(raw)
	f, err := d.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if f.Kind != Data || !bytes.Equal(f.Body, []byte{0x08}) {
		t.Fatalf("got %+v", f)
	}
}

func TestAckNakInterleaving(t *testing.T) {
	raw := []byte{ACK, 0x0A, '0', '2', '0', '8', '0', 'A', NAK}

	var d Decoder
	d.Feed(raw)

	f1, err := d.Next()
	if err != nil || f1.Kind != Ack {
		t.Fatalf("first frame = %+v, %v, want Ack", f1, err)
	}
	f2, err := d.Next()
	if err != nil || f2.Kind != Data {
		t.Fatalf("second frame = %+v, %v, want Data", f2, err)
	}
	f3, err := d.Next()
	if err != nil || f3.Kind != Nak {
		t.Fatalf("third frame = %+v, %v, want Nak", f3, err)
	}
	if _, err := d.Next(); err != ErrNeedMore {
		t.Fatalf("trailing Next = %v, want ErrNeedMore", err)
	}
}

func TestPartialFeed(t *testing.T) {
	raw := []byte{0x0A, '0', '2', '0', '8', '0', 'A'}

	var d Decoder
	for i := 0; i < len(raw); i++ {
		d.Feed(raw[i : i+1])
		f, err := d.Next()
		if i < len(raw)-1 {
			if err != ErrNeedMore {
				t.Fatalf("at byte %d: err = %v, want ErrNeedMore", i, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("final byte: err = %v", err)
		}
		if !bytes.Equal(f.Body, []byte{0x08}) {
			t.Fatalf("Body = % x", f.Body)
		}
	}
}

func TestChecksumTamperRejected(t *testing.T) {
	frame := EncodeData([]byte{0x01, 0x02, 0x03})
	// flip the last hex digit of the checksum
	frame[len(frame)-1] ^= 0x01

	var d Decoder
	d.Feed(frame)
	_, err := d.Next()
	if err != ErrChecksum {
		t.Fatalf("err = %v, want ErrChecksum", err)
	}
}

func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		body := rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(rt, "body")
		frame := EncodeData(body)

		var d Decoder
		d.Feed(frame)
		f, err := d.Next()
		if err != nil {
			rt.Fatalf("Next: %v", err)
		}
		if f.Kind != Data || !bytes.Equal(f.Body, body) {
			rt.Fatalf("got %+v, want body % x", f, body)
		}
	})
}

func TestSplitFeedProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		body := rapid.SliceOfN(rapid.Byte(), 0, 32).Draw(rt, "body")
		frame := EncodeData(body)
		cut := rapid.IntRange(0, len(frame)).Draw(rt, "cut")

		var d Decoder
		d.Feed(frame[:cut])
		d.Feed(frame[cut:])
		f, err := d.Next()
		if err != nil {
			rt.Fatalf("Next after full feed: %v", err)
		}
		if f.Kind != Data || !bytes.Equal(f.Body, body) {
			rt.Fatalf("got %+v, want body % x", f, body)
		}
	})
}
