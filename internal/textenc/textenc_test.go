package textenc

import (
	"bytes"
	"testing"
)

func TestDecodeUTF8(t *testing.T) {
	in := []byte("plain text with → arrows and émoji ✓")
	text, enc := Decode(in)
	if enc != UTF8 {
		t.Fatalf("enc = %v, want UTF8", enc)
	}
	if text != string(in) {
		t.Errorf("text = %q, want passthrough", text)
	}
}

func TestDecodeLatin1Fallback(t *testing.T) {
	// 0xE9 is é in Latin-1 but invalid as a standalone UTF-8 byte.
	in := []byte{'c', 'a', 'f', 0xE9}
	text, enc := Decode(in)
	if enc != Latin1 {
		t.Fatalf("enc = %v, want Latin1", enc)
	}
	if text != "café" {
		t.Errorf("text = %q, want %q", text, "café")
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := [][]byte{
		[]byte("utf-8 text ✓"),
		{'c', 'a', 'f', 0xE9, ' ', 0xFC},
	}
	for _, in := range inputs {
		text, enc := Decode(in)
		out, err := Encode(text, enc)
		if err != nil {
			t.Fatalf("Encode(%q, %v): %v", text, enc, err)
		}
		if !bytes.Equal(out, in) {
			t.Errorf("round trip %v -> %q -> %v", in, text, out)
		}
	}
}

func TestEncodingString(t *testing.T) {
	if UTF8.String() != "utf-8" || Latin1.String() != "latin-1" {
		t.Errorf("unexpected encoding names: %s, %s", UTF8, Latin1)
	}
}
