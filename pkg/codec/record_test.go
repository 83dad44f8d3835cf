package codec

import (
	"bytes"
	"testing"
)

func TestRecord_WriteReadRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		cred Credential
	}{
		{
			name: "simple credential",
			cred: Credential{SSID: "net-A", Passphrase: "pw1", BSSID: [6]byte{1, 2, 3, 4, 5, 6}},
		},
		{
			name: "empty passphrase",
			cred: Credential{SSID: "open-net", Passphrase: "", BSSID: [6]byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x01}},
		},
		{
			name: "single byte ssid",
			cred: Credential{SSID: "x", Passphrase: "p", BSSID: [6]byte{}},
		},
		{
			name: "long fields",
			cred: Credential{
				SSID:       string(bytes.Repeat([]byte("s"), 32)),
				Passphrase: string(bytes.Repeat([]byte("p"), 64)),
				BSSID:      [6]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
			},
		},
		{
			name: "unicode ssid",
			cred: Credential{SSID: "café-wlan", Passphrase: "päss", BSSID: [6]byte{9, 8, 7, 6, 5, 4}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := make(Bytes, tc.cred.EncodedSize())
			WriteRecord(NewCursor(buf, 0, len(buf)), &tc.cred)

			got, start, ok := ReadRecord(NewCursor(buf, 0, len(buf)))
			if !ok {
				t.Fatal("ReadRecord failed on freshly written record")
			}
			if start != 0 {
				t.Errorf("record start: got %d, want 0", start)
			}
			if got != tc.cred {
				t.Errorf("round trip mismatch: got %+v, want %+v", got, tc.cred)
			}
		})
	}
}

func TestRecord_EncodedSize(t *testing.T) {
	cred := Credential{SSID: "net-A", Passphrase: "pw1", BSSID: [6]byte{1, 2, 3, 4, 5, 6}}
	// 5 + 1 + 3 + 1 + 6
	if got := cred.EncodedSize(); got != 16 {
		t.Errorf("EncodedSize: got %d, want 16", got)
	}

	buf := make(Bytes, cred.EncodedSize())
	c := NewCursor(buf, 0, len(buf))
	WriteRecord(c, &cred)
	if c.Pos() != cred.EncodedSize() {
		t.Errorf("cursor after write: got %d, want %d", c.Pos(), cred.EncodedSize())
	}
}

func TestRecord_ReadSkipsFillRuns(t *testing.T) {
	cred := Credential{SSID: "b", Passphrase: "q", BSSID: [6]byte{1, 1, 2, 2, 3, 3}}

	buf := make(Bytes, 8+cred.EncodedSize())
	for i := 0; i < 8; i++ {
		buf[i] = FillByte
	}
	WriteRecord(NewCursor(buf, 8, len(buf)), &cred)

	got, start, ok := ReadRecord(NewCursor(buf, 0, len(buf)))
	if !ok {
		t.Fatal("ReadRecord failed")
	}
	if start != 8 {
		t.Errorf("record start: got %d, want 8", start)
	}
	if got != cred {
		t.Errorf("got %+v, want %+v", got, cred)
	}
}

func TestRecord_ReadTruncated(t *testing.T) {
	cred := Credential{SSID: "net", Passphrase: "pass", BSSID: [6]byte{1, 2, 3, 4, 5, 6}}
	buf := make(Bytes, cred.EncodedSize())
	WriteRecord(NewCursor(buf, 0, len(buf)), &cred)

	testCases := []struct {
		name  string
		limit int
	}{
		{"cut inside ssid", 2},
		{"cut at ssid terminator", len(cred.SSID)},
		{"cut inside passphrase", len(cred.SSID) + 3},
		{"cut inside bssid", cred.EncodedSize() - 2},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, ok := ReadRecord(NewCursor(buf, 0, tc.limit)); ok {
				t.Errorf("ReadRecord succeeded with limit %d, want failure", tc.limit)
			}
		})
	}
}

func TestRecord_EraseRecord(t *testing.T) {
	first := Credential{SSID: "gone", Passphrase: "pw", BSSID: [6]byte{1, 2, 3, 4, 5, 6}}
	second := Credential{SSID: "kept", Passphrase: "pw2", BSSID: [6]byte{6, 5, 4, 3, 2, 1}}

	buf := make(Bytes, first.EncodedSize()+second.EncodedSize())
	w := NewCursor(buf, 0, len(buf))
	WriteRecord(w, &first)
	WriteRecord(w, &second)

	if !EraseRecord(NewCursor(buf, 0, len(buf))) {
		t.Fatal("EraseRecord failed")
	}

	// The erased span is all fill bytes.
	for i := 0; i < first.EncodedSize(); i++ {
		if buf[i] != FillByte {
			t.Fatalf("byte %d not erased: got %#x", i, buf[i])
		}
	}

	// The next record survives and is found by scanning over the fill run.
	got, start, ok := ReadRecord(NewCursor(buf, 0, len(buf)))
	if !ok {
		t.Fatal("ReadRecord after erase failed")
	}
	if start != first.EncodedSize() {
		t.Errorf("record start: got %d, want %d", start, first.EncodedSize())
	}
	if got != second {
		t.Errorf("got %+v, want %+v", got, second)
	}
}

func TestCursor_Bounds(t *testing.T) {
	buf := Bytes{0xFF, 0xFF, 0xFF}

	c := NewCursor(buf, 0, len(buf))
	if c.SkipFill() {
		t.Error("SkipFill over all-fill buffer should report the bound")
	}

	c = NewCursor(buf, 0, len(buf))
	if _, ok := c.ReadUntilZero(); ok {
		t.Error("ReadUntilZero without terminator should fail")
	}

	c = NewCursor(buf, 0, len(buf))
	if _, ok := c.ReadBytes(4); ok {
		t.Error("ReadBytes past the bound should fail")
	}

	c = NewCursor(buf, 1, len(buf))
	if !c.Fill(2) {
		t.Error("Fill within bounds should succeed")
	}
	if c.Fill(1) {
		t.Error("Fill past the bound should fail")
	}
}

func TestCursor_EraseFieldStopsAtTerminator(t *testing.T) {
	buf := Bytes{'a', 'b', 0x00, 'c', 'd'}
	c := NewCursor(buf, 0, len(buf))
	if !c.EraseField() {
		t.Fatal("EraseField failed")
	}
	want := Bytes{FillByte, FillByte, FillByte, 'c', 'd'}
	if !bytes.Equal(buf, want) {
		t.Errorf("got % x, want % x", buf, want)
	}
	if c.Pos() != 3 {
		t.Errorf("cursor after erase: got %d, want 3", c.Pos())
	}
}
