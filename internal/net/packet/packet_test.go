package packet

import "testing"

func TestWriterReaderRoundTrip(t *testing.T) {
	w := NewWriterWithOpcode(0x1234)
	w.WriteByte(7)
	w.WriteUint16(42)
	w.WriteUint32(0xDEADBEEF)
	w.WriteInt32(-5)
	w.WriteUint64(0x0102030405060708)
	w.WriteFloat32(3.5)
	w.WriteString("hello")
	w.WriteBytes([]byte{1, 2, 3})

	r := NewReader(w.Bytes())
	if r.Opcode() != 0x1234 {
		t.Fatalf("Opcode() = %#x, want 0x1234", r.Opcode())
	}
	if got := r.ReadByte(); got != 7 {
		t.Errorf("ReadByte() = %d, want 7", got)
	}
	if got := r.ReadUint16(); got != 42 {
		t.Errorf("ReadUint16() = %d, want 42", got)
	}
	if got := r.ReadUint32(); got != 0xDEADBEEF {
		t.Errorf("ReadUint32() = %#x, want 0xDEADBEEF", got)
	}
	if got := r.ReadInt32(); got != -5 {
		t.Errorf("ReadInt32() = %d, want -5", got)
	}
	if got := r.ReadUint64(); got != 0x0102030405060708 {
		t.Errorf("ReadUint64() = %#x, want 0x0102030405060708", got)
	}
	if got := r.ReadFloat32(); got != 3.5 {
		t.Errorf("ReadFloat32() = %v, want 3.5", got)
	}
	if got := r.ReadString(); got != "hello" {
		t.Errorf("ReadString() = %q, want \"hello\"", got)
	}
	if got := r.ReadBytes(3); len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("ReadBytes(3) = %v, want [1 2 3]", got)
	}
	if r.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0 after consuming the whole payload", r.Remaining())
	}
}

func TestReaderShortReadYieldsZero(t *testing.T) {
	r := NewReader([]byte{0x01, 0x00}) // opcode only, nothing else
	if got := r.ReadUint32(); got != 0 {
		t.Errorf("ReadUint32() on truncated payload = %d, want 0", got)
	}
	if got := r.ReadString(); got != "" {
		t.Errorf("ReadString() on truncated payload = %q, want empty", got)
	}
}

func TestSessionStateString(t *testing.T) {
	cases := map[SessionState]string{
		StateHandshake:     "Handshake",
		StateAuthenticated: "Authenticated",
		StateInWorld:       "InWorld",
		StateDisconnecting: "Disconnecting",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", state, got, want)
		}
	}
}
