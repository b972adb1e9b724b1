package packet

import (
	"testing"

	"go.uber.org/zap"
)

func testPayload(opcode uint16) []byte {
	w := NewWriterWithOpcode(opcode)
	w.WriteUint32(1)
	return w.Bytes()
}

func TestDispatchCallsRegisteredHandler(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	called := false
	reg.Register(0x10, []SessionState{StateInWorld}, func(sess any, r *Reader) {
		called = true
	})

	if err := reg.Dispatch(nil, StateInWorld, testPayload(0x10)); err != nil {
		t.Fatalf("Dispatch() error: %v", err)
	}
	if !called {
		t.Fatalf("expected handler to be invoked")
	}
}

func TestDispatchRejectsDisallowedState(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	called := false
	reg.Register(0x10, []SessionState{StateInWorld}, func(sess any, r *Reader) {
		called = true
	})

	if err := reg.Dispatch(nil, StateHandshake, testPayload(0x10)); err == nil {
		t.Fatalf("expected an error dispatching in a disallowed state")
	}
	if called {
		t.Fatalf("handler must not run when the state check fails")
	}
}

func TestDispatchUnknownOpcodeIgnored(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	if err := reg.Dispatch(nil, StateInWorld, testPayload(0xFFFF)); err != nil {
		t.Fatalf("unknown opcode must not error, got %v", err)
	}
}

func TestDispatchEmptyPayloadErrors(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	if err := reg.Dispatch(nil, StateInWorld, []byte{0x01}); err == nil {
		t.Fatalf("expected an error for a payload shorter than the opcode")
	}
}

// TestDispatchRecoversHandlerPanic asserts a misbehaving handler
// cannot crash the world thread.
func TestDispatchRecoversHandlerPanic(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	reg.Register(0x20, []SessionState{StateInWorld}, func(sess any, r *Reader) {
		panic("boom")
	})
	err := reg.Dispatch(nil, StateInWorld, testPayload(0x20))
	if err == nil {
		t.Fatalf("expected Dispatch to surface the recovered panic as an error")
	}
}
