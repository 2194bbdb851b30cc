package protocol

import (
	"errors"
	"testing"
)

func TestDecodeCommand(t *testing.T) {
	cmd, err := DecodeCommand([]byte(`{"type":"set_target","data":{"motor":2,"target":15}}`))
	if err != nil {
		t.Fatalf("DecodeCommand failed: %v", err)
	}
	if cmd.Type != CmdSetTarget {
		t.Errorf("Type = %q, want %q", cmd.Type, CmdSetTarget)
	}
	if !cmd.Data.Has(FieldMotor) || *cmd.Data.Motor != 2 {
		t.Errorf("motor = %v, want 2", cmd.Data.Motor)
	}
	if !cmd.Data.Has(FieldTarget) || *cmd.Data.Target != 15 {
		t.Errorf("target = %v, want 15", cmd.Data.Target)
	}
	if cmd.Data.Has(FieldState) {
		t.Error("state should be absent")
	}
}

func TestDecodeCommandZeroValuesArePresent(t *testing.T) {
	cmd, err := DecodeCommand([]byte(`{"type":"set_servo","data":{"state":false}}`))
	if err != nil {
		t.Fatalf("DecodeCommand failed: %v", err)
	}
	if !cmd.Data.Has(FieldState) || *cmd.Data.State {
		t.Errorf("state = %v, want present and false", cmd.Data.State)
	}
}

func TestDecodeCommandWithoutData(t *testing.T) {
	cmd, err := DecodeCommand([]byte(`{"type":"emergency_stop"}`))
	if err != nil {
		t.Fatalf("DecodeCommand failed: %v", err)
	}
	if cmd.Data.Has(FieldMotor) || cmd.Data.Has(FieldTarget) || cmd.Data.Has(FieldState) {
		t.Error("expected no fields")
	}
}

func TestDecodeCommandMalformed(t *testing.T) {
	inputs := []string{
		``,
		`not json`,
		`{"type":`,
		`{"data":{"motor":1}}`,
		`{"type":"set_target","data":{"motor":"one"}}`,
		`[1,2,3]`,
	}
	for _, in := range inputs {
		if _, err := DecodeCommand([]byte(in)); !errors.Is(err, ErrMalformed) {
			t.Errorf("DecodeCommand(%q) error = %v, want ErrMalformed", in, err)
		}
	}
}

func TestCommandEncodeDecode(t *testing.T) {
	in := Command{Type: CmdSetTarget, Data: Args{Motor: IntArg(1), Target: IntArg(0)}}
	b, err := in.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out, err := DecodeCommand(b)
	if err != nil {
		t.Fatalf("DecodeCommand(%s) failed: %v", b, err)
	}
	if out.Type != in.Type || *out.Data.Motor != 1 || *out.Data.Target != 0 {
		t.Errorf("round trip mismatch: %s", b)
	}
}
