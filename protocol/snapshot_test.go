package protocol

import (
	"encoding/json"
	"testing"
)

func testSnapshot() Snapshot {
	return Snapshot{
		Axes: []AxisStatus{
			{Position: 5, Target: 9, Running: true},
			{Position: 0, Target: 0},
			{Position: -3, Target: 0, Running: true, Calibrating: true},
			{Position: 12, Target: 20, Running: true, FullForward: true},
		},
		ServoState:   true,
		GlobalStatus: StatusRunning,
	}
}

func TestSnapshotWireKeys(t *testing.T) {
	b, err := json.Marshal(testSnapshot())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	// Decode generically to check the exact key layout observers rely on
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("snapshot %s is not valid JSON: %v", b, err)
	}

	for _, key := range []string{"motor0", "motor1", "motor2", "motor3", "servoState", "globalStatus"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("snapshot missing key %q: %s", key, b)
		}
	}
	if _, ok := doc["ip"]; ok {
		t.Error("empty ip should be omitted")
	}
	if doc["globalStatus"] != StatusRunning {
		t.Errorf("globalStatus = %v, want %s", doc["globalStatus"], StatusRunning)
	}

	m2, ok := doc["motor2"].(map[string]any)
	if !ok {
		t.Fatalf("motor2 is %T, want object", doc["motor2"])
	}
	want := map[string]any{
		"position": float64(-3), "target": float64(0), "running": true,
		"calibrating": true, "fullForward": false, "fullBackward": false,
	}
	for k, v := range want {
		if m2[k] != v {
			t.Errorf("motor2.%s = %v, want %v", k, m2[k], v)
		}
	}
}

func TestSnapshotDecode(t *testing.T) {
	in := testSnapshot()
	in.IP = "192.168.4.1:8080"

	out, err := DecodeSnapshot(in.AppendJSON(nil))
	if err != nil {
		t.Fatalf("DecodeSnapshot failed: %v", err)
	}
	if len(out.Axes) != len(in.Axes) {
		t.Fatalf("decoded %d axes, want %d", len(out.Axes), len(in.Axes))
	}
	for i := range in.Axes {
		if out.Axes[i] != in.Axes[i] {
			t.Errorf("axis %d = %+v, want %+v", i, out.Axes[i], in.Axes[i])
		}
	}
	if out.ServoState != in.ServoState || out.GlobalStatus != in.GlobalStatus || out.IP != in.IP {
		t.Errorf("decoded %+v, want %+v", out, in)
	}
}

func TestSnapshotDecodeRejectsBadAxisKey(t *testing.T) {
	if _, err := DecodeSnapshot([]byte(`{"motorX":{}}`)); err == nil {
		t.Error("expected error for non-numeric axis key")
	}
}

func TestSnapshotClone(t *testing.T) {
	s := testSnapshot()
	c := s.Clone()
	c.Axes[0].Position = 100
	if s.Axes[0].Position == 100 {
		t.Error("Clone shares axis storage with the original")
	}
}

func TestSnapshotAnyRunning(t *testing.T) {
	s := testSnapshot()
	if !s.AnyRunning() {
		t.Error("AnyRunning = false, want true")
	}
	for i := range s.Axes {
		s.Axes[i].Running = false
	}
	if s.AnyRunning() {
		t.Error("AnyRunning = true, want false")
	}
}
