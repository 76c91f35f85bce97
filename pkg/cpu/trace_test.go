package cpu

import (
	"bytes"
	"strings"
	"testing"
)

func TestTraceFormat(t *testing.T) {
	c := createTestCPU()
	load(c, 0x0400, 0xA9, 0x01, 0x4C, 0x00, 0x04) // LDA #$01; JMP $0400

	var buf bytes.Buffer
	c.SetTrace(&buf)

	c.Step()
	c.Step()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 trace lines, got %d", len(lines))
	}

	if !strings.HasPrefix(lines[0], "0400  A9 01 ") {
		t.Errorf("Unexpected first line prefix: %q", lines[0])
	}
	if !strings.Contains(lines[0], "LDA #$01") {
		t.Errorf("Expected disassembly in %q", lines[0])
	}
	if !strings.Contains(lines[0], "A:00 X:00 Y:00 P:24 SP:FD") {
		t.Errorf("Expected pre-instruction register state in %q", lines[0])
	}
	if !strings.HasSuffix(lines[0], "CYC:0") {
		t.Errorf("Expected cycle counter in %q", lines[0])
	}

	if !strings.Contains(lines[1], "JMP $0400") {
		t.Errorf("Expected JMP disassembly in %q", lines[1])
	}
	if !strings.Contains(lines[1], "A:01") {
		t.Errorf("Expected updated A in %q", lines[1])
	}
}

func TestTraceDisabled(t *testing.T) {
	c := createTestCPU()
	load(c, 0x0400, 0xEA)

	var buf bytes.Buffer
	c.SetTrace(&buf)
	c.SetTrace(nil)

	c.Step()

	if buf.Len() != 0 {
		t.Errorf("Expected no trace output when disabled, got %q", buf.String())
	}
}
