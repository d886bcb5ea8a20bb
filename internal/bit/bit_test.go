package bit

import "testing"

func TestCombine(t *testing.T) {
	if got := Combine(0x12, 0x34); got != 0x1234 {
		t.Fatalf("Combine(0x12, 0x34) = 0x%04X, want 0x1234", got)
	}
}

func TestHighLow(t *testing.T) {
	if High(0xABCD) != 0xAB {
		t.Fatalf("High(0xABCD) != 0xAB")
	}
	if Low(0xABCD) != 0xCD {
		t.Fatalf("Low(0xABCD) != 0xCD")
	}
}

func TestSetResetIsSet(t *testing.T) {
	v := uint8(0)
	v = Set(3, v)
	if !IsSet(3, v) {
		t.Fatal("expected bit 3 set")
	}
	v = Reset(3, v)
	if IsSet(3, v) {
		t.Fatal("expected bit 3 cleared")
	}
}

func TestSetTo(t *testing.T) {
	v := SetTo(0, 0, true)
	if v != 1 {
		t.Fatalf("SetTo(0,0,true) = %d, want 1", v)
	}
	v = SetTo(0, v, false)
	if v != 0 {
		t.Fatalf("SetTo(0,1,false) = %d, want 0", v)
	}
}

func TestGetBit(t *testing.T) {
	if GetBit(7, 0x80) != 1 {
		t.Fatal("expected bit 7 of 0x80 to be 1")
	}
	if GetBit(0, 0x80) != 0 {
		t.Fatal("expected bit 0 of 0x80 to be 0")
	}
}
