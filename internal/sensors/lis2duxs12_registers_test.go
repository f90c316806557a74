package sensors

import (
	"strings"
	"testing"
)

func TestRegisterMap(t *testing.T) {
	regs := lis2duxs12RegisterMap()
	if len(regs) == 0 {
		t.Fatal("empty register map")
	}
	var prev int = -1
	names := map[string]bool{}
	for _, r := range regs {
		addr, err := ParseAddress(r.Address)
		if err != nil {
			t.Fatalf("%s: %v", r.Name, err)
		}
		if int(addr) <= prev {
			t.Errorf("%s at %s is out of order", r.Name, r.Address)
		}
		prev = int(addr)
		if names[r.Name] {
			t.Errorf("duplicate register %s", r.Name)
		}
		names[r.Name] = true
		switch r.Access {
		case "R", "W", "RW":
		default:
			t.Errorf("%s: access %q", r.Name, r.Access)
		}
		for _, bf := range r.BitFields {
			if bf.Bits == "" || bf.Name == "" || strings.Count(bf.Bits, ":") > 1 {
				t.Errorf("%s: bad bit field %+v", r.Name, bf)
			}
		}
	}
	for _, want := range []string{"WHO_AM_I", "CTRL5", "FIFO_DATA_OUT_TAG", "SELF_TEST"} {
		if !names[want] {
			t.Errorf("%s missing", want)
		}
	}
}
