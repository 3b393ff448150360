package percent

import "testing"

func TestPercentFromString(t *testing.T) {
	for input, expected := range map[string]Percent{
		"40%":   40,
		" 7 % ": 7,
		"120%":  100,
		"-3%":   0,
		"33.6":  34,
	} {
		p, err := FromString(input)
		if err != nil {
			t.Errorf("unexpected error for %q: %v", input, err)
		} else if p != expected {
			t.Errorf("expected %q to be %s, is %s", input, expected, p)
		}
	}
	if _, err := FromString("much"); err == nil {
		t.Errorf("expected error for non-numeric percentage")
	}
}

func TestPercentByte(t *testing.T) {
	if b := FromInt(100).Byte(); b != 255 {
		t.Errorf("expected 100%% to be 255, is %d", b)
	}
	if b := FromInt(50).Byte(); b != 128 {
		t.Errorf("expected 50%% to be 128, is %d", b)
	}
	if x := FromInt(25).Of(16); x != 4 {
		t.Errorf("expected 25%% of 16 to be 4, is %g", x)
	}
}
