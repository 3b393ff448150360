package dimen

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestParseDimen(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.core")
	defer teardown()
	//
	d, _, err := ParseDimen("12px", 96)
	if err != nil {
		t.Errorf("(1) %s", err.Error())
	} else if d != 12 {
		t.Errorf("(1) expected d to be 12px, is %g", d)
	}
	//
	d, _, err = ParseDimen("0", 96)
	if err != nil {
		t.Errorf("(2) %s", err.Error())
	} else if d != 0 {
		t.Errorf("(2) expected d to be 0, is %g", d)
	}
	//
	d, ispcnt, err := ParseDimen("20%", 96)
	if err != nil {
		t.Errorf("(3) %s", err.Error())
	} else if ispcnt != true || d != 20 {
		t.Errorf("(3) expected percentage 20, is %g (%v)", d, ispcnt)
	}
	//
	d, _, err = ParseDimen("12pt", 96)
	if err != nil {
		t.Errorf("(4) %s", err.Error())
	} else if d != 16 {
		t.Errorf("(4) expected 12pt@96dpi to be 16px, is %g", d)
	}
	if _, _, err = ParseDimen("12furlong", 96); err == nil {
		t.Errorf("(5) expected error for unknown unit")
	}
}

func TestPtToPx(t *testing.T) {
	if px := PtToPx(12, 96); px != 16 {
		t.Errorf("expected 12pt to be 16px at 96 dpi, is %d", px)
	}
	if px := PtToPx(10, 72); px != 10 {
		t.Errorf("expected 10pt to be 10px at 72 dpi, is %d", px)
	}
	if px := PtToPx(12, 0); px != 16 {
		t.Errorf("expected default resolution of 96 dpi, have %d px", px)
	}
}

func TestRectIntersection(t *testing.T) {
	r := R(0, 0, 100, 50)
	s := R(80, 40, 50, 50)
	i := r.Intersect(s)
	if i != R(80, 40, 20, 10) {
		t.Errorf("unexpected intersection %s", i)
	}
	if !r.Intersect(R(100, 0, 10, 10)).Empty() {
		t.Errorf("expected adjacent rectangles not to overlap")
	}
	u := R(0, 0, 10, 10).Union(R(20, 20, 5, 5))
	if u != R(0, 0, 25, 25) {
		t.Errorf("unexpected union %s", u)
	}
	if u = (Rect{}).Union(s); u != s {
		t.Errorf("expected union with empty rect to be identity, is %s", u)
	}
}
