package touch

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestTouchSetAddIgnoresDuplicates(t *testing.T) {
	var added []ContactPoint
	ts := TouchSet{OnAdd: func(p ContactPoint) { added = append(added, p) }}

	ts.Add(pt(1, 0, 0))
	ts.Add(pt(2, 5, 5))
	ts.Add(pt(1, 9, 9)) // duplicate id: ignored

	want := []ContactPoint{pt(1, 0, 0), pt(2, 5, 5)}
	if diff := cmp.Diff(want, ts.Points()); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, added); diff != "" {
		t.Errorf("OnAdd calls mismatch (-want +got):\n%s", diff)
	}
}

func TestTouchSetUpdate(t *testing.T) {
	var ts TouchSet
	ts.Add(pt(1, 0, 0))

	ts.Update(pt(1, 3, 4))
	ts.Update(pt(7, 1, 1)) // unknown id: ignored

	if ts.Len() != 1 {
		t.Fatalf("Len = %d, want 1", ts.Len())
	}
	p, ok := ts.Find(1)
	if !ok || p.X != 3 || p.Y != 4 {
		t.Errorf("Find(1) = %+v, %v; want (3, 4), true", p, ok)
	}
	if _, ok := ts.Find(7); ok {
		t.Error("Find(7) should miss")
	}
}

func TestTouchSetRemoveAndClear(t *testing.T) {
	var ts TouchSet
	ts.Add(pt(1, 0, 0))
	ts.Add(pt(2, 0, 0))
	ts.Add(pt(3, 0, 0))

	ts.Remove(2)
	ts.Remove(42) // unknown id: ignored

	want := []ContactPoint{pt(1, 0, 0), pt(3, 0, 0)}
	if diff := cmp.Diff(want, ts.Points()); diff != "" {
		t.Errorf("after Remove (-want +got):\n%s", diff)
	}

	ts.Timestamp = time.Unix(5, 0)
	ts.Clear()
	if ts.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", ts.Len())
	}
}
