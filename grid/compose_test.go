package grid_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/robertof/go-beacon-radar/grid"
	"github.com/robertof/go-beacon-radar/radio"
	"github.com/robertof/go-beacon-radar/slots"
)

func TestCompose_Empty(t *testing.T) {
	if got := grid.Compose(slots.NewState()); got != grid.Blank {
		t.Fatalf("Compose(empty) = %v, wanted blank", got)
	}
}

func TestCompose_OneSlotPerTier(t *testing.T) {
	s := slots.NewState()

	// strong index 0 is (1, col 1), any index 0 is (0, col 0)
	s.Allocate(radio.Identity{0x00}, -80)
	s.Allocate(radio.Identity{0x10}, -95)

	want := grid.MustParse(
		"#....",
		".#...",
		".....",
		".....",
		".....")

	got := grid.Compose(s)

	if diff := cmp.Diff(want.String(), got.String()); diff != "" {
		t.Fatalf("Compose() mismatch (-want +got):\n%s", diff)
	}

	if got.Count() != 2 {
		t.Fatalf("Count() = %d, wanted 2", got.Count())
	}
}

func TestCompose_Full(t *testing.T) {
	s := slots.NewState()

	for i := 0; i < slots.StrongCapacity+slots.AnyCapacity; i++ {
		s.Allocate(radio.Identity{byte(i)}, -20)
	}

	want := grid.MustParse(
		"#####",
		"#####",
		"##.##",
		"#####",
		"#####")

	if diff := cmp.Diff(want, grid.Compose(s)); diff != "" {
		t.Fatalf("Compose() mismatch (-want +got):\n%s", diff)
	}
}

func TestCompose_OrderIndependent(t *testing.T) {
	a, b := slots.NewState(), slots.NewState()

	// same lit set reached in different orders
	a.Allocate(radio.Identity{1}, -50)
	a.Allocate(radio.Identity{2}, -50)
	b.Allocate(radio.Identity{2}, -50)
	b.Allocate(radio.Identity{1}, -50)

	if grid.Compose(a) != grid.Compose(b) {
		t.Fatalf("Compose() depends on allocation order: %v vs %v", grid.Compose(a), grid.Compose(b))
	}
}

func TestAnimationDurations(t *testing.T) {
	tests := map[string]struct {
		anim grid.Animation
		want string
	}{
		"searching":    {grid.Searching, "10s"},
		"scan failure": {grid.ScanFailure, "5s"},
		"init failure": {grid.InitFailure, "5s"},
	}

	for name, tt := range tests {
		if got := tt.anim.Duration().String(); got != tt.want {
			t.Fatalf("%s: Duration() = %s, wanted %s", name, got, tt.want)
		}
	}

	if grid.InitFailure.Frames[0] == grid.ScanFailure.Frames[0] {
		t.Fatalf("init and scan failure animations must differ")
	}
}

func TestMustParse_String(t *testing.T) {
	f := grid.MustParse(
		"#...#",
		".....",
		"..#..",
		".....",
		"#...#")

	if got, want := f.String(), "#...#/...../..#../...../#...#"; got != want {
		t.Fatalf("String() = %q, wanted %q", got, want)
	}

	if !f.At(0, 4) || f.At(0, 3) {
		t.Fatalf("At() returned unexpected values for %v", f)
	}
}
