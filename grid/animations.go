package grid

import "time"

// Animation is a looping frame sequence. It plays for
// FrameDuration * len(Frames) * Repeat.
type Animation struct {
	Frames        []Frame
	FrameDuration time.Duration
	Repeat        int
}

func (a Animation) Duration() time.Duration {
	return a.FrameDuration * time.Duration(len(a.Frames)*a.Repeat)
}

var (
	// Searching is played while scanning; its length is the scan window.
	Searching = Animation{
		Frames: []Frame{
			MustParse(
				".....",
				".....",
				"..#..",
				".....",
				"....."),
			MustParse(
				".....",
				".###.",
				".###.",
				".###.",
				"....."),
			MustParse(
				"#####",
				"#####",
				"##.##",
				"#####",
				"#####"),
			MustParse(
				"#####",
				"#...#",
				"#...#",
				"#...#",
				"#####"),
			Blank,
		},
		FrameDuration: 200 * time.Millisecond,
		Repeat:        10,
	}

	ScanFailure = Animation{
		Frames: []Frame{
			MustParse(
				"#...#",
				".#.#.",
				"..#..",
				".#.#.",
				"#...#"),
			Blank,
		},
		FrameDuration: 500 * time.Millisecond,
		Repeat:        5,
	}

	InitFailure = Animation{
		Frames: []Frame{
			MustParse(
				"..#..",
				"..#..",
				"..#..",
				".....",
				"..#.."),
			Blank,
		},
		FrameDuration: 500 * time.Millisecond,
		Repeat:        5,
	}
)

// Result timing: the composed frame is held for 5s.
const (
	ResultFrameDuration = 250 * time.Millisecond
	ResultRepeat        = 20
)
