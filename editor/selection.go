package editor

import "fmt"

// Selection is the brush: a tile id, or Eraser.
type Selection int

const Eraser Selection = -1

// Tile selects tile id; negative ids select the eraser.
func Tile(id int) Selection {
	if id < 0 {
		return Eraser
	}
	return Selection(id)
}

// Tile returns the selected id, or false for the eraser.
func (s Selection) Tile() (int, bool) {
	if s < 0 {
		return 0, false
	}
	return int(s), true
}

func (s Selection) String() string {
	if id, ok := s.Tile(); ok {
		return fmt.Sprintf("tile %d", id)
	}
	return "eraser"
}
