package game

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a Config cannot produce a playable scene.
var ErrInvalidConfig = errors.New("game: invalid config")

// Config describes the demo world.
type Config struct {
	Width, Height int

	HostileRows    int
	HostileColumns int
	// HostileSize is the edge of the square hostile hit box and sprite.
	HostileSize int

	Balls     int
	BallSize  int
	BallSpeed int

	PaddleWidth  int
	PaddleHeight int
	PlayerSpeed  int

	// AssetDir is prefixed to sprite file names.
	AssetDir string
	Labels   bool
}

// DefaultConfig returns a 1024x768 world with three rows of hostiles, one ball and a paddle.
func DefaultConfig() Config {
	return Config{
		Width:          1024,
		Height:         768,
		HostileRows:    3,
		HostileColumns: 8,
		HostileSize:    50,
		Balls:          1,
		BallSize:       24,
		BallSpeed:      240,
		PaddleWidth:    140,
		PaddleHeight:   20,
		PlayerSpeed:    420,
		AssetDir:       "assets/sprites",
	}
}

// Validate reports the first setting that makes the world unplayable.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: world size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.HostileRows < 0 || c.HostileColumns < 0 || c.HostileSize <= 0:
		return fmt.Errorf("%w: hostile grid %dx%d of size %d", ErrInvalidConfig, c.HostileColumns, c.HostileRows, c.HostileSize)
	case c.HostileColumns*c.HostileSize > c.Width:
		return fmt.Errorf("%w: %d hostiles of size %d do not fit in width %d", ErrInvalidConfig, c.HostileColumns, c.HostileSize, c.Width)
	case c.Balls < 0 || c.BallSize <= 0 || c.BallSize >= c.Width:
		return fmt.Errorf("%w: %d balls of size %d", ErrInvalidConfig, c.Balls, c.BallSize)
	case c.PaddleWidth <= 0 || c.PaddleHeight <= 0 || c.PaddleWidth > c.Width:
		return fmt.Errorf("%w: paddle %dx%d", ErrInvalidConfig, c.PaddleWidth, c.PaddleHeight)
	}
	return nil
}
