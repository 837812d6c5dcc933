package render

// CommandKind distinguishes recorded draw commands.
type CommandKind uint8

const (
	CommandSprite CommandKind = iota
	CommandText
)

// Command is one recorded draw call.
type Command struct {
	Kind    CommandKind
	X, Y    int
	Width   int
	Height  int
	Texture Texture
	Color   Color
	Text    string
}

// Recorder is a Canvas that keeps the commands of the last presented frame.
// Backends that own their own draw callback (ebiten) replay Frame() there; tests
// inspect it directly.
type Recorder struct {
	building  []Command
	presented []Command
	frames    int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Clear() {
	r.building = r.building[:0]
}

func (r *Recorder) DrawSprite(x, y, width, height int, texture Texture, color Color) {
	r.building = append(r.building, Command{
		Kind:    CommandSprite,
		X:       x,
		Y:       y,
		Width:   width,
		Height:  height,
		Texture: texture,
		Color:   color,
	})
}

func (r *Recorder) DrawText(x, y int, text string) {
	r.building = append(r.building, Command{Kind: CommandText, X: x, Y: y, Text: text})
}

// Present publishes the commands drawn since the last Clear.
func (r *Recorder) Present() {
	r.building, r.presented = r.presented[:0], r.building
	r.frames++
}

// Frame returns the commands of the last presented frame. The slice is reused after
// the next Present.
func (r *Recorder) Frame() []Command {
	return r.presented
}

// Frames returns how many frames have been presented.
func (r *Recorder) Frames() int {
	return r.frames
}
