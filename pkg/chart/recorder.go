package chart

// Op is a drawing operation recorded by a Recorder.
type Op string

const (
	OpSave        Op = "save"
	OpRestore     Op = "restore"
	OpBeginPath   Op = "beginPath"
	OpMoveTo      Op = "moveTo"
	OpLineTo      Op = "lineTo"
	OpClosePath   Op = "closePath"
	OpStroke      Op = "stroke"
	OpFill        Op = "fill"
	OpStrokeStyle Op = "strokeStyle"
	OpFillStyle   Op = "fillStyle"
	OpLineWidth   Op = "lineWidth"
	OpLineDash    Op = "lineDash"
)

// Command is one recorded drawing call. Only the fields relevant to Op are set.
type Command struct {
	Op    Op        `json:"op"`
	X     float64   `json:"x,omitempty"`
	Y     float64   `json:"y,omitempty"`
	Color string    `json:"color,omitempty"`
	Width float64   `json:"width,omitempty"`
	Dash  []float64 `json:"dash,omitempty"`
}

// Recorder is a Surface that records every call instead of drawing. A
// browser or any other canvas host can replay the commands verbatim.
type Recorder struct {
	commands []Command
	depth    int
	maxDepth int
}

var _ Surface = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) push(c Command) {
	r.commands = append(r.commands, c)
}

func (r *Recorder) Save() {
	r.depth++
	if r.depth > r.maxDepth {
		r.maxDepth = r.depth
	}
	r.push(Command{Op: OpSave})
}

func (r *Recorder) Restore() {
	r.depth--
	r.push(Command{Op: OpRestore})
}

func (r *Recorder) BeginPath() { r.push(Command{Op: OpBeginPath}) }

func (r *Recorder) MoveTo(x, y float64) { r.push(Command{Op: OpMoveTo, X: x, Y: y}) }

func (r *Recorder) LineTo(x, y float64) { r.push(Command{Op: OpLineTo, X: x, Y: y}) }

func (r *Recorder) ClosePath() { r.push(Command{Op: OpClosePath}) }

func (r *Recorder) Stroke() { r.push(Command{Op: OpStroke}) }

func (r *Recorder) Fill() { r.push(Command{Op: OpFill}) }

func (r *Recorder) SetStrokeStyle(color string) {
	r.push(Command{Op: OpStrokeStyle, Color: color})
}

func (r *Recorder) SetFillStyle(color string) {
	r.push(Command{Op: OpFillStyle, Color: color})
}

func (r *Recorder) SetLineWidth(width float64) {
	r.push(Command{Op: OpLineWidth, Width: width})
}

func (r *Recorder) SetLineDash(segments []float64) {
	r.push(Command{Op: OpLineDash, Dash: append([]float64{}, segments...)})
}

// Commands returns the recorded commands in call order.
func (r *Recorder) Commands() []Command {
	return r.commands
}

// Count returns how many times op was recorded.
func (r *Recorder) Count(op Op) (n int) {
	for _, c := range r.commands {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Balanced reports whether every Save has a matching Restore.
func (r *Recorder) Balanced() bool {
	return r.depth == 0
}

func (r *Recorder) MaxDepth() int {
	return r.maxDepth
}

func (r *Recorder) Reset() {
	r.commands = nil
	r.depth = 0
	r.maxDepth = 0
}
