package ember

// CommandType identifies the type of a draw command.
type CommandType uint8

const (
	// CmdBindState switches the backend to a new render state.
	CmdBindState CommandType = iota
	// CmdDrawRange issues one native draw over an index range.
	CmdDrawRange
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdBindState: "BindState",
	CmdDrawRange: "DrawRange",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all draw commands.
// A compiled frame is a flat sequence of commands that any backend can
// replay without further interpretation.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// BindStateCommand switches the pipeline to a new render state.
// Every field of State is authoritative; backends diff against their
// previous state only as a native-call optimization.
type BindStateCommand struct {
	State RenderState
}

// Type implements Command.
func (BindStateCommand) Type() CommandType { return CmdBindState }

// DrawRangeCommand issues one native indexed draw.
type DrawRangeCommand struct {
	// FirstIndex is the offset into the frame's index storage.
	FirstIndex uint32
	// IndexCount is the number of indices to draw.
	IndexCount uint32
}

// Type implements Command.
func (DrawRangeCommand) Type() CommandType { return CmdDrawRange }

// DrawStream is the compiled form of one frame: an ordered command
// sequence in exact submission order. It aliases the engine that
// compiled it and stays valid until that engine's next BeginFrame.
type DrawStream struct {
	commands []Command
}

// Commands returns the command sequence.
func (d *DrawStream) Commands() []Command { return d.commands }

// Len returns the number of commands.
func (d *DrawStream) Len() int { return len(d.commands) }

// DrawCalls returns the number of draw-range commands, which is the
// number of native draws a backend will issue.
func (d *DrawStream) DrawCalls() int {
	n := 0
	for _, cmd := range d.commands {
		if cmd.Type() == CmdDrawRange {
			n++
		}
	}
	return n
}

// clear empties the command tape, retaining storage.
func (d *DrawStream) clear() {
	d.commands = d.commands[:0]
}

// compileBatches appends the command sequence for the given batches.
// One BindState and one DrawRange per batch, in batch order; triangle
// ranges become index ranges. Empty batches produce no draw.
func (d *DrawStream) compileBatches(batches []Batch) {
	for _, batch := range batches {
		if batch.End <= batch.Start {
			continue
		}
		d.commands = append(d.commands,
			BindStateCommand{State: batch.State},
			DrawRangeCommand{
				FirstIndex: uint32(3 * batch.Start),
				IndexCount: uint32(3 * (batch.End - batch.Start)),
			},
		)
	}
}
