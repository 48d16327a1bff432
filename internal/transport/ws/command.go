package ws

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/SeamusWaldron/cubesim"
)

//go:embed command.schema.json
var commandSchemaJSON []byte

// Command types accepted from clients.
const (
	TypeMove     = "move"
	TypeNotation = "notation"
	TypeScramble = "scramble"
	TypeReset    = "reset"

	TypeDragStart = "drag_start"
	TypeDragMove  = "drag_move"
	TypeDragEnd   = "drag_end"
)

// ErrInvalidCommand wraps schema and decode failures.
var ErrInvalidCommand = errors.New("ws: invalid command")

// Command is one client request.
type Command struct {
	Type     string   `json:"type"`
	Axis     string   `json:"axis,omitempty"`
	Layer    *float32 `json:"layer,omitempty"`
	Rotation string   `json:"rotation,omitempty"`
	Notation string   `json:"notation,omitempty"`
	// Piece and Hit carry drag input from a client that does its own picking.
	Piece *int        `json:"piece,omitempty"`
	Hit   *[3]float32 `json:"hit,omitempty"`
}

// CompileSchema compiles the embedded command schema.
func CompileSchema() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("command.schema.json", bytes.NewReader(commandSchemaJSON)); err != nil {
		return nil, err
	}
	return c.Compile("command.schema.json")
}

// DecodeCommand validates raw against schema and decodes it.
func DecodeCommand(schema *jsonschema.Schema, raw []byte) (Command, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Command{}, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}
	if err := schema.Validate(doc); err != nil {
		return Command{}, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}
	var cmd Command
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return Command{}, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}
	return cmd, nil
}

// Apply runs the command against p and returns the moves it queued.
func (c Command) Apply(p *cubesim.Puzzle) ([]cubesim.SliceMove, error) {
	switch c.Type {
	case TypeMove:
		m, err := c.sliceMove()
		if err != nil {
			return nil, err
		}
		if err := p.EnqueueFrom(cubesim.SourceRemote, m); err != nil {
			return nil, err
		}
		return []cubesim.SliceMove{m}, nil
	case TypeNotation:
		moves, err := cubesim.ParseSliceMoves(c.Notation)
		if err != nil {
			return nil, err
		}
		if err := p.EnqueueFrom(cubesim.SourceRemote, moves...); err != nil {
			return nil, err
		}
		return moves, nil
	case TypeScramble:
		return p.EnqueueScramble(), nil
	case TypeReset:
		p.Reset()
		return nil, nil
	case TypeDragStart:
		if c.Piece == nil || c.Hit == nil {
			return nil, fmt.Errorf("%w: drag_start needs piece and hit", ErrInvalidCommand)
		}
		if err := p.DragStart(cubesim.PieceID(*c.Piece), mgl32.Vec3(*c.Hit)); err != nil {
			return nil, err
		}
		return nil, nil
	case TypeDragMove:
		if c.Hit == nil {
			return nil, fmt.Errorf("%w: drag_move needs hit", ErrInvalidCommand)
		}
		if m, ok := p.DragMove(mgl32.Vec3(*c.Hit)); ok {
			return []cubesim.SliceMove{m}, nil
		}
		return nil, nil
	case TypeDragEnd:
		p.DragEnd()
		return nil, nil
	}
	return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidCommand, c.Type)
}

func (c Command) sliceMove() (cubesim.SliceMove, error) {
	if c.Layer == nil {
		return cubesim.SliceMove{}, fmt.Errorf("%w: move needs a layer", ErrInvalidCommand)
	}
	axis, err := cubesim.ParseAxis(c.Axis)
	if err != nil {
		return cubesim.SliceMove{}, err
	}
	rot, err := cubesim.ParseRotation(c.Rotation)
	if err != nil {
		return cubesim.SliceMove{}, err
	}
	return cubesim.NewSliceMove(axis, *c.Layer, rot)
}
