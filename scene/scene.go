package scene

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/glyphgrid/assets"
	"github.com/milk9111/glyphgrid/common"
	"github.com/milk9111/glyphgrid/config"
	"github.com/milk9111/glyphgrid/input"
	"github.com/milk9111/glyphgrid/terminal"
)

// Surface is the part of a glyph grid a scene draws on.
type Surface interface {
	SetString(x, y int, s string, colors ...terminal.Color)
	SetGlyph(x, y int, code byte, colors ...terminal.Color)
	Clear()
	Size() (int, int)
}

// Keys answers key state queries from a scene.
type Keys interface {
	IsPressed(k input.Key) bool
	IsDown(k input.Key) bool
}

// frameDispatchScript is appended to every scene. Scripts define
// frame := func(term, state) and keep whatever they like in state.
const frameDispatchScript = `
if __phase == "frame" {
	frame(__term, __state)
}
`

// Scene is a compiled tengo script that draws one frame per Run.
type Scene struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

// Load compiles the scene script at path. Files on disk win over the copies
// embedded in assets.
func Load(path string) (*Scene, error) {
	src, err := assets.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: load %s: %w", path, err)
	}
	return Compile(path, src)
}

// Compile builds a scene from source. name is used in errors and logs.
func Compile(name string, src []byte) (*Scene, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + frameDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__term", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("scene: compile %s: %w", name, err)
	}
	common.Logger().Info("scene: compiled", "name", name)
	return &Scene{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (s *Scene) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Run calls the script's frame function once. State stored by the script
// persists across runs of the same Scene.
func (s *Scene) Run(surface Surface, keys Keys, frame int) error {
	if s == nil || s.compiled == nil {
		return fmt.Errorf("scene: nil scene")
	}
	if err := s.compiled.Set("__phase", "frame"); err != nil {
		return err
	}
	if err := s.compiled.Set("__term", buildTerm(surface, keys, frame)); err != nil {
		return err
	}
	if err := s.compiled.Set("__state", s.state); err != nil {
		return err
	}
	if err := s.compiled.Run(); err != nil {
		return fmt.Errorf("scene: run %s: %w", s.name, err)
	}
	return nil
}

// State returns a script state value converted to Go, or nil.
func (s *Scene) State(key string) any {
	if s == nil {
		return nil
	}
	return objectToAny(s.state.Value[key])
}

func buildTerm(surface Surface, keys Keys, frame int) *tengo.ImmutableMap {
	w, h := surface.Size()
	values := map[string]tengo.Object{
		"width":  &tengo.Int{Value: int64(w)},
		"height": &tengo.Int{Value: int64(h)},
		"frame":  &tengo.Int{Value: int64(frame)},
	}

	values["set"] = &tengo.UserFunction{Name: "set", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 3 || len(args) > 5 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, y, err := position(args)
		if err != nil {
			return nil, err
		}
		colors, err := objectColors(args[3:])
		if err != nil {
			return nil, err
		}
		switch v := args[2].(type) {
		case *tengo.Char:
			surface.SetString(x, y, string(v.Value), colors...)
		case *tengo.String:
			surface.SetString(x, y, v.Value, colors...)
		default:
			return nil, tengo.ErrInvalidArgumentType{Name: "text", Expected: "string(compatible)", Found: v.TypeName()}
		}
		return tengo.UndefinedValue, nil
	}}

	values["glyph"] = &tengo.UserFunction{Name: "glyph", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 3 || len(args) > 5 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, y, err := position(args)
		if err != nil {
			return nil, err
		}
		code, ok := tengo.ToInt(args[2])
		if !ok || code < 0 || code > 255 {
			return nil, tengo.ErrInvalidArgumentType{Name: "code", Expected: "int(0-255)", Found: args[2].TypeName()}
		}
		colors, err := objectColors(args[3:])
		if err != nil {
			return nil, err
		}
		surface.SetGlyph(x, y, byte(code), colors...)
		return tengo.UndefinedValue, nil
	}}

	values["clear"] = &tengo.UserFunction{Name: "clear", Value: func(args ...tengo.Object) (tengo.Object, error) {
		surface.Clear()
		return tengo.UndefinedValue, nil
	}}

	values["pressed"] = keyQuery("pressed", keys, Keys.IsPressed)
	values["down"] = keyQuery("down", keys, Keys.IsDown)

	values["rgb"] = &tengo.UserFunction{Name: "rgb", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 3 {
			return nil, tengo.ErrWrongNumArguments
		}
		var ch [3]uint8
		for i, a := range args {
			v, ok := tengo.ToInt(a)
			if !ok {
				return nil, tengo.ErrInvalidArgumentType{Name: "channel", Expected: "int", Found: a.TypeName()}
			}
			ch[i] = uint8(min(max(v, 0), 255))
		}
		return &tengo.String{Value: config.Hex(terminal.NewColor(ch[0], ch[1], ch[2]))}, nil
	}}

	values["blend"] = &tengo.UserFunction{Name: "blend", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 3 {
			return nil, tengo.ErrWrongNumArguments
		}
		colors, err := objectColors(args[:2])
		if err != nil {
			return nil, err
		}
		t, ok := tengo.ToFloat64(args[2])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "t", Expected: "float", Found: args[2].TypeName()}
		}
		return &tengo.String{Value: config.Hex(config.Blend(colors[0], colors[1], t))}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func keyQuery(name string, keys Keys, query func(Keys, input.Key) bool) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		if keys == nil {
			return tengo.FalseValue, nil
		}
		k, err := input.ParseKey(objectAsString(args[0]))
		if err != nil {
			common.Logger().Warn("scene: unknown key", "name", objectAsString(args[0]))
			return tengo.FalseValue, nil
		}
		if query(keys, k) {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}
}

func position(args []tengo.Object) (int, int, error) {
	x, ok := tengo.ToInt(args[0])
	if !ok {
		return 0, 0, tengo.ErrInvalidArgumentType{Name: "x", Expected: "int", Found: args[0].TypeName()}
	}
	y, ok := tengo.ToInt(args[1])
	if !ok {
		return 0, 0, tengo.ErrInvalidArgumentType{Name: "y", Expected: "int", Found: args[1].TypeName()}
	}
	return x, y, nil
}

func objectColors(args []tengo.Object) ([]terminal.Color, error) {
	colors := make([]terminal.Color, 0, len(args))
	for _, a := range args {
		c, err := config.ParseColor(objectAsString(a))
		if err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return colors, nil
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Char:
		return v.Value
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
