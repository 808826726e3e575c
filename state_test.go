package ember

import "testing"

func TestBlendModeString(t *testing.T) {
	tests := []struct {
		mode BlendMode
		want string
	}{
		{BlendNone, "None"},
		{BlendAlpha, "Alpha"},
		{BlendAdditive, "Additive"},
		{BlendMultiply, "Multiply"},
		{BlendMode(200), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("BlendMode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestSpaceString(t *testing.T) {
	tests := []struct {
		space Space
		want  string
	}{
		{SpaceWorld, "World"},
		{SpaceScreen, "Screen"},
		{Space(9), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.space.String(); got != tt.want {
			t.Errorf("Space(%d).String() = %q, want %q", tt.space, got, tt.want)
		}
	}
}

func TestCommandTypeString(t *testing.T) {
	tests := []struct {
		cmd  CommandType
		want string
	}{
		{CmdBindState, "BindState"},
		{CmdDrawRange, "DrawRange"},
		{CommandType(77), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.want {
			t.Errorf("CommandType(%d).String() = %q, want %q", tt.cmd, got, tt.want)
		}
	}
}

func TestRenderStateComparable(t *testing.T) {
	a := RenderState{Material: 1, Texture: 2, Blend: BlendAlpha, Clip: ClipRect(0, 0, 10, 10)}
	b := a
	if a != b {
		t.Error("identical states must compare equal")
	}
	b.Clip = ClipRect(0, 0, 10, 11)
	if a == b {
		t.Error("states differing in clip must compare unequal")
	}
	c := a
	c.Space = SpaceScreen
	if a == c {
		t.Error("states differing in space must compare unequal")
	}
}

func TestHandleIsZero(t *testing.T) {
	if !TextureID(0).IsZero() || TextureID(1).IsZero() {
		t.Error("TextureID.IsZero() misreports")
	}
	if !MaterialID(0).IsZero() || MaterialID(5).IsZero() {
		t.Error("MaterialID.IsZero() misreports")
	}
	if !TargetID(0).IsZero() || TargetID(5).IsZero() {
		t.Error("TargetID.IsZero() misreports")
	}
}
