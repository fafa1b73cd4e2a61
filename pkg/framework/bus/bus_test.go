package bus

import "testing"

func TestGenerator(t *testing.T) {
	c := NewGenerator()

	if got := c.GetBusCount(MediaTypeAudio, DirectionInput); got != 0 {
		t.Errorf("audio inputs = %d, want 0", got)
	}
	if got := c.GetBusCount(MediaTypeAudio, DirectionOutput); got != 1 {
		t.Errorf("audio outputs = %d, want 1", got)
	}
	if !c.AcceptsEvents() {
		t.Error("generator should accept MIDI")
	}
	if c.ProducesEvents() {
		t.Error("generator should not produce MIDI")
	}
	if got := c.MainOutputChannels(); got != 2 {
		t.Errorf("MainOutputChannels() = %d, want 2", got)
	}

	info := c.GetBusInfo(MediaTypeEvent, DirectionInput, 0)
	if info == nil || info.Name != "MIDI In" || info.ChannelCount != 16 {
		t.Errorf("event input = %+v", info)
	}
	if c.GetBusInfo(MediaTypeAudio, DirectionOutput, 1) != nil {
		t.Error("expected no second output bus")
	}
}

func TestSupportsOutputLayout(t *testing.T) {
	c := NewGenerator()

	tests := []struct {
		channels int
		want     bool
	}{
		{0, false},
		{1, true},
		{2, true},
		{6, false},
	}
	for _, tt := range tests {
		if got := c.SupportsOutputLayout(tt.channels); got != tt.want {
			t.Errorf("SupportsOutputLayout(%d) = %v, want %v", tt.channels, got, tt.want)
		}
	}
}

func TestSetMainOutputChannels(t *testing.T) {
	c := NewGenerator()

	if !c.SetMainOutputChannels(1) {
		t.Fatal("mono layout rejected")
	}
	if c.MainOutputChannels() != 1 {
		t.Errorf("MainOutputChannels() = %d, want 1", c.MainOutputChannels())
	}
	if name := c.GetBusInfo(MediaTypeAudio, DirectionOutput, 0).Name; name != "Mono Out" {
		t.Errorf("bus name = %q", name)
	}

	if c.SetMainOutputChannels(8) {
		t.Error("7.1 layout accepted")
	}
	if c.MainOutputChannels() != 1 {
		t.Error("rejected layout changed the bus")
	}
}

func TestBuilderValidate(t *testing.T) {
	tests := []struct {
		name    string
		builder *Builder
		wantErr bool
	}{
		{"generator", NewBuilder().WithStereoOutput("Out").WithEventInput("MIDI In"), false},
		{"midi only", NewBuilder().WithEventInput("In"), true},
		{"zero channels", NewBuilder().WithAudioOutput("Out", 0), true},
		{"too many channels", NewBuilder().WithAudioOutput("Out", MaxChannels+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			if (err != nil) != tt.wantErr {
				t.Errorf("Build() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMustBuildPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustBuild() did not panic")
		}
	}()
	NewBuilder().MustBuild()
}
