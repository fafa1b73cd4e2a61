// Package bus describes the audio and event buses a plugin exposes to the
// host.
package bus

// MediaType represents the type of bus
type MediaType int32

const (
	MediaTypeAudio MediaType = 0
	// MediaTypeEvent is a MIDI bus.
	MediaTypeEvent MediaType = 1
)

// Direction represents the bus direction
type Direction int32

const (
	DirectionInput  Direction = 0
	DirectionOutput Direction = 1
)

// Type represents the bus type
type Type int32

const (
	TypeMain Type = 0
	TypeAux  Type = 1
)

// Info contains bus configuration
type Info struct {
	MediaType    MediaType
	Direction    Direction
	ChannelCount int32
	Name         string
	BusType      Type
	IsActive     bool
}

// Configuration manages audio and event buses
type Configuration struct {
	audioBuses []Info
	eventBuses []Info
}

// NewGenerator creates the instrument configuration: no audio input, a
// stereo main output and one MIDI input.
func NewGenerator() *Configuration {
	return NewBuilder().
		WithStereoOutput("Stereo Out").
		WithEventInput("MIDI In").
		MustBuild()
}

// GetBusCount returns the number of buses for a given type and direction
func (c *Configuration) GetBusCount(mediaType MediaType, direction Direction) int32 {
	count := int32(0)
	for _, bus := range c.buses(mediaType) {
		if bus.Direction == direction {
			count++
		}
	}
	return count
}

// GetBusInfo returns information about a specific bus
func (c *Configuration) GetBusInfo(mediaType MediaType, direction Direction, index int32) *Info {
	buses := c.buses(mediaType)
	busIndex := int32(0)
	for i := range buses {
		if buses[i].Direction == direction {
			if busIndex == index {
				return &buses[i]
			}
			busIndex++
		}
	}
	return nil
}

func (c *Configuration) buses(mediaType MediaType) []Info {
	if mediaType == MediaTypeEvent {
		return c.eventBuses
	}
	return c.audioBuses
}

func (c *Configuration) mainOutput() *Info {
	for i := range c.audioBuses {
		b := &c.audioBuses[i]
		if b.Direction == DirectionOutput && b.BusType == TypeMain {
			return b
		}
	}
	return nil
}

// MainOutputChannels returns the negotiated channel count of the main
// output, or 0 when there is none.
func (c *Configuration) MainOutputChannels() int {
	if b := c.mainOutput(); b != nil {
		return int(b.ChannelCount)
	}
	return 0
}

// SupportsOutputLayout reports whether the main output may run with the
// given channel count. Only mono and stereo are offered.
func (c *Configuration) SupportsOutputLayout(channels int) bool {
	return channels == 1 || channels == 2
}

// SetMainOutputChannels applies a host-negotiated layout. It returns false
// and leaves the configuration unchanged for unsupported layouts.
func (c *Configuration) SetMainOutputChannels(channels int) bool {
	b := c.mainOutput()
	if b == nil || !c.SupportsOutputLayout(channels) {
		return false
	}
	b.ChannelCount = int32(channels)
	if channels == 1 {
		b.Name = "Mono Out"
	} else {
		b.Name = "Stereo Out"
	}
	return true
}

// AcceptsEvents reports whether the configuration has a MIDI input.
func (c *Configuration) AcceptsEvents() bool {
	return c.GetBusCount(MediaTypeEvent, DirectionInput) > 0
}

// ProducesEvents reports whether the configuration has a MIDI output.
func (c *Configuration) ProducesEvents() bool {
	return c.GetBusCount(MediaTypeEvent, DirectionOutput) > 0
}
