package melty

const midiChannels = 16

// Controller numbers.
const (
	ccBankSelect       = 0x00
	ccModulation       = 0x01
	ccVolume           = 0x07
	ccPan              = 0x0A
	ccExpression       = 0x0B
	ccModulationFine   = 0x21
	ccVolumeFine       = 0x27
	ccPanFine          = 0x2A
	ccExpressionFine   = 0x2B
	ccHoldPedal        = 0x40
	ccReverbSend       = 0x5B
	ccChorusSend       = 0x5D
	ccResetControllers = 0x79
)

// retained is the set of controllers a rebuilt synthesizer gets back.
var retained = [128]bool{
	ccBankSelect:     true,
	ccModulation:     true,
	ccVolume:         true,
	ccPan:            true,
	ccExpression:     true,
	ccModulationFine: true,
	ccVolumeFine:     true,
	ccPanFine:        true,
	ccExpressionFine: true,
	ccHoldPedal:      true,
	ccReverbSend:     true,
	ccChorusSend:     true,
}

// channelState is what one MIDI channel has been told since the engine was
// created. Negative values are unset.
type channelState struct {
	controls [128]int16
	program  int16
	bend     int16
}

func (c *channelState) reset() {
	for i := range c.controls {
		c.controls[i] = -1
	}
	c.program = -1
	c.bend = -1
}

func (c *channelState) control(controller, value int) {
	if controller < 0 || controller >= len(c.controls) {
		return
	}
	if controller == ccResetControllers {
		// Matches what the synthesizer clears; bank, volume, pan and sends survive
		for _, cc := range []int{ccModulation, ccModulationFine, ccExpression, ccExpressionFine, ccHoldPedal} {
			c.controls[cc] = -1
		}
		c.bend = -1
		return
	}
	if retained[controller] {
		c.controls[controller] = int16(value & 0x7F)
	}
}
