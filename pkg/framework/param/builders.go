package param

// LevelParameter is a [0, 1] level shown as a percentage.
func LevelParameter(id uint32, key, name string, defaultVal float64) *Builder {
	return New(id, key, name).
		Range(0, 1).
		Default(defaultVal).
		Unit("%").
		Formatter(PercentFormatter, PercentParser)
}

// VoicesParameter is an integer voice count.
func VoicesParameter(id uint32, key, name string, min, max, defaultVal int) *Builder {
	return New(id, key, name).
		Integer(min, max).
		Default(float64(defaultVal)).
		Formatter(VoicesFormatter, VoicesParser)
}

// SwitchParameter is an on/off toggle.
func SwitchParameter(id uint32, key, name string, on bool) *Builder {
	b := New(id, key, name).
		Toggle().
		Formatter(OnOffFormatter, OnOffParser)
	if on {
		b.Default(1)
	}
	return b
}
