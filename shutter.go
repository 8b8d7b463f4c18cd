package warp

// ShutterOffset selects how the shutter interval is positioned
// relative to the frame time.
type ShutterOffset int

const (
	// ShutterOffsetCentered opens the shutter half the duration before
	// the frame time and closes it half after.
	ShutterOffsetCentered ShutterOffset = iota

	// ShutterOffsetStart opens the shutter at the frame time.
	ShutterOffsetStart

	// ShutterOffsetEnd closes the shutter at the frame time.
	ShutterOffsetEnd

	// ShutterOffsetCustom opens the shutter at the frame time plus the
	// custom offset.
	ShutterOffsetCustom
)

// String returns the shutter offset name.
func (o ShutterOffset) String() string {
	switch o {
	case ShutterOffsetCentered:
		return "Centered"
	case ShutterOffsetStart:
		return "Start"
	case ShutterOffsetEnd:
		return "End"
	case ShutterOffsetCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// TimeRange is a closed interval of frame times.
type TimeRange struct {
	Min, Max float64
}

// ShutterConfig describes the motion-blur shutter: its duration in
// frames, how it is positioned relative to the frame time, and the
// offset used when the position is ShutterOffsetCustom. It exists only
// to derive a time range and is not retained beyond that.
type ShutterConfig struct {
	Duration     float64
	Offset       ShutterOffset
	CustomOffset float64
}

// Range returns the [open, close] time interval of the shutter around
// the given frame time. A non-positive duration yields the degenerate
// interval [time, time].
func (c ShutterConfig) Range(time float64) TimeRange {
	d := c.Duration
	if d <= 0 {
		return TimeRange{Min: time, Max: time}
	}
	switch c.Offset {
	case ShutterOffsetStart:
		return TimeRange{Min: time, Max: time + d}
	case ShutterOffsetEnd:
		return TimeRange{Min: time - d, Max: time}
	case ShutterOffsetCustom:
		return TimeRange{Min: time + c.CustomOffset, Max: time + c.CustomOffset + d}
	default:
		return TimeRange{Min: time - d/2, Max: time + d/2}
	}
}
