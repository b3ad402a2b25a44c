package sensor

// Sensor exposes the raw optical sample stream of a PPG front end.
// Available reports whether at least one unread sample pair is buffered;
// ReadRed/ReadIR return the current pair and Advance moves to the next one.
type Sensor interface {
	Available() bool
	ReadRed() uint32
	ReadIR() uint32
	Advance()
}

// Battery reports the current charge level in percent [0,100].
type Battery interface {
	ReadLevel() float64
}
