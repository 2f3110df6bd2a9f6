//go:build tinygo && baremetal

package hal

import "machine"

type serialLogger struct {
	s machine.Serialer
}

func (l *serialLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.s.WriteByte(s[i])
	}
	l.s.WriteByte('\r')
	l.s.WriteByte('\n')
}

func (l *serialLogger) WriteLineBytes(b []byte) {
	l.s.Write(b)
	l.s.WriteByte('\r')
	l.s.WriteByte('\n')
}

type pinLED struct {
	pin machine.Pin
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }
