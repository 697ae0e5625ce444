package app

import (
	"github.com/llehouerou/loopdeck/internal/protocol"
	"github.com/llehouerou/loopdeck/internal/transport"
)

// TransportState is the control side's view of the engine.
type TransportState struct {
	Playing      bool
	CurrentFrame int
	NumFrames    int
}

// Apply folds a position report into the state. Applying the same report
// twice gives the same state.
func (s *TransportState) Apply(pos protocol.TransportPos) {
	s.CurrentFrame = s.clamp(pos.Frame)
}

func (s *TransportState) clamp(frame int) int {
	return min(max(frame, 0), max(s.NumFrames, 0))
}

// defaultLoop is the initial loop region: the whole stream minus tail
// frames at the end. A tail that would leave nothing loops the whole stream.
func defaultLoop(numFrames, tail int) protocol.SetLoop {
	tail = max(tail, 0)
	if tail >= numFrames {
		return protocol.SetLoop{Start: 0, End: numFrames}
	}
	return protocol.SetLoop{Start: 0, End: numFrames - tail}
}

func regionOf(l protocol.SetLoop) *transport.Region {
	if l.Empty() {
		return nil
	}
	return &transport.Region{Start: l.Start, End: l.End}
}
