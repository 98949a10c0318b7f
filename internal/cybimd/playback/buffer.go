package playback

// BufferID addresses one of the engine's two video buffers
type BufferID int

const (
	// BufferA is the buffer that starts out active
	BufferA BufferID = iota
	// BufferB is the alternate buffer
	BufferB
)

// String returns the wire name of the buffer
func (b BufferID) String() string {
	if b == BufferB {
		return "B"
	}
	return "A"
}

// ParseBufferID converts a wire name back to a BufferID
func ParseBufferID(s string) (BufferID, bool) {
	switch s {
	case "A":
		return BufferA, true
	case "B":
		return BufferB, true
	}
	return BufferA, false
}

func otherBuffer(b BufferID) BufferID {
	if b == BufferA {
		return BufferB
	}
	return BufferA
}

// bufferState tracks where a video buffer is in its load/play cycle
type bufferState int

const (
	// bufferIdle means the buffer holds no source
	bufferIdle bufferState = iota
	// bufferLoading means a source is bound and decoding
	bufferLoading
	// bufferReady means the source can start playing without delay
	bufferReady
	// bufferPlaying means the buffer is the visible video output
	bufferPlaying
)

// slot is the engine's bookkeeping for one video buffer. The session
// field records which playback session bound the source, so events
// arriving after a stop or restart are recognized as stale.
type slot struct {
	state   bufferState
	source  string
	session uint64
}
