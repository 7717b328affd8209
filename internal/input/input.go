package input

import (
	"bufio"
	"io"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals send no key-up events, so a held key is seen through auto-repeat.
const keyHoldDuration = 60 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Space   bool
	Enter   bool
	Escape  bool
	Restart bool
	Closed  bool   // The underlying reader has ended
	Pressed []byte // Raw bytes read this frame
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit    time.Time
	left    time.Time
	right   time.Time
	space   time.Time
	enter   time.Time
	escape  time.Time
	restart time.Time
}

// Stream delivers input bytes via a channel and tracks key state so held keys
// stay active between auto-repeats.
type Stream struct {
	ch     chan byte
	done   chan struct{}
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine ends when r fails or the stream is closed.
func StartStream(r io.Reader) *Stream {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	s := &Stream{ch: make(chan byte, 128), done: make(chan struct{})}
	go func() {
		defer close(s.ch)
		for {
			b, err := br.ReadByte()
			if err != nil {
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// Close stops delivering bytes. A reader blocked in Read stays blocked until
// it returns, but no longer waits on the consumer.
func (s *Stream) Close() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

// ReadInput drains all available bytes from the stream without blocking.
func ReadInput(s *Stream) Input {
	now := time.Now()
	var buf []byte

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	applyBytes(&s.state, buf, now)
	in := s.state.at(now)
	in.Pressed = buf
	in.Closed = s.closed
	return in
}

// ResetKeyInput forgets held keys, so a key held across a screen change does
// not trigger the next screen.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

// applyBytes parses raw terminal bytes, including arrow key escape sequences,
// and stamps the keys they press.
func applyBytes(state *keyState, buf []byte, now time.Time) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			// CSI sequence: ESC [ <code>
			switch buf[i+2] {
			case 'C': // Right arrow
				state.right = now
			case 'D': // Left arrow
				state.left = now
			case 'A': // Up arrow fires
				state.space = now
			}
			i += 2
			continue
		}

		applyByteToState(state, b, now)
	}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03': // Ctrl-C arrives as a byte in raw mode
		state.quit = now
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case ' ', 'w', 'W', 'k', 'K':
		state.space = now
	case 'r', 'R':
		state.restart = now
	case '\n', '\r':
		state.enter = now
	case '\x1b':
		state.escape = now
	}
}

// at reports the keys seen within the hold duration before now.
func (s *keyState) at(now time.Time) Input {
	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }
	return Input{
		Quit:    held(s.quit),
		Left:    held(s.left),
		Right:   held(s.right),
		Space:   held(s.space),
		Enter:   held(s.enter),
		Escape:  held(s.escape),
		Restart: held(s.restart),
	}
}

// MoveIntent converts held direction keys into -1, 0 or 1.
func (in Input) MoveIntent() int {
	switch {
	case in.Left && !in.Right:
		return -1
	case in.Right && !in.Left:
		return 1
	default:
		return 0
	}
}
