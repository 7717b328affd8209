package input

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestApplyBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes string
		want  Input
	}{
		{"left letter", "a", Input{Left: true}},
		{"right arrow", "\x1b[C", Input{Right: true}},
		{"left arrow", "\x1b[D", Input{Left: true}},
		{"up arrow fires", "\x1b[A", Input{Space: true}},
		{"space", " ", Input{Space: true}},
		{"restart", "R", Input{Restart: true}},
		{"quit", "q", Input{Quit: true}},
		{"ctrl-c quits", "\x03", Input{Quit: true}},
		{"bare escape", "\x1b", Input{Escape: true}},
		{"enter", "\r", Input{Enter: true}},
		{"combination", "d \x1b[D", Input{Left: true, Right: true, Space: true}},
		{"unknown", "z", Input{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var state keyState
			now := time.Now()
			applyBytes(&state, []byte(tt.bytes), now)
			if got := state.at(now); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestKeysReleaseAfterHold(t *testing.T) {
	var state keyState
	now := time.Now()
	applyBytes(&state, []byte("a"), now)

	if !state.at(now.Add(keyHoldDuration / 2)).Left {
		t.Error("key should still be held")
	}
	if state.at(now.Add(keyHoldDuration)).Left {
		t.Error("key should be released after the hold duration")
	}
}

func TestMoveIntent(t *testing.T) {
	tests := []struct {
		in   Input
		want int
	}{
		{Input{}, 0},
		{Input{Left: true}, -1},
		{Input{Right: true}, 1},
		{Input{Left: true, Right: true}, 0},
	}
	for _, tt := range tests {
		if got := tt.in.MoveIntent(); got != tt.want {
			t.Errorf("%+v: got %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestStreamReadsAndCloses(t *testing.T) {
	s := StartStream(strings.NewReader("d"))

	var pressed []byte
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		in := ReadInput(s)
		pressed = append(pressed, in.Pressed...)
		if in.Closed {
			break
		}
		time.Sleep(time.Millisecond)
	}

	if string(pressed) != "d" {
		t.Errorf("expected to read %q, got %q", "d", pressed)
	}
	if !ReadInput(s).Closed {
		t.Error("stream should report the closed reader")
	}
}

// endless never runs out of key presses.
type endless struct{}

func (endless) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 'd'
	}
	return len(p), nil
}

func TestCloseStopsUndrainedStream(t *testing.T) {
	s := StartStream(endless{})
	time.Sleep(10 * time.Millisecond) // Let the buffer fill
	s.Close()
	s.Close() // Closing twice is fine

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-s.ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("reader goroutine did not stop after Close")
		}
	}
}

func TestResetKeyInput(t *testing.T) {
	s := &Stream{ch: make(chan byte)}
	applyBytes(&s.state, []byte(" "), time.Now())
	ResetKeyInput(s)
	if ReadInput(s).Space {
		t.Error("reset should release held keys")
	}
}
