package source

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/touchpad-gestures/gesturecli/types"
	"github.com/touchpad-gestures/gesturecli/utils"
)

// Message types understood by Apply.
const (
	MessageGesture = "gesture"
	MessageBegin   = "begin"
	MessageUpdate  = "update"
	MessageEnd     = "end"
	MessageCancel  = "cancel"
)

// Message is one host event as sent over the JSON feed or the server.
//
//	{"type":"gesture","phase":"end","fingers":3,"dx":50,"dy":0}
//	{"type":"begin","points":4}
//	{"type":"update","progress":0.2}
//	{"type":"end","duration":250,"progress":0.6}
type Message struct {
	Type     string  `json:"type"`
	Phase    string  `json:"phase,omitempty"`
	Fingers  int     `json:"fingers,omitempty"`
	DX       float64 `json:"dx,omitempty"`
	DY       float64 `json:"dy,omitempty"`
	Time     float64 `json:"time,omitempty"`
	Points   int     `json:"points,omitempty"`
	Progress float64 `json:"progress,omitempty"`
	Duration float64 `json:"duration,omitempty"`
}

// Apply routes a message to the active source variant.
func (a *Adapter) Apply(m Message) error {
	switch m.Type {
	case MessageGesture:
		direct, ok := a.Direct()
		if !ok {
			return fmt.Errorf("%w: %s", ErrWrongSource, m.Type)
		}
		phase := types.PhaseEnd
		if m.Phase != "" {
			p, ok := types.ParsePhase(m.Phase)
			if !ok {
				return fmt.Errorf("invalid phase '%s'", m.Phase)
			}
			phase = p
		}
		direct.Deliver(phase, m.Fingers, m.DX, m.DY, m.Time)

	case MessageBegin, MessageUpdate, MessageEnd:
		tracked, ok := a.Tracked()
		if !ok {
			return fmt.Errorf("%w: %s", ErrWrongSource, m.Type)
		}
		switch m.Type {
		case MessageBegin:
			tracked.Begin(m.Points)
		case MessageUpdate:
			tracked.Update(m.Progress)
		case MessageEnd:
			tracked.End(m.Duration, m.Progress)
		}

	case MessageCancel:
		if direct, ok := a.Direct(); ok {
			direct.Cancel()
		}
		if tracked, ok := a.Tracked(); ok {
			tracked.Cancel()
		}

	default:
		return fmt.Errorf("unknown message type '%s'", m.Type)
	}
	return nil
}

// MaxMessageSize caps one JSON-lines message. Longer lines are skipped.
var MaxMessageSize = 1 << 20

type feedLine struct {
	data    []byte
	tooLong bool
}

// Feed reads newline-delimited JSON messages from r until EOF or ctx is done.
// Malformed, oversized and mismatched messages are skipped.
func (a *Adapter) Feed(ctx context.Context, r io.Reader) error {
	lines := make(chan feedLine)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		br := bufio.NewReader(r)
		for {
			data, tooLong, err := readLine(br, MaxMessageSize)
			if len(data) > 0 || tooLong {
				select {
				case lines <- feedLine{data: data, tooLong: tooLong}:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if err != io.EOF {
					readErr <- err
				}
				return
			}
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return fmt.Errorf("failed to read gesture feed: %w", err)
				default:
					return nil
				}
			}
			a.applyLine(line)
		}
	}
}

func (a *Adapter) applyLine(line feedLine) {
	if line.tooLong {
		utils.Warn("Ignoring message longer than %d bytes", MaxMessageSize)
		return
	}

	data := bytes.TrimSpace(line.data)
	if len(data) == 0 {
		return
	}

	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		utils.Verbose("Ignoring malformed message %s: %v", string(data), err)
		return
	}
	if err := a.Apply(m); err != nil {
		utils.Verbose("Ignoring message %s: %v", string(data), err)
	}
}

// readLine returns the next line of br. A line over limit bytes is drained
// and reported as tooLong with no data.
func readLine(br *bufio.Reader, limit int) ([]byte, bool, error) {
	var line []byte
	tooLong := false
	for {
		chunk, err := br.ReadSlice('\n')
		if !tooLong {
			if len(line)+len(chunk) > limit {
				tooLong = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		return line, tooLong, err
	}
}
