package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/touchpad-gestures/gesturecli/types"
	"github.com/touchpad-gestures/gesturecli/utils"
)

// LibinputCommand is the host signal used for direct-phase gestures on Linux.
var LibinputCommand = []string{"libinput", "debug-events"}

// libinput debug-events lines look like:
//
//	-event7   GESTURE_SWIPE_BEGIN     +1.822s	3
//	 event7   GESTURE_SWIPE_UPDATE    +1.830s	3  5.20/ 0.00 ( 6.10/ 0.00 unaccelerated)
//	 event7   GESTURE_SWIPE_END       +2.010s	3 cancelled
var (
	gestureLineRe = regexp.MustCompile(`GESTURE_(SWIPE|HOLD)_(BEGIN|UPDATE|END)\s+\+?(\d+(?:\.\d+)?)s\s+(\d+)(.*)$`)
	deltaRe       = regexp.MustCompile(`^\s*(-?\d+(?:\.\d+)?)/\s*(-?\d+(?:\.\d+)?)`)
)

type libinputEvent struct {
	gesture   string
	phase     types.Phase
	time      float64
	fingers   int
	dx, dy    float64
	cancelled bool
}

func parseLibinputLine(line string) (libinputEvent, bool) {
	m := gestureLineRe.FindStringSubmatch(line)
	if m == nil {
		return libinputEvent{}, false
	}

	ev := libinputEvent{gesture: m[1]}
	switch m[2] {
	case "BEGIN":
		ev.phase = types.PhaseBegin
	case "UPDATE":
		ev.phase = types.PhaseUpdate
	default:
		ev.phase = types.PhaseEnd
	}

	ev.time, _ = strconv.ParseFloat(m[3], 64)
	ev.fingers, _ = strconv.Atoi(m[4])

	rest := m[5]
	if ev.phase == types.PhaseUpdate {
		d := deltaRe.FindStringSubmatch(rest)
		if d == nil {
			return libinputEvent{}, false
		}
		ev.dx, _ = strconv.ParseFloat(d[1], 64)
		ev.dy, _ = strconv.ParseFloat(d[2], 64)
	}
	ev.cancelled = strings.Contains(rest, "cancelled")

	return ev, true
}

type libinputSession struct {
	gesture string
	fingers int
	dx, dy  float64
}

// LibinputReader follows `libinput debug-events` and delivers one end sample
// per completed swipe or hold, with the summed displacement of the session.
type LibinputReader struct {
	source  *DirectPhaseSource
	command []string
	current *libinputSession
}

func NewLibinputReader(source *DirectPhaseSource) *LibinputReader {
	return &LibinputReader{source: source, command: LibinputCommand}
}

// LibinputAvailable reports whether the libinput tool is on PATH.
func LibinputAvailable() bool {
	_, err := exec.LookPath(LibinputCommand[0])
	return err == nil
}

// Run starts libinput and consumes its output until it exits or ctx is done.
func (r *LibinputReader) Run(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, r.command[0], r.command[1:]...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", strings.Join(r.command, " "), err)
	}
	utils.Info("Reading gestures from %s (pid %d)", strings.Join(r.command, " "), cmd.Process.Pid)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		sc := bufio.NewScanner(stderr)
		for sc.Scan() {
			utils.Verbose("[libinput] %s", sc.Text())
		}
	}()

	consumeErr := r.Consume(stdout)
	if consumeErr != nil {
		_ = cmd.Process.Kill()
	}
	// all reads must finish before Wait closes the pipes
	wg.Wait()

	if err := cmd.Wait(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("libinput exited: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return consumeErr
}

// Consume reads debug-events output from rd until EOF.
func (r *LibinputReader) Consume(rd io.Reader) error {
	sc := bufio.NewScanner(rd)
	for sc.Scan() {
		r.handleLine(sc.Text())
	}
	return sc.Err()
}

func (r *LibinputReader) handleLine(line string) {
	ev, ok := parseLibinputLine(line)
	if !ok {
		return
	}

	switch ev.phase {
	case types.PhaseBegin:
		r.current = &libinputSession{gesture: ev.gesture, fingers: ev.fingers}
		r.source.Deliver(types.PhaseBegin, ev.fingers, 0, 0, ev.time)

	case types.PhaseUpdate:
		if r.current == nil || r.current.gesture != ev.gesture {
			return
		}
		r.current.dx += ev.dx
		r.current.dy += ev.dy
		r.source.Deliver(types.PhaseUpdate, ev.fingers, ev.dx, ev.dy, ev.time)

	case types.PhaseEnd:
		session := r.current
		r.current = nil
		if session == nil || session.gesture != ev.gesture {
			return
		}
		if ev.cancelled {
			utils.Verbose("%d-finger %s cancelled", session.fingers, strings.ToLower(session.gesture))
			r.source.Cancel()
			return
		}
		r.source.Deliver(types.PhaseEnd, session.fingers, session.dx, session.dy, ev.time)
	}
}
