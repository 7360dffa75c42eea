package desktop

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/touchpad-gestures/gesturecli/types"
	"github.com/touchpad-gestures/gesturecli/utils"
)

type workspaceList struct {
	active int
	count  int
}

// parseWmctrlDesktops reads `wmctrl -d` output, where the active desktop is
// marked with '*' in the second column:
//
//	0  * DG: 1920x1080  VP: 0,0  WA: 0,27 1920x1053  Workspace 1
//	1  - DG: 1920x1080  VP: N/A  WA: 0,27 1920x1053  Workspace 2
func parseWmctrlDesktops(output string) (workspaceList, bool) {
	list := workspaceList{active: -1}

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		index, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		list.count++
		if fields[1] == "*" {
			list.active = index
		}
	}

	return list, list.active >= 0
}

func (h *Host) workspaces() (workspaceList, bool) {
	out, err := h.run("wmctrl", "-d")
	if err != nil {
		utils.Verbose("wmctrl -d failed: %v", err)
		return workspaceList{}, false
	}
	return parseWmctrlDesktops(string(out))
}

func (h *Host) ActiveWorkspace() (int, bool) {
	list, ok := h.workspaces()
	return list.active, ok
}

// NeighborWorkspace follows a horizontal workspace layout: at the edges and
// for vertical directions the workspace is its own neighbor.
func (h *Host) NeighborWorkspace(from int, dir types.Direction) (int, bool) {
	list, ok := h.workspaces()
	if !ok || from < 0 || from >= list.count {
		return 0, false
	}

	switch dir {
	case types.DirectionLeft:
		if from > 0 {
			return from - 1, true
		}
	case types.DirectionRight:
		if from+1 < list.count {
			return from + 1, true
		}
	}
	return from, true
}

func (h *Host) ActivateWorkspace(index int) bool {
	if _, err := h.run("wmctrl", "-s", strconv.Itoa(index)); err != nil {
		utils.Verbose("wmctrl -s %d failed: %v", index, err)
		return false
	}
	return true
}
