// Package workspace forwards compositor workspace switches to the engine.
// It reads Hyprland's event socket; running without Hyprland just disables
// workspace mode.
package workspace

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"wallshift/internal/engine"
)

// eventSocket locates Hyprland's event socket for the current instance.
func eventSocket() (string, error) {
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	sig := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")
	if runtimeDir == "" || sig == "" {
		return "", fmt.Errorf("hyprland environment not present")
	}
	return filepath.Join(runtimeDir, "hypr", sig, ".socket2.sock"), nil
}

// Listen connects to the compositor event socket and pushes a
// WorkspaceChangedCmd for every workspace switch until the context is done.
func Listen(ctx context.Context, cmds chan<- engine.Command) {
	sock, err := eventSocket()
	if err != nil {
		log.Info("workspace events disabled", "reason", err)
		return
	}

	conn, err := net.Dial("unix", sock)
	if err != nil {
		log.Warn("cannot connect to compositor event socket", "path", sock, "err", err)
		return
	}
	defer conn.Close()
	log.Info("listening for workspace events", "path", sock)

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		id, ok := parseWorkspaceEvent(scanner.Text())
		if !ok {
			continue
		}
		select {
		case cmds <- engine.WorkspaceChangedCmd{ID: id}:
		case <-ctx.Done():
			return
		case <-time.After(time.Second):
			log.Warn("engine busy, dropping workspace event", "workspace", id)
		}
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		log.Warn("workspace event stream ended", "err", err)
	}
}

// parseWorkspaceEvent extracts the workspace number from a Hyprland event
// line ("workspace>>3" or "workspacev2>>3,name"). Special workspaces have
// negative ids and are ignored.
func parseWorkspaceEvent(line string) (int, bool) {
	event, data, found := strings.Cut(line, ">>")
	if !found {
		return 0, false
	}

	switch event {
	case "workspace":
	case "workspacev2":
		data, _, _ = strings.Cut(data, ",")
	default:
		return 0, false
	}

	id, err := strconv.Atoi(strings.TrimSpace(data))
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
