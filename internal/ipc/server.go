package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"wallshift/internal/engine"
	"wallshift/internal/types"
)

const (
	// sendTimeout bounds pushing a command into a full channel.
	sendTimeout = 2 * time.Second
	// replyTimeout bounds waiting for the engine to fulfill a reply slot.
	replyTimeout = 5 * time.Second
	// connTimeout bounds a whole connection: one request line in, one
	// response line out.
	connTimeout = 10 * time.Second
)

// Server accepts one-shot connections on the control socket and translates
// each request into an engine command.
type Server struct {
	path string
	cmds chan<- engine.Command
}

func NewServer(path string, cmds chan<- engine.Command) *Server {
	return &Server{path: path, cmds: cmds}
}

// Serve listens until the context is canceled, then stops accepting and
// removes the socket file. Connections already accepted get their bounded
// reply wait; the listener itself shuts down immediately.
func (s *Server) Serve(ctx context.Context) error {
	// a stale socket from a crashed daemon blocks the listen
	if _, err := os.Stat(s.path); err == nil {
		_ = os.Remove(s.path)
	}

	listener, err := net.Listen("unix", s.path)
	if err != nil {
		return fmt.Errorf("listen on control socket: %w", err)
	}
	defer os.Remove(s.path)
	log.Info("control socket listening", "path", s.path)

	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				log.Info("control socket shutting down")
				return nil
			default:
			}
			log.Warn("control socket accept failed", "err", err)
			continue
		}
		go s.handleConn(ctx, conn)
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(connTimeout))

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil && line == "" {
		log.Warn("control connection read failed", "err", err)
		return
	}

	var req Request
	if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &req); err != nil {
		// malformed requests never reach the engine
		s.writeResponse(conn, Error(fmt.Sprintf("invalid request: %v", err)))
		return
	}

	s.writeResponse(conn, s.dispatch(ctx, req))
}

func (s *Server) writeResponse(conn net.Conn, resp Response) {
	payload, err := json.Marshal(resp)
	if err != nil {
		log.Error("failed to marshal response", "err", err)
		return
	}
	payload = append(payload, '\n')
	if _, err := conn.Write(payload); err != nil {
		log.Warn("control connection write failed", "err", err)
	}
}

// dispatch translates one request into an engine command and, for request/
// response commands, waits for the reply with a bound so a stalled engine
// yields an error rather than a hung client.
func (s *Server) dispatch(ctx context.Context, req Request) Response {
	switch req.Command {
	case CmdStatus:
		cmd := engine.NewStatusCmd()
		if !s.send(ctx, cmd) {
			return Error("engine unavailable")
		}
		select {
		case status := <-cmd.Reply:
			return OKData(status)
		case <-time.After(replyTimeout):
			return Error("engine dropped response")
		case <-ctx.Done():
			return Error("engine dropped response")
		}

	case CmdSetWallpaper:
		if req.ID == "" {
			return Error("set_wallpaper requires an id")
		}
		cmd := engine.NewSetWallpaperCmd(req.ID)
		if !s.send(ctx, cmd) {
			return Error("engine unavailable")
		}
		select {
		case err := <-cmd.Reply:
			if err != nil {
				return Error(err.Error())
			}
			return OK()
		case <-time.After(replyTimeout):
			return Error("engine dropped response")
		case <-ctx.Done():
			return Error("engine dropped response")
		}

	case CmdSetMode:
		mode, err := types.ParseDisplayMode(req.Mode)
		if err != nil {
			return Error(err.Error())
		}
		return s.fireAndForget(ctx, engine.SetModeCmd{Mode: mode})

	case CmdNext:
		return s.fireAndForget(ctx, engine.NextCmd{})
	case CmdPrev:
		return s.fireAndForget(ctx, engine.PrevCmd{})
	case CmdPause:
		return s.fireAndForget(ctx, engine.PauseCmd{})
	case CmdResume:
		return s.fireAndForget(ctx, engine.ResumeCmd{})
	case CmdReload:
		return s.fireAndForget(ctx, engine.ReloadCmd{})
	case CmdQuit:
		return s.fireAndForget(ctx, engine.QuitCmd{})

	default:
		return Error(fmt.Sprintf("unknown command: %q", req.Command))
	}
}

func (s *Server) fireAndForget(ctx context.Context, cmd engine.Command) Response {
	if !s.send(ctx, cmd) {
		return Error("engine unavailable")
	}
	return OK()
}

func (s *Server) send(ctx context.Context, cmd engine.Command) bool {
	select {
	case s.cmds <- cmd:
		return true
	case <-ctx.Done():
		return false
	case <-time.After(sendTimeout):
		return false
	}
}
