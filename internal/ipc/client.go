package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"time"

	"wallshift/internal/paths"
)

const dialTimeout = 2 * time.Second

// Send connects to the daemon, writes one request line, and reads the
// response line. Used by the CLI subcommands.
func Send(req Request) (*Response, error) {
	return SendTo(paths.SocketPath(), req)
}

// SendTo is Send against an explicit socket path.
func SendTo(path string, req Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", path, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("connect to daemon: %w (is it running?)", err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(connTimeout))

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	payload = append(payload, '\n')
	if _, err := conn.Write(payload); err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil && line == "" {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &resp, nil
}

// Err converts an error response into a Go error; nil for ok responses.
func (r *Response) Err() error {
	if r.Status == "error" {
		return fmt.Errorf("daemon error: %s", r.Message)
	}
	return nil
}
