// Package ipc implements the newline-delimited JSON control protocol on the
// per-user unix socket. One request per connection.
package ipc

// Command names accepted on the wire.
const (
	CmdStatus       = "status"
	CmdNext         = "next"
	CmdPrev         = "prev"
	CmdSetWallpaper = "set_wallpaper"
	CmdSetMode      = "set_mode"
	CmdPause        = "pause"
	CmdResume       = "resume"
	CmdReload       = "reload"
	CmdQuit         = "quit"
)

// Request is a single protocol request line.
type Request struct {
	Command string `json:"command"`
	ID      string `json:"id,omitempty"`
	Mode    string `json:"mode,omitempty"`
}

// Response is a single protocol response line.
type Response struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func OK() Response {
	return Response{Status: "ok"}
}

func OKData(data any) Response {
	return Response{Status: "ok", Data: data}
}

func Error(message string) Response {
	return Response{Status: "error", Message: message}
}
