package cmd

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	godaemon "github.com/sevlyar/go-daemon"
	"github.com/spf13/cobra"

	"wallshift/internal/config"
	"wallshift/internal/daemon"
	"wallshift/internal/ipc"
	"wallshift/internal/paths"
)

func NewStartCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "start",
		Short: "Start the wallshift daemon",
		Run: func(cmd *cobra.Command, args []string) {
			background, _ := cmd.Flags().GetBool("background")
			StartDaemon(background)
		},
	}
	c.Flags().BoolP("background", "b", false, "Run as a daemon")
	return c
}

// StartDaemon runs the daemon in the foreground, or forks into the
// background first when asked.
func StartDaemon(background bool) {
	log.Debugf("StartDaemon() in PID %d", os.Getpid())

	if _, err := ipc.Send(ipc.Request{Command: ipc.CmdStatus}); err == nil {
		log.Info("wallshift is already running, exiting")
		return
	}

	p, err := paths.New()
	if err != nil {
		log.Fatalf("Error resolving directories: %v", err)
	}
	if err := p.EnsureDirs(); err != nil {
		log.Fatalf("Error creating directories: %v", err)
	}

	if background {
		dctx := &godaemon.Context{
			PidFileName: filepath.Join(p.DataDir, "wallshift.pid"),
			PidFilePerm: 0644,
			Umask:       027,
		}

		child, err := dctx.Reborn()
		if err != nil {
			log.Fatalf("Failed to daemonize: %v", err)
		}
		if child != nil {
			log.Infof("wallshift started in background, PID %d", child.Pid)
			return
		}
		defer dctx.Release()

		setupRotatingLogger(p)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	d, err := daemon.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize daemon: %v", err)
	}
	if err := d.Run(context.Background()); err != nil {
		log.Fatalf("Daemon exited with error: %v", err)
	}
}

func setupRotatingLogger(p *paths.Paths) {
	logPath := p.LogFile()

	writer, err := rotatelogs.New(
		logPath+".%Y%m%d%H%M",
		rotatelogs.WithLinkName(logPath),
		rotatelogs.WithMaxAge(7*24*time.Hour),
		rotatelogs.WithRotationSize(10*1024*1024),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		log.Fatalf("failed to configure log rotation: %v", err)
	}

	log.SetOutput(writer)
	log.SetLevel(log.InfoLevel)
}
