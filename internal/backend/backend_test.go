package backend

import (
	"context"
	"errors"
	"strings"
	"testing"

	"wallshift/internal/config"
)

type call struct {
	name string
	args []string
}

func recordingRunner(calls *[]call) runnerFunc {
	return func(_ context.Context, name string, args ...string) error {
		*calls = append(*calls, call{name: name, args: args})
		return nil
	}
}

func TestNewSelectsConfiguredBackend(t *testing.T) {
	cases := []struct {
		backend string
		want    string
		wantErr bool
	}{
		{backend: "hyprpaper", want: "hyprpaper"},
		{backend: "swww", want: "swww"},
		{backend: "feh", wantErr: true},
	}

	for _, tc := range cases {
		cfg := &config.Config{}
		cfg.General.Backend = tc.backend
		b, err := New(cfg)
		if tc.wantErr {
			if err == nil {
				t.Errorf("New(%q) expected error", tc.backend)
			}
			continue
		}
		if err != nil {
			t.Fatalf("New(%q) failed: %v", tc.backend, err)
		}
		if b.Name() != tc.want {
			t.Errorf("Name() = %q, want %q", b.Name(), tc.want)
		}
	}
}

func TestHyprpaperAllOutputs(t *testing.T) {
	var calls []call
	h := &Hyprpaper{run: recordingRunner(&calls)}

	if err := h.SetWallpaperAll(context.Background(), "/data/w/abc.jpg"); err != nil {
		t.Fatalf("SetWallpaperAll failed: %v", err)
	}
	if len(calls) != 3 {
		t.Fatalf("got %d hyprctl calls, want 3", len(calls))
	}

	wallpaper := calls[1]
	if got := strings.Join(wallpaper.args, " "); got != "hyprpaper wallpaper ,/data/w/abc.jpg" {
		t.Errorf("wallpaper call = %q", got)
	}
	if got := strings.Join(calls[2].args, " "); got != "hyprpaper unload all" {
		t.Errorf("unload call = %q", got)
	}
}

func TestHyprpaperSpecificMonitor(t *testing.T) {
	var calls []call
	h := &Hyprpaper{run: recordingRunner(&calls)}

	if err := h.SetWallpaper(context.Background(), "/data/w/abc.jpg", "DP-1"); err != nil {
		t.Fatalf("SetWallpaper failed: %v", err)
	}
	if got := strings.Join(calls[1].args, " "); got != "hyprpaper wallpaper DP-1,/data/w/abc.jpg" {
		t.Errorf("wallpaper call = %q", got)
	}
}

func TestHyprpaperStopsOnPreloadFailure(t *testing.T) {
	var calls []call
	boom := errors.New("hyprctl exploded")
	h := &Hyprpaper{run: func(_ context.Context, name string, args ...string) error {
		calls = append(calls, call{name: name, args: args})
		return boom
	}}

	err := h.SetWallpaperAll(context.Background(), "/data/w/abc.jpg")
	if !errors.Is(err, boom) {
		t.Fatalf("expected runner error, got %v", err)
	}
	if len(calls) != 1 {
		t.Errorf("got %d calls after failure, want 1", len(calls))
	}
}

func TestSwwwArgs(t *testing.T) {
	var calls []call
	s := NewSwww(config.TransitionConfig{Type: "wipe", Duration: 1.5, FPS: 30})
	s.run = recordingRunner(&calls)

	if err := s.SetWallpaperAll(context.Background(), "/data/w/abc.jpg"); err != nil {
		t.Fatalf("SetWallpaperAll failed: %v", err)
	}
	want := "img /data/w/abc.jpg --transition-type wipe --transition-duration 1.5 --transition-fps 30"
	if got := strings.Join(calls[0].args, " "); got != want {
		t.Errorf("swww args = %q, want %q", got, want)
	}

	calls = nil
	if err := s.SetWallpaper(context.Background(), "/data/w/abc.jpg", "DP-2"); err != nil {
		t.Fatalf("SetWallpaper failed: %v", err)
	}
	if got := strings.Join(calls[0].args, " "); !strings.HasSuffix(got, "--outputs DP-2") {
		t.Errorf("swww args missing outputs flag: %q", got)
	}
}
