package notify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// BellSound is played when a focus session completes.
const BellSound = "bell.mp3"

var ErrNoPlayer = errors.New("notify: no audio player available")

// PlaybackError is a soft failure: the caller reports it and carries on.
type PlaybackError struct {
	Sound string
	Err   error
}

func (e *PlaybackError) Error() string {
	return fmt.Sprintf("notify: play %s: %v", e.Sound, e.Err)
}

func (e *PlaybackError) Unwrap() error { return e.Err }

type SoundPlayer interface {
	Play(ctx context.Context, name string) error
}

type NoopSoundPlayer struct{}

func (NoopSoundPlayer) Play(context.Context, string) error { return nil }

// ExecSoundPlayer resolves names against Dir and hands the file to the first
// player binary found on PATH. Playback runs in the background.
type ExecSoundPlayer struct {
	Dir      string
	LookPath func(string) (string, error)
	Start    func(ctx context.Context, bin string, args ...string) error
}

func NewExecSoundPlayer(dir string) *ExecSoundPlayer {
	return &ExecSoundPlayer{Dir: dir}
}

func (p *ExecSoundPlayer) Play(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) {
		return &PlaybackError{Sound: name, Err: fmt.Errorf("invalid sound name %q", name)}
	}
	path := filepath.Join(p.Dir, name)
	if _, err := os.Stat(path); err != nil {
		return &PlaybackError{Sound: name, Err: err}
	}
	lookPath := p.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	for _, candidate := range playerCandidates(runtime.GOOS) {
		bin, err := lookPath(candidate.bin)
		if err != nil {
			continue
		}
		args := append(append([]string{}, candidate.args...), path)
		if err := p.start(ctx, bin, args...); err != nil {
			return &PlaybackError{Sound: name, Err: err}
		}
		return nil
	}
	return &PlaybackError{Sound: name, Err: ErrNoPlayer}
}

func (p *ExecSoundPlayer) start(ctx context.Context, bin string, args ...string) error {
	if p.Start != nil {
		return p.Start(ctx, bin, args...)
	}
	cmd := exec.Command(bin, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

type playerCandidate struct {
	bin  string
	args []string
}

func playerCandidates(goos string) []playerCandidate {
	if goos == "darwin" {
		return []playerCandidate{{bin: "afplay"}}
	}
	return []playerCandidate{
		{bin: "paplay"},
		{bin: "ffplay", args: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
		{bin: "mpg123", args: []string{"-q"}},
		{bin: "aplay", args: []string{"-q"}},
	}
}
