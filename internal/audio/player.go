package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

// NopPlayer discards all playback.
type NopPlayer struct{}

func (NopPlayer) Play(Track, float64, bool) error  { return nil }
func (NopPlayer) Pause(TrackID) error              { return nil }
func (NopPlayer) SetVolume(TrackID, float64) error { return nil }

var ErrNoAudioFile = errors.New("audio file not found")

var audioExtensions = []string{".mp3", ".ogg", ".wav", ".flac"}

// ExecPlayer plays each track with an external command line player (mpv
// flags). A paused track's process is stopped; resuming starts it again.
type ExecPlayer struct {
	command []string
	dir     string

	mu      sync.Mutex
	running map[TrackID]*process
	volume  map[TrackID]float64
}

type process struct {
	cmd  *exec.Cmd
	done chan struct{}
}

func (p *process) exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// NewExecPlayer returns a player running command (for example "mpv
// --no-video --really-quiet") on files named <track>.<ext> in dir.
func NewExecPlayer(command string, dir string) (*ExecPlayer, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, fmt.Errorf("audio player command is empty")
	}
	if _, err := exec.LookPath(fields[0]); err != nil {
		return nil, fmt.Errorf("audio player %q: %w", fields[0], err)
	}
	return &ExecPlayer{
		command: fields,
		dir:     dir,
		running: map[TrackID]*process{},
		volume:  map[TrackID]float64{},
	}, nil
}

func (p *ExecPlayer) Play(t Track, volume float64, fromStart bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume[t.ID] = volume
	if proc, ok := p.running[t.ID]; ok {
		if !fromStart && !proc.exited() {
			return nil
		}
		p.stop(t.ID)
	}

	file, err := p.fileFor(t.ID)
	if err != nil {
		return err
	}
	args := append([]string{}, p.command[1:]...)
	args = append(args, fmt.Sprintf("--volume=%d", int(math.Round(volume*100))))
	if t.Loop {
		args = append(args, "--loop=inf")
	}
	args = append(args, file)

	cmd := exec.Command(p.command[0], args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", t.ID, err)
	}
	proc := &process{cmd: cmd, done: make(chan struct{})}
	p.running[t.ID] = proc
	go func() {
		_ = cmd.Wait()
		close(proc.done)
	}()
	return nil
}

func (p *ExecPlayer) Pause(id TrackID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stop(id)
	return nil
}

// SetVolume records the level; a running process keeps its volume until the
// track is played again.
func (p *ExecPlayer) SetVolume(id TrackID, volume float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume[id] = volume
	return nil
}

// Close stops every running track.
func (p *ExecPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id := range p.running {
		p.stop(id)
	}
	return nil
}

func (p *ExecPlayer) stop(id TrackID) {
	proc, ok := p.running[id]
	if !ok {
		return
	}
	delete(p.running, id)
	if !proc.exited() {
		_ = proc.cmd.Process.Kill()
	}
}

func (p *ExecPlayer) fileFor(id TrackID) (string, error) {
	for _, ext := range audioExtensions {
		path := filepath.Join(p.dir, string(id)+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s in %s", ErrNoAudioFile, id, p.dir)
}
