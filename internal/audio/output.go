package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	"github.com/gopxl/beep"
)

const (
	bufferDuration = 50 * time.Millisecond
	bytesPerFrame  = 4 // stereo s16le
)

// Sentinel errors
var (
	ErrNoAudioBackend = errors.New("no compatible audio backend found")
	ErrPipeClosed     = errors.New("audio pipe closed")
)

// Backend describes a CLI tool that plays raw PCM from stdin.
type Backend struct {
	Name string
	Path string
	Args []string
}

// DetectBackend searches PATH for a supported player.
// Priority: pacat > pw-cat > aplay > play (sox)
func DetectBackend() (*Backend, error) {
	candidates := []Backend{
		{Name: "pacat", Args: []string{"--raw", "--format=s16le", "--rate=44100", "--channels=2", "--latency-msec=50", "--playback"}},
		{Name: "pw-cat", Args: []string{"--playback", "--format=s16", "--rate=44100", "--channels=2", "--latency=50ms", "-"}},
		{Name: "aplay", Args: []string{"-t", "raw", "-f", "S16_LE", "-r", "44100", "-c", "2", "-q"}},
		{Name: "play", Args: []string{"-t", "raw", "-e", "signed", "-b", "16", "-c", "2", "-r", "44100", "-", "-d", "-q"}},
	}
	for _, c := range candidates {
		if path, err := exec.LookPath(c.Name); err == nil {
			c.Path = path
			return &c, nil
		}
	}
	return nil, ErrNoAudioBackend
}

// Output mixes streamers and writes them as stereo s16le PCM.
type Output struct {
	w     io.Writer
	mu    sync.Mutex
	mixer beep.Mixer

	frames [][2]float64
	buf    []byte

	started bool
	stop    chan struct{}
	done    chan struct{}
	errOnce sync.Once
	err     error

	closer func() error
}

// NewOutput creates an output writing to w. Call Start to begin streaming.
func NewOutput(w io.Writer) *Output {
	n := SampleRate.N(bufferDuration)
	return &Output{
		w:      w,
		frames: make([][2]float64, n),
		buf:    make([]byte, n*bytesPerFrame),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// OpenBackend starts the backend process and streams into its stdin.
func OpenBackend(b *Backend) (*Output, error) {
	cmd := exec.Command(b.Path, b.Args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("audio: %s stdin: %w", b.Name, err)
	}
	if err := cmd.Start(); err != nil {
		stdin.Close()
		return nil, fmt.Errorf("audio: start %s: %w", b.Name, err)
	}

	o := NewOutput(stdin)
	o.closer = func() error {
		stdin.Close()
		return cmd.Wait()
	}
	o.Start()
	return o, nil
}

// Play queues s for mixing. Safe for concurrent use.
func (o *Output) Play(s beep.Streamer) {
	if s == nil {
		return
	}
	o.mu.Lock()
	o.mixer.Add(s)
	o.mu.Unlock()
}

// Active returns the number of streamers still playing.
func (o *Output) Active() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.mixer.Len()
}

// Start launches the mixing loop.
func (o *Output) Start() {
	if o.started {
		return
	}
	o.started = true
	go o.loop()
}

func (o *Output) loop() {
	defer close(o.done)

	ticker := time.NewTicker(bufferDuration)
	defer ticker.Stop()

	for {
		select {
		case <-o.stop:
			return
		case <-ticker.C:
			if _, err := o.w.Write(o.render()); err != nil {
				o.errOnce.Do(func() { o.err = fmt.Errorf("%w: %v", ErrPipeClosed, err) })
				return
			}
		}
	}
}

// render mixes one buffer of audio into PCM bytes.
func (o *Output) render() []byte {
	for i := range o.frames {
		o.frames[i] = [2]float64{}
	}

	o.mu.Lock()
	o.mixer.Stream(o.frames)
	o.mu.Unlock()

	for i, f := range o.frames {
		binary.LittleEndian.PutUint16(o.buf[i*bytesPerFrame:], uint16(toInt16(f[0])))
		binary.LittleEndian.PutUint16(o.buf[i*bytesPerFrame+2:], uint16(toInt16(f[1])))
	}
	return o.buf
}

// toInt16 soft-limits above 0.8 and hard-clips at 1.
func toInt16(v float64) int16 {
	if v > 0.8 {
		v = 0.8 + 0.2*(1.0-1.0/(1.0+(v-0.8)*5.0))
	} else if v < -0.8 {
		v = -0.8 - 0.2*(1.0-1.0/(1.0+(-v-0.8)*5.0))
	}
	if v > 1.0 {
		v = 1.0
	} else if v < -1.0 {
		v = -1.0
	}
	return int16(v * 32767)
}

// Close stops streaming and shuts the backend down.
func (o *Output) Close() error {
	select {
	case <-o.stop:
	default:
		close(o.stop)
	}
	if o.started {
		<-o.done
	}

	var err error
	if o.closer != nil {
		err = o.closer()
	}
	if o.err != nil {
		return o.err
	}
	return err
}
