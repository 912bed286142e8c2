package viz

import (
	"fmt"
	"math"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/dianalyx/RigidMultiblobsWall/internal/sim"
)

// Frame is one live-view sample of a running simulation.
type Frame struct {
	Step       int
	Time       float64
	MeanHeight float64
	MinGap     float64
	MaxSpeed   float64
}

// ChannelObserver samples a running simulation every Every steps and pushes
// frames to a channel for the live view. It must be closed (Close) when the
// run finishes so the view can terminate.
type ChannelObserver struct {
	Every  int
	Radius float64

	ch   chan Frame
	step int
}

func NewChannelObserver(every int, radius float64) *ChannelObserver {
	if every < 1 {
		every = 1
	}
	return &ChannelObserver{Every: every, Radius: radius, ch: make(chan Frame, 16)}
}

func (o *ChannelObserver) Frames() <-chan Frame { return o.ch }

func (o *ChannelObserver) Close() { close(o.ch) }

func (o *ChannelObserver) OnStep(x, v sim.State, t float64) {
	step := o.step
	o.step++
	if step%o.Every != 0 {
		return
	}

	n := x.Blobs()
	if n == 0 {
		return
	}
	sum := 0.0
	minGap := math.Inf(1)
	maxSpeed := 0.0
	for i := 0; i < n; i++ {
		z := x[i*3+2]
		sum += z
		if gap := z - o.Radius; gap < minGap {
			minGap = gap
		}
		vx, vy, vz := v[i*3+0], v[i*3+1], v[i*3+2]
		if s := math.Sqrt(vx*vx + vy*vy + vz*vz); s > maxSpeed {
			maxSpeed = s
		}
	}

	// Drop frames when the view is behind (or gone): a stalled viewer
	// must not stall the run.
	select {
	case o.ch <- Frame{
		Step:       step,
		Time:       t,
		MeanHeight: sum / float64(n),
		MinGap:     minGap,
		MaxSpeed:   maxSpeed,
	}:
	default:
	}
}

type frameMsg Frame

type runDoneMsg struct{}

// LiveModel is the bubbletea model for the live run monitor.
type LiveModel struct {
	frames  <-chan Frame
	history []float64
	last    Frame
	done    bool
}

func NewLive(frames <-chan Frame) *LiveModel {
	return &LiveModel{frames: frames, history: make([]float64, 0, 256)}
}

func (m *LiveModel) Init() tea.Cmd {
	return m.waitForFrame()
}

func (m *LiveModel) waitForFrame() tea.Cmd {
	return func() tea.Msg {
		f, ok := <-m.frames
		if !ok {
			return runDoneMsg{}
		}
		return frameMsg(f)
	}
}

func (m *LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case frameMsg:
		m.last = Frame(msg)
		m.history = append(m.history, m.last.MeanHeight)
		if len(m.history) > 512 {
			m.history = m.history[len(m.history)-512:]
		}
		return m, m.waitForFrame()
	case runDoneMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *LiveModel) View() string {
	header := TitleStyle.Render("blobswall live")
	status := fmt.Sprintf("%s %d   %s %.4f   %s %.4g   %s %.4g",
		LabelStyle.Render("step"), m.last.Step,
		LabelStyle.Render("t"), m.last.Time,
		LabelStyle.Render("min gap"), m.last.MinGap,
		LabelStyle.Render("max speed"), m.last.MaxSpeed,
	)
	if m.last.MinGap <= 0 {
		status += "  " + WarnStyle.Render("blob at wall!")
	}

	plot := "waiting for frames..."
	if len(m.history) >= 2 {
		plot = asciigraph.Plot(m.history,
			asciigraph.Width(60),
			asciigraph.Height(10),
			asciigraph.Caption("mean blob height"),
		)
	}

	return header + "\n" +
		PanelStyle.Render(plot) + "\n" +
		status + "\n" +
		KeyHintStyle.Render("q to quit") + "\n"
}
