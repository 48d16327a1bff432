package cli

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/protocol"
	"github.com/SeamusWaldron/cubesim/internal/recorder"
)

var (
	playDevice   bool
	playMode     string
	playNoRecord bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Interactive terminal puzzle",
	Long: `Start an interactive TUI that runs the puzzle at tick_rate_hz.

Keyboard shortcuts:
  r l u d f b m e s  - Turn a face or middle slice clockwise
  R L U D F B M E S  - Same, counterclockwise (prime)
  x                  - Scramble
  0                  - Reset to solved
  + / -              - Rotate speed up / down
  t                  - Toggle practice / timekeeping
  q/Esc              - Quit

With --device the turns of a connected GoCube are mirrored as well.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().BoolVar(&playDevice, "device", false, "Mirror a connected GoCube")
	playCmd.Flags().StringVar(&playMode, "mode", "", "Play mode: practice or timekeeping (default: play_mode from config)")
	playCmd.Flags().BoolVar(&playNoRecord, "no-record", false, "Do not record the session")
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	modeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	movedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	layerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

const speedStep = 0.5

var layerNames = [3]string{"U", "E", "D"}

// Messages
type frameMsg time.Time

// playModel is the bubbletea host loop. It is the only place the puzzle is
// touched; device callbacks hand their data over channels.
type playModel struct {
	puzzle  *cubesim.Puzzle
	session *cubesim.Session
	rec     *recorder.Recorder
	dt      float32

	device       *cubesim.DeviceSource
	deviceMoves  chan cubesim.SliceMove
	orientations chan [2]string
	battery      chan int

	deviceName   string
	batteryLevel int
	up, front    string

	lastScramble []cubesim.SliceMove
	err          error
	quitting     bool
}

func newPlayModel(p *cubesim.Puzzle, mode cubesim.PlayMode, rec *recorder.Recorder, dt float32) *playModel {
	s := cubesim.NewSession(mode)
	s.Attach(p)
	return &playModel{
		puzzle:       p,
		session:      s,
		rec:          rec,
		dt:           dt,
		deviceMoves:  make(chan cubesim.SliceMove, 64),
		orientations: make(chan [2]string, 16),
		battery:      make(chan int, 4),
		batteryLevel: -1,
	}
}

// attachDevice forwards the device's turns, orientation and battery into the
// model's channels. Full channels drop updates rather than block BLE.
func (m *playModel) attachDevice(src *cubesim.DeviceSource) {
	m.device = src
	m.deviceName = src.DeviceName()
	src.OnMove(func(mv cubesim.SliceMove) {
		select {
		case m.deviceMoves <- mv:
		default:
		}
	})
	src.OnOrientation(func(q mgl32.Quat) {
		up, front := protocol.UpFront(q)
		if m.rec != nil {
			m.rec.RecordOrientation(up, front)
		}
		select {
		case m.orientations <- [2]string{up, front}:
		default:
		}
	})
	src.OnBattery(func(level int) {
		select {
		case m.battery <- level:
		default:
		}
	})
}

func (m *playModel) Init() tea.Cmd {
	return m.frameCmd()
}

func (m *playModel) frameCmd() tea.Cmd {
	return tea.Tick(time.Duration(float64(time.Second)*float64(m.dt)), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())

	case frameMsg:
		m.drainDevice()
		if _, err := m.puzzle.Tick(m.dt); err != nil {
			m.err = err
		}
		return m, m.frameCmd()
	}
	return m, nil
}

func (m *playModel) handleKey(key string) tea.Cmd {
	switch key {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return tea.Quit
	case "x":
		m.lastScramble = m.puzzle.EnqueueScramble()
	case "0":
		m.puzzle.Reset()
		m.lastScramble = nil
		if m.device != nil {
			if err := m.device.ResetSolved(); err != nil {
				m.err = err
			}
		}
	case "+", "=":
		m.setSpeed(m.puzzle.RotateSpeed() + speedStep)
	case "-", "_":
		m.setSpeed(m.puzzle.RotateSpeed() - speedStep)
	case "t":
		m.session.ToggleMode()
	default:
		if mv, ok := keyMove(key); ok {
			if err := m.puzzle.EnqueueFrom(cubesim.SourceProgram, mv); err != nil {
				m.err = err
			}
		}
	}
	return nil
}

func (m *playModel) setSpeed(speed float32) {
	if err := m.puzzle.SetRotateSpeed(cubesim.ClampRotateSpeed(speed)); err != nil {
		m.err = err
	}
}

func (m *playModel) drainDevice() {
	for {
		select {
		case mv := <-m.deviceMoves:
			if err := m.puzzle.EnqueueFrom(cubesim.SourceDevice, mv); err != nil {
				m.err = err
			}
		case o := <-m.orientations:
			m.up, m.front = o[0], o[1]
		case level := <-m.battery:
			m.batteryLevel = level
		default:
			return
		}
	}
}

// keyMove maps a face key to its move; uppercase is the prime.
func keyMove(key string) (cubesim.SliceMove, bool) {
	if len(key) != 1 || !strings.ContainsAny(strings.ToLower(key), "rludfbmes") {
		return cubesim.SliceMove{}, false
	}
	notation := strings.ToUpper(key)
	if key == notation {
		notation += "'"
	}
	mv, err := cubesim.ParseMove(notation)
	if err != nil {
		return cubesim.SliceMove{}, false
	}
	sm, err := mv.SliceMove()
	if err != nil {
		return cubesim.SliceMove{}, false
	}
	return sm, true
}

func (m *playModel) View() string {
	if m.quitting {
		return fmt.Sprintf("%d moves this session.\n", m.session.Moves())
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("cubesim"))
	b.WriteString("\n\n")

	mode := m.session.Mode()
	b.WriteString(fmt.Sprintf("Mode: %s", modeStyle.Render(strings.ToUpper(mode.String()))))
	if mode == cubesim.PlayTimekeeping {
		b.WriteString(fmt.Sprintf("  %s", formatElapsed(m.session.Elapsed())))
	}
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("Speed: %.1f rev/s  Queue: %d  Moves: %d",
		m.puzzle.RotateSpeed(), m.puzzle.QueueLen(), m.session.Moves())))
	b.WriteString("\n")

	if mv, ok := m.puzzle.InFlight(); ok {
		deg := math32.Abs(m.puzzle.Remaining()) * 180 / math32.Pi
		b.WriteString(fmt.Sprintf("Turning: %s (%.0f° left)\n", moveStyle.Render(mv.Notation()), deg))
	} else if last, ok := m.session.LastMove(); ok {
		b.WriteString(fmt.Sprintf("Last: %s", moveStyle.Render(last.Notation())))
		if m.puzzle.Solved() {
			b.WriteString("  " + modeStyle.Render("SOLVED"))
		}
		b.WriteString("\n")
	} else {
		b.WriteString("\n")
	}
	if len(m.lastScramble) > 0 {
		b.WriteString(statusStyle.Render("Scramble: " + cubesim.FormatSliceMoves(m.lastScramble)))
		b.WriteString("\n")
	}
	if m.device != nil {
		status := fmt.Sprintf("Device: %s", m.deviceName)
		if m.batteryLevel >= 0 {
			status += fmt.Sprintf(" (Battery: %d%%)", m.batteryLevel)
		}
		if m.up != "" {
			status += fmt.Sprintf("  up %s front %s", m.up, m.front)
		}
		b.WriteString(statusStyle.Render(status))
		b.WriteString("\n")
	}
	if m.rec != nil {
		b.WriteString(statusStyle.Render(fmt.Sprintf("Recording session %s (%d moves)", shortID(m.rec.SessionID()), m.rec.Recorded())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderLayers())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("rludfbmes turn  RLUDFBMES prime  x scramble  0 reset  +/- speed  t mode  q quit"))
	b.WriteString("\n")
	return b.String()
}

// renderLayers draws the U, E and D layers seen from above, each cell showing
// the ID of the piece currently there. Pieces away from home are highlighted.
func (m *playModel) renderLayers() string {
	layers := make([]string, 0, 3)
	for i, y := range []float32{1, 0, -1} {
		var rows []string
		for _, z := range []float32{-1, 0, 1} {
			var cells []string
			for _, x := range []float32{-1, 0, 1} {
				cells = append(cells, m.cell(mgl32.Vec3{x, y, z}))
			}
			rows = append(rows, strings.Join(cells, " "))
		}
		layers = append(layers, layerStyle.Render(layerNames[i]+"\n"+strings.Join(rows, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, layers...)
}

func (m *playModel) cell(pos mgl32.Vec3) string {
	id, ok := m.puzzle.PieceAt(pos)
	if !ok {
		return " ·"
	}
	s := fmt.Sprintf("%2d", id)
	if piece, _ := m.puzzle.Piece(id); piece.Initial != pos {
		return movedStyle.Render(s)
	}
	return s
}

func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%d:%04.1f", mins, secs)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func runPlay(cmd *cobra.Command, args []string) error {
	modeName := cfg.PlayMode
	if playMode != "" {
		modeName = playMode
	}
	mode, err := cubesim.ParsePlayMode(modeName)
	if err != nil {
		return err
	}

	// The TUI owns the terminal; keep logs quiet unless asked.
	if !verbose {
		logger = slog.New(slog.DiscardHandler)
	}
	p, err := cubesim.New(puzzleOptions()...)
	if err != nil {
		return err
	}

	var rec *recorder.Recorder
	if !playNoRecord {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		rec = recorder.New(db, logger)
		rec.Attach(p)
	}

	m := newPlayModel(p, mode, rec, frameDelta())

	deviceName := ""
	if playDevice {
		src, err := connectDevice(cmd.Context())
		if err != nil {
			return err
		}
		defer src.Close()
		if err := src.EnableOrientation(); err != nil {
			logger.Warn("orientation not available", "err", err)
		}
		m.attachDevice(src)
		deviceName = src.DeviceName()
	}

	if rec != nil {
		if _, err := rec.Start(mode, deviceName); err != nil {
			return err
		}
		defer rec.Stop()
	}

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return err
	}
	return nil
}
