package chordpad

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rapidmidiex/chordpad/config"
	"github.com/rapidmidiex/chordpad/jam"
	"github.com/rapidmidiex/chordpad/keymap"
	"github.com/rapidmidiex/chordpad/keyui"
	"github.com/rapidmidiex/chordpad/padui"
	"github.com/rapidmidiex/chordpad/player"
	"github.com/rapidmidiex/chordpad/rmxerr"
	"github.com/rapidmidiex/chordpad/styles"
	"github.com/rapidmidiex/chordpad/suggest"
)

// ********
// Code heavily based on "Project Journal"
// https://github.com/bashbunni/pjs
// https://www.youtube.com/watch?v=uJ2egAkSkjg&t=319s
// ********

type (
	appView int

	mainModel struct {
		curView  appView
		pad      tea.Model
		keys     tea.Model
		jamURL   string
		quitting bool
		err      error
	}
)

const (
	padView appView = iota
	keyView
)

const dialTimeout = 10 * time.Second

// NewModel builds the app around an optional player. A nil player keeps the
// pad silent.
func NewModel(cfg *config.Config, p *player.Player) (mainModel, error) {
	pad, err := padui.New(padui.Options{
		Layout:      cfg.Layout,
		Factors:     cfg.Factors,
		Accidentals: cfg.Accidentals,
		Volume:      cfg.Volume,
		Player:      p,
	})
	if err != nil {
		return mainModel{}, err
	}

	lib, err := suggest.LoadLibrary(cfg.Progressions)
	if err != nil {
		return mainModel{}, err
	}

	return mainModel{
		curView: padView,
		pad:     pad,
		keys:    keyui.New(lib),
		jamURL:  cfg.JamURL,
	}, nil
}

func (m mainModel) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.pad.Init(),
		m.keys.Init(),
	}
	if m.jamURL != "" {
		cmds = append(cmds, jamConnect(m.jamURL))
	}
	return tea.Batch(cmds...)
}

func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	// Handle incoming messages from I/O
	switch msg := msg.(type) {
	case rmxerr.ErrMsg:
		m.err = msg

	case tea.KeyMsg:
		switch {
		// Ctrl+c exits. Even with short running programs it's good to have
		// a quit key, just incase your logic is off. Users will be very
		// annoyed if they can't exit.
		case key.Matches(msg, keymap.DefaultMapping.Quit):
			if m.quitting {
				return m, tea.Quit
			}
			m.quitting = true
			return m, m.pad.(padui.Model).LeaveRoom()

		case key.Matches(msg, keymap.DefaultMapping.CycleFocus) && !m.typing():
			m.curView = (m.curView + 1) % 2
			return m, nil

		case key.Matches(msg, keymap.DefaultMapping.GoBack) && m.curView == keyView:
			m.curView = padView
			return m, nil
		}

		// Key presses only go to the view on screen.
		switch m.curView {
		case keyView:
			m.keys, cmd = m.keys.Update(msg)
		default:
			m.pad, cmd = m.pad.Update(msg)
		}
		return m, cmd

	case padui.LeaveRoomMsg:
		if msg.Err != nil {
			log.Printf("leaveRoom: %v", msg.Err)
		}
		if m.quitting {
			return m, tea.Quit
		}

	case keyui.KeySelected, keyui.ProgressionSelected:
		m.curView = padView
	}

	// Everything else reaches both views, so the pad hears about keys
	// picked while it is hidden.
	m.pad, cmd = m.pad.Update(msg)
	cmds = append(cmds, cmd)
	m.keys, cmd = m.keys.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m mainModel) typing() bool {
	return m.curView == padView && m.pad.(padui.Model).Typing()
}

func (m mainModel) View() string {
	header := styles.BoldStyle.Render("chordpad")
	if m.jamURL != "" {
		header += styles.TextStyle.Render(fmt.Sprintf("  jam: %s", m.jamURL))
	}
	header += "\n"

	switch m.curView {
	case keyView:
		view := m.keys.View()
		if m.err != nil {
			view += "\n" + styles.RenderError(m.err.Error())
		}
		return header + view
	default:
		return header + m.pad.View()
	}
}

// Run starts the app and blocks until it quits.
func Run(cfg *config.Config) error {
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "chordpad")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		// The terminal belongs to the UI.
		log.SetOutput(io.Discard)
	}

	var p *player.Player
	if cfg.SoundFont != "" {
		var err error
		if p, err = player.Open(cfg.SoundFont); err != nil {
			return err
		}
	}

	m, err := NewModel(cfg, p)
	if err != nil {
		return err
	}

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("chordpad: %w", err)
	}
	return nil
}

func jamConnect(url string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
		defer cancel()

		s, err := jam.Dial(ctx, url)
		if err != nil {
			return rmxerr.ErrMsg{Err: fmt.Errorf("jamConnect: %w", err)}
		}
		return padui.ConnectedMsg{Session: s}
	}
}
