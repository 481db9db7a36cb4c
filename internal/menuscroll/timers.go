package menuscroll

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	// RepeatInterval is the tick period of hold-to-repeat navigation.
	RepeatInterval = 50 * time.Millisecond
	// MoveSampleInterval is the minimum spacing between processed drag samples.
	MoveSampleInterval = 50 * time.Millisecond
	// TapDetectDelay separates a tap on a touch indicator from a hold.
	TapDetectDelay = 200 * time.Millisecond
	// TextGraceWindow keeps layout-change collapse suppressed after an input blurs.
	TextGraceWindow = time.Second
)

// Scheduler turns a delayed message into a command. The default uses
// tea.Tick; tests substitute one that records what was scheduled.
type Scheduler func(d time.Duration, msg tea.Msg) tea.Cmd

// TickScheduler schedules msg with tea.Tick.
func TickScheduler(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// task is the handle of one scheduled callback. Arming bumps the sequence
// number, so a delivery carrying an older number is recognized as stale.
type task struct {
	seq   uint64
	armed bool
}

func (t *task) arm() uint64 {
	t.seq++
	t.armed = true
	return t.seq
}

func (t *task) cancel() {
	t.armed = false
}

func (t *task) owns(seq uint64) bool {
	return t.armed && t.seq == seq
}

type repeatTickMsg struct {
	panel string
	seq   uint64
}

type tapDetectMsg struct {
	panel string
	seq   uint64
}

type graceExpiredMsg struct {
	panel string
	seq   uint64
}

func (p *Panel) schedule(d time.Duration, msg tea.Msg) tea.Cmd {
	if p.reg != nil && p.reg.schedule != nil {
		return p.reg.schedule(d, msg)
	}
	return TickScheduler(d, msg)
}

// StartRepeat begins hold-to-repeat movement in dir, revoking any session
// already running. Ignored while the panel is collapsed.
func (p *Panel) StartRepeat(dir Direction) tea.Cmd {
	if !p.active {
		return nil
	}
	p.stopTracking()
	p.tapDetect.cancel()
	seq := p.repeat.arm()
	p.repeatDir = dir
	p.touch()
	return p.schedule(RepeatInterval, repeatTickMsg{panel: p.id, seq: seq})
}

// StopRepeat cancels hold-to-repeat movement and any pending tap detection.
func (p *Panel) StopRepeat() {
	p.stopTracking()
	p.tapDetect.cancel()
	p.repeat.cancel()
	p.touch()
}

func (p *Panel) onRepeatTick(seq uint64) tea.Cmd {
	if !p.repeat.owns(seq) {
		return nil
	}
	if !p.active {
		p.repeat.cancel()
		return nil
	}
	p.MoveBy(p.opts.MenuMoveY, p.repeatDir)
	return p.schedule(RepeatInterval, repeatTickMsg{panel: p.id, seq: seq})
}

// PressNav starts tap detection on an indicator. Releasing before
// TapDetectDelay is a tap and moves one step; holding longer turns into
// hold-to-repeat.
func (p *Panel) PressNav(dir Direction) tea.Cmd {
	if !p.active {
		return nil
	}
	p.stopTracking()
	p.repeat.cancel()
	seq := p.tapDetect.arm()
	p.tapDir = dir
	p.touch()
	return p.schedule(TapDetectDelay, tapDetectMsg{panel: p.id, seq: seq})
}

// ReleaseNav ends an indicator press started with PressNav.
func (p *Panel) ReleaseNav() {
	tapped := p.tapDetect.armed
	p.StopRepeat()
	if tapped && p.active {
		p.MoveBy(p.opts.MenuMoveY, p.tapDir)
	}
}

func (p *Panel) onTapDetect(seq uint64) tea.Cmd {
	if !p.tapDetect.owns(seq) {
		return nil
	}
	p.tapDetect.cancel()
	return p.StartRepeat(p.tapDir)
}

// FocusInput records that a text input inside the panel gained focus.
func (p *Panel) FocusInput() {
	if !p.opts.TouchTextResize {
		return
	}
	p.grace.cancel()
	p.textFocused = true
	p.textGrace = true
}

// BlurInput records that the text input lost focus; collapse stays
// suppressed for TextGraceWindow afterwards.
func (p *Panel) BlurInput() tea.Cmd {
	if !p.opts.TouchTextResize || !p.textFocused {
		return nil
	}
	p.textFocused = false
	p.textGrace = true
	seq := p.grace.arm()
	return p.schedule(TextGraceWindow, graceExpiredMsg{panel: p.id, seq: seq})
}

func (p *Panel) onGraceExpired(seq uint64) {
	if !p.grace.owns(seq) {
		return
	}
	p.grace.cancel()
	if !p.textFocused {
		p.textGrace = false
	}
}

// cancelTasks revokes every scheduled task the panel owns.
func (p *Panel) cancelTasks() {
	p.repeat.cancel()
	p.tapDetect.cancel()
	p.grace.cancel()
}
