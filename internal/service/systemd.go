package service

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Controller starts and stops the proxy engine.
type Controller interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Restart(ctx context.Context) error
	Enable(ctx context.Context) error
	Disable(ctx context.Context) error
}

// Systemd controls a unit through systemctl.
type Systemd struct {
	Unit   string
	Runner Runner
}

func NewSystemd(unit string) *Systemd {
	return &Systemd{Unit: unit, Runner: ExecRunner{}}
}

func (s *Systemd) Start(ctx context.Context) error   { return s.systemctl(ctx, "start") }
func (s *Systemd) Stop(ctx context.Context) error    { return s.systemctl(ctx, "stop") }
func (s *Systemd) Restart(ctx context.Context) error { return s.systemctl(ctx, "restart") }
func (s *Systemd) Enable(ctx context.Context) error  { return s.systemctl(ctx, "enable") }
func (s *Systemd) Disable(ctx context.Context) error { return s.systemctl(ctx, "disable") }

func (s *Systemd) systemctl(ctx context.Context, action string) error {
	_, stderr, err := s.Runner.Output(ctx, "systemctl", action, s.Unit)
	if err != nil {
		if msg := strings.TrimSpace(string(stderr)); msg != "" {
			return fmt.Errorf("systemctl %s %s failed: %w: %s", action, s.Unit, err, msg)
		}
		return fmt.Errorf("systemctl %s %s failed: %w", action, s.Unit, err)
	}
	return nil
}

// Journal reads a unit's log through journalctl.
type Journal struct {
	Unit   string
	Runner Runner
}

func NewJournal(unit string) *Journal {
	return &Journal{Unit: unit, Runner: ExecRunner{}}
}

// Show prints the recent log, jumping to the end.
func (j *Journal) Show(ctx context.Context, w io.Writer) error {
	return j.run(ctx, w, "-e")
}

// Follow streams new log lines until ctx is cancelled.
func (j *Journal) Follow(ctx context.Context, w io.Writer) error {
	err := j.run(ctx, w, "-f")
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (j *Journal) run(ctx context.Context, w io.Writer, mode string) error {
	if err := j.Runner.Stream(ctx, w, "journalctl", "-u", j.Unit, "--output", "cat", mode); err != nil {
		return fmt.Errorf("journalctl -u %s failed: %w", j.Unit, err)
	}
	return nil
}
