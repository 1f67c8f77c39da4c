package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestModelRunsActionAndRendersResult(t *testing.T) {
	m := model{
		title:   "migrate up",
		timeout: time.Second,
		action: func(context.Context) ([]string, error) {
			return []string{"table users: present"}, nil
		},
	}
	if !strings.Contains(m.View(), "Running...") {
		t.Fatalf("expected running view, got %q", m.View())
	}

	msg := m.Init()()
	next, cmd := m.Update(msg)
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	view := next.(model).View()
	if !strings.Contains(view, "OK") || !strings.Contains(view, "table users: present") {
		t.Fatalf("unexpected view: %q", view)
	}
}

func TestModelRendersFailure(t *testing.T) {
	m := model{title: "seed apply", timeout: time.Second}
	next, _ := m.Update(actionMsg{err: errors.New("db down"), details: []string{"partial"}})
	view := next.(model).View()
	if !strings.Contains(view, "FAILED") || !strings.Contains(view, "db down") {
		t.Fatalf("unexpected view: %q", view)
	}
}

func TestModelCtrlCCancels(t *testing.T) {
	m := model{title: "user verify", timeout: time.Second}
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !errors.Is(next.(model).err, context.Canceled) {
		t.Fatalf("expected canceled error, got %v", next.(model).err)
	}
}

func TestModelActionSeesTimeout(t *testing.T) {
	m := model{
		title:   "migrate status",
		timeout: 10 * time.Millisecond,
		action: func(ctx context.Context) ([]string, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	msg := m.Init()().(actionMsg)
	if !errors.Is(msg.err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", msg.err)
	}
}
