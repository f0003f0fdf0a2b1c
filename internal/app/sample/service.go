// Package sample implements the Sample tool. Its command-line options are
// held by Command.
package sample

import (
	"context"
	"errors"
	"sync"

	"github.com/qbicsoftware/sample-service/internal/pkg/ctxlog"
	"github.com/qbicsoftware/sample-service/internal/pkg/toolexec"
)

var ErrNilCommand = errors.New("sample: nil command")

type Service struct {
	command      *Command
	shutdownOnce sync.Once
}

// New creates the service for the parsed command-line arguments in cmd.
func New(cmd *Command) (*Service, error) {
	if cmd == nil {
		return nil, ErrNilCommand
	}
	return &Service{command: cmd}, nil
}

// NewTool is the toolexec.Factory of the Sample tool.
func NewTool(cmd *Command) (toolexec.Tool, error) {
	svc, err := New(cmd)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) Command() *Command {
	return s.command
}

func (s *Service) Execute(ctx context.Context) error {
	cmd := s.Command()

	ctxlog.FromContext(ctx).Debug("Executing", "command", cmd.Name())
	return nil
}

// Shutdown releases the resources of the service. It runs on the executor's
// shutdown path and must never terminate the process.
func (s *Service) Shutdown(ctx context.Context) error {
	s.shutdownOnce.Do(func() {
		ctxlog.FromContext(ctx).Debug("Shutting down")
	})
	return nil
}

func (s *Service) IsAlive() bool {
	return true
}

func (s *Service) IsDead() bool {
	return false
}
