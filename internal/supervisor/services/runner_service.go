// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package services

import (
	"context"
)

// RunFunc is a blocking loop that returns when ctx is canceled, such as
// session.Manager.Run.
type RunFunc func(ctx context.Context) error

// RunnerService adapts a RunFunc to suture.Service with a name for logs.
//
//	tree.AddStateService(services.NewRunnerService("session-sweeper", sessions.Run))
//	tree.AddStateService(services.NewRunnerService("extraction-cache", func(ctx context.Context) error {
//		return store.Run(ctx, time.Minute)
//	}))
type RunnerService struct {
	run  RunFunc
	name string
}

// NewRunnerService wraps run as a named service.
func NewRunnerService(name string, run RunFunc) *RunnerService {
	return &RunnerService{run: run, name: name}
}

// Serve implements suture.Service.
func (s *RunnerService) Serve(ctx context.Context) error {
	return s.run(ctx)
}

// String implements fmt.Stringer; suture uses it in log messages.
func (s *RunnerService) String() string {
	return s.name
}
