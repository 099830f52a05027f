// Package fake provides a mock notifier for unit tests.
package fake

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Notifier is a mock implementation of notify.Notifier.
type Notifier struct {
	mock.Mock
}

// Send mocks alert delivery.
func (n *Notifier) Send(ctx context.Context, subject, body string) error {
	args := n.Called(ctx, subject, body)
	return args.Error(0)
}

// Verify mocks the startup transport check.
func (n *Notifier) Verify(ctx context.Context) error {
	args := n.Called(ctx)
	return args.Error(0)
}
