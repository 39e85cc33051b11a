package selector_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tdex-network/account-selector/internal/core/ports"
)

type mockNavigator struct {
	mock.Mock
}

func (m *mockNavigator) PushAccountSelector(
	ctx context.Context, params ports.AccountSelectorParams,
) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyError(message string, err error) {
	m.Called(message, err)
}

func (m *mockNotifier) ShowCheckingDevice(connectID string) func() {
	args := m.Called(connectID)
	if hide, ok := args.Get(0).(func()); ok {
		return hide
	}
	return func() {}
}

type mockKnownErrorMatcher struct {
	mock.Mock
}

func (m *mockKnownErrorMatcher) ShowDialogIfErrorMatched(
	ctx context.Context, err error,
) {
	m.Called(ctx, err)
}
