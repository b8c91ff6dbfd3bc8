package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGateway is a testify mock of git.Gateway
type MockGateway struct {
	mock.Mock
}

// NewMockGateway creates a mock whose expectations are asserted at test end
func NewMockGateway(t mock.TestingT) *MockGateway {
	m := &MockGateway{}
	m.Test(t)
	if c, ok := t.(interface{ Cleanup(func()) }); ok {
		c.Cleanup(func() { m.AssertExpectations(t) })
	}
	return m
}

// ModifiedFiles simulates listing modified tracked files
func (m *MockGateway) ModifiedFiles(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	files, _ := args.Get(0).([]string)
	return files, args.Error(1)
}

// CurrentBranch simulates reading the checked-out branch
func (m *MockGateway) CurrentBranch(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// IsWorkTree simulates checking for a work tree
func (m *MockGateway) IsWorkTree(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

// Status simulates porcelain status
func (m *MockGateway) Status(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// StageAll simulates staging everything
func (m *MockGateway) StageAll(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

// NothingStaged simulates checking the index for staged changes
func (m *MockGateway) NothingStaged(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

// Commit simulates committing the index
func (m *MockGateway) Commit(ctx context.Context, message string) (bool, error) {
	args := m.Called(ctx, message)
	return args.Bool(0), args.Error(1)
}

// HasRemote simulates looking up a remote
func (m *MockGateway) HasRemote(ctx context.Context, remote string) (bool, error) {
	args := m.Called(ctx, remote)
	return args.Bool(0), args.Error(1)
}

// RemoteBranchExists simulates checking for a branch on a remote
func (m *MockGateway) RemoteBranchExists(ctx context.Context, remote, branch string) (bool, error) {
	args := m.Called(ctx, remote, branch)
	return args.Bool(0), args.Error(1)
}

// Push simulates pushing a branch
func (m *MockGateway) Push(ctx context.Context, remote, branch string, setUpstream bool) (bool, error) {
	args := m.Called(ctx, remote, branch, setUpstream)
	return args.Bool(0), args.Error(1)
}

// OnRepository primes the read-only queries for a repository on branch
// whose porcelain status is status
func (m *MockGateway) OnRepository(branch, status string) *MockGateway {
	m.On("IsWorkTree", mock.Anything).Return(true, nil).Maybe()
	m.On("Status", mock.Anything).Return(status, nil).Maybe()
	m.On("CurrentBranch", mock.Anything).Return(branch, nil).Maybe()
	return m
}
