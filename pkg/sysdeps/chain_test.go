package sysdeps

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Philipao0122/audioAgentTour/pkg/runner"
	"github.com/Philipao0122/audioAgentTour/pkg/target"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testTarget() *target.Target {
	return &target.Target{
		Name:     "vercel",
		Managers: []target.ManagerFamily{target.FamilyYum, target.FamilyApt},
		OSPackages: map[target.ManagerFamily][]string{
			target.FamilyYum: {"lame", "alsa-lib-devel", "postgresql-devel"},
			target.FamilyApt: {"lame", "libasound2-dev", "libpq-dev"},
		},
	}
}

func TestChain_Install_PrefersFirstFamily(t *testing.T) {
	exec := runner.NewFakeExecutor()
	chain := NewChain(testTarget().Managers, exec, io.Discard, testLogger())

	err := chain.Install(context.Background(), testTarget())
	require.NoError(t, err)

	assert.True(t, exec.Ran("yum install -y lame alsa-lib-devel postgresql-devel"))
	assert.False(t, exec.Ran("apt-get install -y lame libasound2-dev libpq-dev"))
}

func TestChain_Install_FallsBackWhenMissing(t *testing.T) {
	exec := runner.NewFakeExecutor()
	exec.Missing["yum"] = true

	chain := NewChain(testTarget().Managers, exec, io.Discard, testLogger())
	err := chain.Install(context.Background(), testTarget())
	require.NoError(t, err)

	assert.True(t, exec.Ran("apt-get install -y lame libasound2-dev libpq-dev"))
}

func TestChain_Install_FallsBackOnFailure(t *testing.T) {
	exec := runner.NewFakeExecutor()
	exec.Errors["yum install -y lame alsa-lib-devel postgresql-devel"] = errors.New("No package lame available")

	chain := NewChain(testTarget().Managers, exec, io.Discard, testLogger())
	err := chain.Install(context.Background(), testTarget())
	require.NoError(t, err)

	assert.True(t, exec.Ran("apt-get install -y lame libasound2-dev libpq-dev"))
}

func TestChain_Install_AllFail(t *testing.T) {
	exec := runner.NewFakeExecutor()
	exec.Errors["yum install -y lame alsa-lib-devel postgresql-devel"] = errors.New("yum broke")
	exec.Errors["apt-get install -y lame libasound2-dev libpq-dev"] = errors.New("apt broke")

	chain := NewChain(testTarget().Managers, exec, io.Discard, testLogger())
	err := chain.Install(context.Background(), testTarget())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all package managers")
}

func TestChain_Install_NoManagerPresent(t *testing.T) {
	exec := runner.NewFakeExecutor()
	exec.Missing["yum"] = true
	exec.Missing["apt-get"] = true

	chain := NewChain(testTarget().Managers, exec, io.Discard, testLogger())
	err := chain.Install(context.Background(), testTarget())
	assert.ErrorIs(t, err, ErrNoManager)
}

func TestChain_UpdateIndex(t *testing.T) {
	exec := runner.NewFakeExecutor()
	chain := NewChain([]target.ManagerFamily{target.FamilyApt}, exec, io.Discard, testLogger())

	err := chain.UpdateIndex(context.Background())
	require.NoError(t, err)
	assert.True(t, exec.Ran("apt-get update"))
}
