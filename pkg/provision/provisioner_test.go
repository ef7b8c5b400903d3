package provision

import (
	"context"
	"errors"
	"io"
	"path/filepath"
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

func vercelTarget() *target.Target {
	registry, err := target.LoadDefaults()
	if err != nil {
		panic(err)
	}
	return registry.Get("vercel")
}

func readyExecutor(t *testing.T) (*runner.FakeExecutor, string) {
	t.Helper()
	exec := runner.NewFakeExecutor()
	exec.Files["requirements.txt"] = true
	exec.Outputs["pip3 freeze"] = "streamlit==1.32.0\nsupabase==2.3.4\n"
	freezePath := filepath.Join(t.TempDir(), "installed_packages.txt")
	return exec, freezePath
}

func TestRun_VercelSequence(t *testing.T) {
	exec, freezePath := readyExecutor(t)

	p, err := New(vercelTarget(), exec, testLogger(), Options{FreezePath: freezePath})
	require.NoError(t, err)

	record, err := p.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.True(t, record.Success)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "vercel", record.Target)

	// yum preferred on the vercel target
	assert.True(t, exec.Ran("yum makecache"))
	assert.True(t, exec.Ran("yum install -y lame lame-devel alsa-lib-devel postgresql-devel"))
	assert.True(t, exec.Ran("pip3 install --upgrade pip setuptools wheel"))
	assert.True(t, exec.Ran("pip3 install -r requirements.txt"))
	assert.True(t, exec.Ran("pip3 install supabase>=2.3.0 gotrue>=2.4.2 postgrest>=0.16.0 storage3>=0.7.0 realtime>=1.0.2"))
	assert.True(t, exec.Ran("pip3 cache purge"))
	assert.True(t, exec.Ran("pip3 freeze"))

	// tooling upgrade must precede the manifest install
	assert.Less(t,
		indexOf(exec.Commands, "pip3 install --upgrade pip setuptools wheel"),
		indexOf(exec.Commands, "pip3 install -r requirements.txt"))
}

func TestRun_BestEffortOSFailureContinues(t *testing.T) {
	exec, freezePath := readyExecutor(t)
	exec.Errors["yum install -y lame lame-devel alsa-lib-devel postgresql-devel"] = errors.New("yum broke")
	exec.Errors["apt-get install -y lame libasound2-dev libpq-dev"] = errors.New("apt broke")

	p, err := New(vercelTarget(), exec, testLogger(), Options{FreezePath: freezePath})
	require.NoError(t, err)

	record, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, record.Success)

	ignored := record.IgnoredFailures()
	require.NotEmpty(t, ignored)
	assert.Equal(t, StageOSPackages, ignored[len(ignored)-1].Stage)

	// pip steps still ran
	assert.True(t, exec.Ran("pip3 install -r requirements.txt"))
}

func TestRun_MissingManifestIsFatal(t *testing.T) {
	exec, freezePath := readyExecutor(t)
	delete(exec.Files, "requirements.txt")

	p, err := New(vercelTarget(), exec, testLogger(), Options{FreezePath: freezePath})
	require.NoError(t, err)

	record, err := p.Run(context.Background())
	require.Error(t, err)
	assert.False(t, record.Success)

	failed := record.Failed()
	require.NotNil(t, failed)
	assert.Equal(t, StageManifest, failed.Stage)

	// nothing after the fatal step ran
	assert.False(t, exec.Ran("pip3 cache purge"))
	assert.False(t, exec.Ran("pip3 freeze"))
}

func TestRun_SkipOS(t *testing.T) {
	exec, freezePath := readyExecutor(t)

	p, err := New(vercelTarget(), exec, testLogger(), Options{SkipOS: true, FreezePath: freezePath})
	require.NoError(t, err)

	_, err = p.Run(context.Background())
	require.NoError(t, err)

	assert.False(t, exec.Ran("yum makecache"))
	assert.False(t, exec.Ran("yum install -y lame lame-devel alsa-lib-devel postgresql-devel"))
	assert.True(t, exec.Ran("pip3 install -r requirements.txt"))
}

func TestRun_ProgressEvents(t *testing.T) {
	exec, freezePath := readyExecutor(t)

	var events []Event
	p, err := New(vercelTarget(), exec, testLogger(), Options{
		FreezePath: freezePath,
		OnProgress: func(pr Progress) { events = append(events, pr.Event) },
	})
	require.NoError(t, err)

	_, err = p.Run(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, events)
	assert.Equal(t, EventStart, events[0])
	assert.Equal(t, EventDone, events[len(events)-1])
}

func TestSteps_RuntimeTargetOmitsOptionalSteps(t *testing.T) {
	registry, err := target.LoadDefaults()
	require.NoError(t, err)
	tgt := registry.Get("runtime")

	exec := runner.NewFakeExecutor()
	p, err := New(tgt, exec, testLogger(), Options{})
	require.NoError(t, err)

	stages := make([]Stage, 0)
	for _, s := range p.Steps() {
		stages = append(stages, s.Stage)
	}
	assert.Equal(t, []Stage{StageIndex, StageOSPackages, StageTooling, StageManifest}, stages)
}

func indexOf(haystack []string, needle string) int {
	for i, s := range haystack {
		if s == needle {
			return i
		}
	}
	return -1
}
