package doctor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Philipao0122/audioAgentTour/pkg/runner"
)

func healthyExecutor() *runner.FakeExecutor {
	exec := runner.NewFakeExecutor()
	exec.Outputs["/usr/bin/apt-get --version"] = "apt 2.7.14 (amd64)\n"
	exec.Outputs["/usr/bin/yum --version"] = "4.14.0\n"
	exec.Outputs["/usr/bin/python3 --version"] = "Python 3.12.3\n"
	exec.Outputs["pip3 --version"] = "pip 24.0 from /usr/lib/python3/dist-packages/pip (python 3.12)\n"
	exec.Files["requirements.txt"] = true
	return exec
}

func TestCheckAll_Healthy(t *testing.T) {
	checker := NewCheckerWithExecutor(healthyExecutor(), "requirements.txt")
	groups := checker.CheckAll(context.Background())

	require.Len(t, groups, 3)
	summary := GetSummary(groups)
	assert.Equal(t, 5, summary.Total)
	assert.Zero(t, summary.Missing)
	assert.Zero(t, summary.Errors)
	assert.False(t, HasIssues(groups))
}

func TestCheckApt_Version(t *testing.T) {
	check := CheckApt(context.Background(), healthyExecutor())
	assert.Equal(t, StatusOK, check.Status)
	assert.Equal(t, "version 2.7.14", check.Message)
}

func TestCheckPython_Missing(t *testing.T) {
	exec := healthyExecutor()
	exec.Missing["python3"] = true

	check := CheckPython(context.Background(), exec)
	assert.Equal(t, StatusMissing, check.Status)
	require.NotNil(t, check.FixCommand)
	assert.Contains(t, check.FixCommand.Command, "python3")
}

func TestCheckPip_ModuleFallback(t *testing.T) {
	exec := healthyExecutor()
	exec.Missing["pip3"] = true
	exec.Missing["pip"] = true

	check := CheckPip(context.Background(), exec)
	assert.Equal(t, StatusOK, check.Status)
	assert.Equal(t, "available as python3 -m pip", check.Message)
}

func TestCheckManifest_Missing(t *testing.T) {
	exec := healthyExecutor()
	delete(exec.Files, "requirements.txt")

	check := CheckManifest(exec, "requirements.txt")
	assert.Equal(t, StatusMissing, check.Status)
}

func TestGetSummary_OneManagerIsEnough(t *testing.T) {
	exec := healthyExecutor()
	exec.Missing["yum"] = true

	checker := NewCheckerWithExecutor(exec, "requirements.txt")
	groups := checker.CheckAll(context.Background())

	summary := GetSummary(groups)
	assert.Zero(t, summary.Missing)
	assert.False(t, HasIssues(groups))
}

func TestGetSummary_NoManagersIsBlocking(t *testing.T) {
	exec := healthyExecutor()
	exec.Missing["yum"] = true
	exec.Missing["apt-get"] = true

	checker := NewCheckerWithExecutor(exec, "requirements.txt")
	groups := checker.CheckAll(context.Background())

	assert.True(t, HasIssues(groups))
}
