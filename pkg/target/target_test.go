package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	registry, err := LoadDefaults()
	require.NoError(t, err)

	assert.Equal(t, []string{"container", "runtime", "vercel"}, registry.Names())
}

func TestLoadDefaults_Container(t *testing.T) {
	registry, err := LoadDefaults()
	require.NoError(t, err)

	tgt := registry.Get("container")
	require.NotNil(t, tgt)

	assert.Equal(t, []ManagerFamily{FamilyApt, FamilyYum}, tgt.Managers)
	assert.Contains(t, tgt.Packages(FamilyApt), "portaudio19-dev")
	assert.Contains(t, tgt.Packages(FamilyApt), "libpq-dev")
	assert.Contains(t, tgt.Packages(FamilyYum), "alsa-lib-devel")
	assert.True(t, tgt.Steps.OSBestEffort)
	assert.True(t, tgt.Steps.CachePurge)
	assert.True(t, tgt.Steps.Freeze)
	assert.Equal(t, "requirements.txt", tgt.ManifestPath)
	assert.Equal(t, "installed_packages.txt", tgt.FreezePath)
	assert.Empty(t, tgt.Extras)
}

func TestLoadDefaults_Vercel(t *testing.T) {
	registry, err := LoadDefaults()
	require.NoError(t, err)

	tgt := registry.Get("vercel")
	require.NotNil(t, tgt)

	// yum first on Amazon Linux
	assert.Equal(t, []ManagerFamily{FamilyYum, FamilyApt}, tgt.Managers)

	require.NotEmpty(t, tgt.Extras)
	assert.Equal(t, "supabase>=2.3.0", tgt.Extras[0].Spec())

	names := make([]string, len(tgt.Extras))
	for i, e := range tgt.Extras {
		names[i] = e.Name
	}
	assert.ElementsMatch(t, []string{"supabase", "gotrue", "postgrest", "storage3", "realtime"}, names)
}

func TestLoadDefaults_Runtime(t *testing.T) {
	registry, err := LoadDefaults()
	require.NoError(t, err)

	tgt := registry.Get("runtime")
	require.NotNil(t, tgt)

	assert.False(t, tgt.Steps.CachePurge)
	assert.False(t, tgt.Steps.Freeze)
	assert.Empty(t, tgt.FreezePath)
}

func TestRegistry_Get_Unknown(t *testing.T) {
	registry := NewRegistry()
	assert.Nil(t, registry.Get("nope"))
}

func TestLoadYAML_Invalid(t *testing.T) {
	_, err := loadYAML([]byte("targets:\n  - display_name: No Name\n    managers: [apt]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing name")

	_, err = loadYAML([]byte("targets:\n  - name: empty\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no package managers")
}

func TestExtra_Spec(t *testing.T) {
	assert.Equal(t, "postgrest>=0.16.0", Extra{Name: "postgrest", MinVersion: "0.16.0"}.Spec())
	assert.Equal(t, "postgrest", Extra{Name: "postgrest"}.Spec())
}
