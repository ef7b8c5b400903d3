package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "requirements.txt")
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, `# app dependencies
streamlit==1.32.0
openai>=1.12.0
pydantic>=2.0.0,<3.0.0
python-dotenv
supabase>=2.3.0  # client for auth + whitelist
`)

	m, err := Load(path)
	require.NoError(t, err)
	require.Len(t, m.Requirements, 5)

	st := m.Get("streamlit")
	require.NotNil(t, st)
	assert.Equal(t, "1.32.0", st.Pin())
	assert.Equal(t, 2, st.Line)

	pyd := m.Get("pydantic")
	require.NotNil(t, pyd)
	require.Len(t, pyd.Constraints, 2)
	assert.Equal(t, OpAtLeast, pyd.Constraints[0].Op)
	assert.Equal(t, OpLess, pyd.Constraints[1].Op)
	assert.Equal(t, "pydantic>=2.0.0,<3.0.0", pyd.Spec())

	dotenv := m.Get("python-dotenv")
	require.NotNil(t, dotenv)
	assert.Empty(t, dotenv.Constraints)

	sb := m.Get("supabase")
	require.NotNil(t, sb)
	assert.Equal(t, "", sb.Pin())
	assert.Equal(t, "supabase>=2.3.0", sb.Spec())
}

func TestLoad_ExtrasAndMarkers(t *testing.T) {
	path := writeManifest(t, `uvicorn[standard]>=0.27.0
soundfile>=0.12.1 ; sys_platform != "win32"
`)

	m, err := Load(path)
	require.NoError(t, err)
	require.Len(t, m.Requirements, 2)

	uv := m.Requirements[0]
	assert.Equal(t, []string{"standard"}, uv.Extras)
	assert.Equal(t, "uvicorn[standard]>=0.27.0", uv.Spec())

	sf := m.Requirements[1]
	assert.Equal(t, `sys_platform != "win32"`, sf.Marker)
	assert.Equal(t, "soundfile>=0.12.1", sf.Spec())
}

func TestLoad_SkipsOptionsAndURLs(t *testing.T) {
	path := writeManifest(t, `-r base.txt
--extra-index-url https://pypi.example.org/simple
torch @ https://download.pytorch.org/whl/cpu/torch-2.2.0.whl
numpy>=1.26.0
`)

	m, err := Load(path)
	require.NoError(t, err)
	require.Len(t, m.Requirements, 1)
	assert.Equal(t, "numpy", m.Requirements[0].Name)
	assert.Len(t, m.Skipped, 3)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}

func TestLoad_InvalidSpecifier(t *testing.T) {
	path := writeManifest(t, "openai=>1.0\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid version specifier")
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "python-dotenv", NormalizeName("Python_DotEnv"))
	assert.Equal(t, "ruamel-yaml", NormalizeName("ruamel.yaml"))
	assert.Equal(t, "a-b", NormalizeName("a-_-b"))
}
