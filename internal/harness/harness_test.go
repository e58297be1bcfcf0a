package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths, "no scenario files found")

	for _, path := range paths {
		scenario, err := LoadScenario(path)
		require.NoError(t, err, "loading %s", path)

		t.Run(scenario.Name, func(t *testing.T) {
			require.NoError(t, RunWithGolden(t, scenario))
		})
	}
}

func TestRun_ReasoningSnapshot(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "select_person_reasoning.yaml"))
	require.NoError(t, err)

	snapshot, err := Run(scenario)
	require.NoError(t, err)

	assert.Equal(t, "SELECT", snapshot.Form)
	assert.True(t, snapshot.Reasoning)
	assert.Contains(t, snapshot.Plan, "LabelRangeScan")
	assert.Empty(t, snapshot.Template)
}

func TestRun_ConstructSnapshotCarriesTemplate(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "construct_labels.yaml"))
	require.NoError(t, err)

	snapshot, err := Run(scenario)
	require.NoError(t, err)

	assert.Equal(t, "CONSTRUCT", snapshot.Form)
	require.Len(t, snapshot.Template, 1)
	assert.Contains(t, string(snapshot.render()), "?s <http://example.org/label> ?n")
}

func TestRun_MissingQueryFile(t *testing.T) {
	scenario := &Scenario{
		Name:        "missing",
		Description: "query file does not exist",
		Query:       filepath.Join(t.TempDir(), "absent.json"),
		Mode:        ModePlain,
	}

	_, err := Run(scenario)
	assert.Error(t, err)
}

func TestRun_DeterministicAcrossRuns(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "filter_order_limit.yaml"))
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	assert.Equal(t, first.render(), second.render())
}

func writeScenarioFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
