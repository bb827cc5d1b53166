package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasforge/oasforge/decl"
)

func TestRunDoctorHealthy(t *testing.T) {
	inputPath, configPath := writeTestInputs(t)

	require.NoError(t, runDoctor(&DoctorOptions{
		InputPath:  inputPath,
		ConfigPath: configPath,
		Verbose:    true,
	}))
}

func TestRunDoctorMissingInput(t *testing.T) {
	_, configPath := writeTestInputs(t)

	err := runDoctor(&DoctorOptions{
		InputPath:  filepath.Join(t.TempDir(), "missing.json"),
		ConfigPath: configPath,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "health check failed")
}

func TestCountPlainClasses(t *testing.T) {
	inputPath, _ := writeTestInputs(t)

	units, err := loadUnits(inputPath)
	require.NoError(t, err)

	reg := decl.NewRegistry(units)
	// UsersController classifies as a service; CreateUserDto stays a plain
	// schema shape.
	assert.Equal(t, 1, countPlainClasses(reg, units))
}
