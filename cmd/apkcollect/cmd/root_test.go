package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"apkcollect/internal/application"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		verbose = false
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRoot_CollectsIntoDestination(t *testing.T) {
	source := t.TempDir()
	dest := filepath.Join(t.TempDir(), "repo", "apk")
	apk := filepath.Join(source, "build", "app-release-unsigned.apk")
	require.NoError(t, os.MkdirAll(filepath.Dir(apk), 0755))
	require.NoError(t, os.WriteFile(apk, []byte("app"), 0644))

	out, err := runRoot(t, "--source", source, "--dest", dest)

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dest, "app.apk"))
	assert.Contains(t, out, "Looking for APKs")
	assert.Contains(t, out, "Copying")
	assert.Contains(t, out, apk)
	assert.Contains(t, out, "Collected 1 APKs into "+dest)
}

func TestRoot_EmptySourceStillSucceeds(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "apk")

	out, err := runRoot(t, "--source", filepath.Join(t.TempDir(), "missing"), "--dest", dest)

	require.NoError(t, err)
	assert.DirExists(t, dest)
	assert.Contains(t, out, "Collected 0 APKs")
}

func TestRoot_VerboseEnablesDebug(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "apk")

	_, err := runRoot(t, "-V", "--source", t.TempDir(), "--dest", dest)

	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestRoot_OverlappingRootsRejected(t *testing.T) {
	source := t.TempDir()

	_, err := runRoot(t, "--source", source, "--dest", source)

	assert.ErrorIs(t, err, application.ErrInvalidPath)
}

func TestRoot_RejectsArguments(t *testing.T) {
	_, err := runRoot(t, "--source", t.TempDir(), "--dest", filepath.Join(t.TempDir(), "apk"), "extra")

	assert.Error(t, err)
}

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer

	quiet := newLogger(&buf, false)
	quiet.Debug("hidden")
	quiet.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "INFO")
}

func TestRoot_FailsWhenHomeUnresolvable(t *testing.T) {
	t.Setenv("HOME", "")
	dest := filepath.Join(t.TempDir(), "apk")

	out, err := runRoot(t, "--source", "~/apk-artifacts", "--dest", dest)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot resolve source root")
	assert.NotContains(t, out, "Looking for APKs")
	assert.NoDirExists(t, dest)
}

func TestRoot_ExpandsHomeInSource(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	apk := filepath.Join(home, "apk-artifacts", "build", "app-unsigned.apk")
	require.NoError(t, os.MkdirAll(filepath.Dir(apk), 0755))
	require.NoError(t, os.WriteFile(apk, []byte("app"), 0644))
	dest := filepath.Join(t.TempDir(), "apk")

	_, err := runRoot(t, "--source", "~/apk-artifacts", "--dest", dest)

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dest, "app.apk"))
}
