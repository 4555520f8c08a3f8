package tui

import (
	"encoding/base64"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemOpener_Materialize(t *testing.T) {
	o := SystemOpener{TempDir: t.TempDir()}

	path, err := o.materialize("/media/scenarios/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/media/scenarios/a.jpg", path)

	ref := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png bytes"))
	path, err = o.materialize(ref)
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(got))
}

func TestSystemOpener_BadDataURL(t *testing.T) {
	o := SystemOpener{TempDir: t.TempDir()}

	_, err := o.materialize("data:text/plain,hello")
	require.Error(t, err)

	_, err = o.materialize("data:image/png;base64,!!!")
	require.Error(t, err)

	msg := o.Open("data:nonsense")()
	opened, ok := msg.(OpenedMsg)
	require.True(t, ok)
	assert.Error(t, opened.Err)
}

func TestSystemOpener_Command(t *testing.T) {
	assert.Equal(t, "feh", SystemOpener{Command: "feh"}.command())
	assert.NotEmpty(t, SystemOpener{}.command())
}
