package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/evescroller/cutscene"
	"github.com/milk9111/evescroller/sound"
)

func TestEmbeddedSpecsAreValid(t *testing.T) {
	player, err := LoadPlayerSpec()
	require.NoError(t, err)
	assert.NoError(t, player.Movement.Validate())
	require.NotNil(t, player.Evolved)
	assert.NoError(t, player.Evolved.Validate())
	assert.Greater(t, player.Evolved.Momentum.MaxMoveSpeed, player.Movement.Momentum.MaxMoveSpeed)
	require.NotNil(t, player.EvolvedSprite)
	assert.NotEqual(t, player.Sprite.Color, player.EvolvedSprite.Color)
	assert.Positive(t, player.Sprite.Animation.Squash)
	assert.NotZero(t, player.Sprite.Animation.Fast.A)
	assert.Equal(t, color.RGBA{R: 0xe8, G: 0xd2, B: 0x7a, A: 0xff}, player.Sprite.Color.RGBA)

	cam, err := LoadCameraSpec()
	require.NoError(t, err)
	assert.NoError(t, cam.Follow.Validate())
	assert.Equal(t, 16.0, cam.ViewWidth)
	assert.Equal(t, 8.0, cam.Feedback.LandingTraumaSpeed)

	cs, err := LoadCutsceneSpec()
	require.NoError(t, err)
	assert.True(t, cs.SkipWithInput)
	src, err := LoadScript(cs.Script)
	require.NoError(t, err)
	_, err = cutscene.NewScriptSequence(cs.Script, src)
	assert.NoError(t, err)
}

func TestEmbeddedAudioRenders(t *testing.T) {
	spec, err := LoadAudioSpec()
	require.NoError(t, err)
	require.NotNil(t, spec.Proximity)

	names := map[string]bool{}
	for _, e := range append(spec.Music, spec.SFX...) {
		pcm, err := sound.Render(e, spec.SampleRate)
		require.NoError(t, err, e.Name)
		assert.NotEmpty(t, pcm, e.Name)
		names[e.Name] = true
	}
	for _, want := range []string{"theme", "jump", "land", "speed_max", "collect", "checkpoint", "respawn", "tuning", spec.Proximity.Track} {
		assert.True(t, names[want], want)
	}
}

func TestCleanPaths(t *testing.T) {
	tests := []struct {
		in     string
		prefab string
		script string
	}{
		{"player.yaml", "player.yaml", "scripts/player.yaml.tengo"},
		{"prefabs/camera.yaml", "camera.yaml", "scripts/camera.yaml.tengo"},
		{"intro", "intro", "scripts/intro.tengo"},
		{"scripts/intro.tengo", "scripts/intro.tengo", "scripts/intro.tengo"},
		{"prefabs/scripts/intro.tengo", "scripts/intro.tengo", "scripts/intro.tengo"},
		{"", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.prefab, cleanPrefabPath(tc.in))
			assert.Equal(t, tc.script, cleanScriptPath(tc.in))
		})
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#102030")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, c)

	c, err = ParseHexColor("10203040")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x40), c.A)

	_, err = ParseHexColor("#12345")
	assert.Error(t, err)
	_, err = ParseHexColor("#zz0000")
	assert.Error(t, err)
}

func TestWatcherReportsChangedSpecs(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "camera.yaml"), []byte("view_width: 20\n"), 0o644))

	var got []string
	require.Eventually(t, func() bool {
		got = append(got, w.Drain()...)
		return len(got) > 0
	}, 2*time.Second, 10*time.Millisecond)
	for _, name := range got {
		assert.Equal(t, "camera.yaml", filepath.Base(name))
	}
}
