package views

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/taskboard/internal/client/models"
)

func TestSettingsSubmitMergesConfirmedPreferences(t *testing.T) {
	fake := &fakeAPI{
		settingsResp: &models.Preferences{DefaultView: "board", Theme: "dark"},
	}
	deps, _ := newTestDeps(t, fake)
	signIn(deps)

	v := NewSettingsView(deps)
	v.Mount()
	v.Form.Set("default_view", "board")
	v.Form.Set("theme", "dark")

	err := v.Submit(context.Background())
	require.NoError(t, err)

	prefs := deps.Session.Get().Preferences
	assert.Equal(t, "board", prefs.DefaultView)
	assert.Equal(t, "dark", prefs.Theme)
	assert.Equal(t, SubmissionSucceeded, v.Form.Submission())
}

func TestSettingsRejectsUnknownTheme(t *testing.T) {
	fake := &fakeAPI{}
	deps, _ := newTestDeps(t, fake)
	signIn(deps)

	v := NewSettingsView(deps)
	v.Mount()
	v.Form.Set("theme", "sepia")

	err := v.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Theme must be light or dark", v.Form.Errors()["theme"])
	assert.Equal(t, models.Preferences{}, deps.Session.Get().Preferences,
		"rejected settings never reach the session")
}

func TestSettingsRequireAuth(t *testing.T) {
	fake := &fakeAPI{}
	deps, _ := newTestDeps(t, fake)

	v := NewSettingsView(deps)
	v.Mount()
	v.Form.Set("theme", "dark")

	err := v.Submit(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSettingsPrefilledFromSession(t *testing.T) {
	fake := &fakeAPI{}
	deps, _ := newTestDeps(t, fake)
	signIn(deps)
	deps.Session.UpdatePreferences(models.Preferences{DefaultView: "list", Theme: "light"})

	v := NewSettingsView(deps)
	assert.Equal(t, "list", v.Form.Get("default_view"))
	assert.Equal(t, "light", v.Form.Get("theme"))
}
