package views

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/client/models"
	"github.com/dmitrijs2005/taskboard/internal/client/mutation"
)

// SettingsView is the user-settings screen.
type SettingsView struct {
	Controller
	Form *Form
}

// NewSettingsView returns an unmounted settings screen prefilled from
// the current session preferences.
func NewSettingsView(d Deps) *SettingsView {
	v := &SettingsView{
		Controller: Controller{Deps: d},
		Form:       NewForm("default_view", "theme"),
	}
	prefs := d.Session.Get().Preferences
	v.Form.Set("default_view", prefs.DefaultView)
	v.Form.Set("theme", prefs.Theme)
	return v
}

func validateSettings(fields map[string]string) map[string]string {
	errs := map[string]string{}
	switch fields["theme"] {
	case "", "light", "dark":
	default:
		errs["theme"] = "Theme must be light or dark"
	}
	switch fields["default_view"] {
	case "", "list", "board":
	default:
		errs["default_view"] = "Default view must be list or board"
	}
	return errs
}

// Submit saves the settings to the backend and, once confirmed, merges
// them into the session preferences.
func (v *SettingsView) Submit(ctx context.Context) error {
	if _, ok := v.Session.Token(); !ok {
		return ErrUnauthenticated
	}

	prefs := models.Preferences{
		DefaultView: v.Form.Get("default_view"),
		Theme:       v.Form.Get("theme"),
	}
	req := mutation.Request{
		Resource: "settings",
		Op:       mutation.OpUpdate,
		Call: func(ctx context.Context) (any, error) {
			return v.API.UpdateSettings(ctx, prefs)
		},
	}

	result, err := v.submitForm(ctx, v.Form, validateSettings, req)
	if err != nil {
		return err
	}
	if saved, ok := result.(*models.Preferences); ok && saved != nil {
		v.Session.UpdatePreferences(*saved)
	} else {
		v.Session.UpdatePreferences(prefs)
	}
	return nil
}
