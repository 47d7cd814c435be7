package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/taskboard/internal/client/views"
)

// settings runs the user-settings form and persists the merged
// preferences locally once the backend confirms them.
func (a *App) settings(ctx context.Context) {

	view := views.NewSettingsView(a.deps)
	view.Mount()
	defer view.Unmount()

	prefs := a.session.Get().Preferences
	fmt.Printf("Current: default_view=%q theme=%q\n", prefs.DefaultView, prefs.Theme)

	defaultView, err := GetSimpleText(a.reader, "Default view (list/board)", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	theme, err := GetSimpleText(a.reader, "Theme (light/dark)", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	view.Form.Set("default_view", defaultView)
	view.Form.Set("theme", theme)

	if err := view.Submit(ctx); err != nil {
		fmt.Println("Could not save settings:")
		printFormErrors(os.Stdout, view.Form.Errors())
		return
	}

	a.persistSession(ctx)
	fmt.Println("Settings saved")
}
