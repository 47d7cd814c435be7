package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/taskboard/internal/client/views"
)

// login runs the sign-in screen and persists the session on success.
func (a *App) login(ctx context.Context) {

	view := views.NewLoginView(a.deps)
	view.Mount()
	defer view.Unmount()

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	view.Form.Set("email", email)
	view.Form.Set("password", password)

	if err := view.Submit(ctx); err != nil {
		fmt.Println("Login failed:")
		printFormErrors(os.Stdout, view.Form.Errors())
		return
	}

	a.persistSession(ctx)
	fmt.Println("Logged in")
}
