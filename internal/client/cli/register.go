package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/taskboard/internal/client/views"
)

// register runs the registration screen: prompt, validate, submit.
func (a *App) register(ctx context.Context) {

	view := views.NewRegisterView(a.deps)
	view.Mount()
	defer view.Unmount()

	name, err := GetSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
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

	view.Form.Set("name", name)
	view.Form.Set("email", email)
	view.Form.Set("password", password)

	if err := view.Submit(ctx); err != nil {
		fmt.Println("Registration failed:")
		printFormErrors(os.Stdout, view.Form.Errors())
		return
	}

	fmt.Println("Registered! Please log in.")
}
