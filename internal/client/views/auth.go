package views

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/client/models"
	"github.com/dmitrijs2005/taskboard/internal/client/mutation"
)

// RegisterView is the account-registration screen.
type RegisterView struct {
	Controller
	Form *Form
}

// NewRegisterView returns an unmounted registration screen.
func NewRegisterView(d Deps) *RegisterView {
	return &RegisterView{
		Controller: Controller{Deps: d},
		Form:       NewForm("name", "email", "password"),
	}
}

func validateRegistration(fields map[string]string) map[string]string {
	errs := map[string]string{}
	required(errs, fields, "name", "Name is required")
	required(errs, fields, "email", "Email is required")
	email(errs, fields, "email", "Email is not valid")
	required(errs, fields, "password", "Password is required")
	minLen(errs, fields, "password", 6, "Password must be at least 6 characters")
	return errs
}

// Submit validates the form and registers the account. On success the
// user is sent to the login screen.
func (v *RegisterView) Submit(ctx context.Context) error {
	req := mutation.Request{
		Resource: "auth",
		Op:       mutation.OpCreate,
		Call: func(ctx context.Context) (any, error) {
			return v.API.Register(ctx, models.Registration{
				Name:     v.Form.Get("name"),
				Email:    v.Form.Get("email"),
				Password: v.Form.Get("password"),
			})
		},
	}

	if _, err := v.submitForm(ctx, v.Form, validateRegistration, req); err != nil {
		return err
	}

	v.Nav.Navigate("/login")
	return nil
}

// LoginView is the sign-in screen.
type LoginView struct {
	Controller
	Form *Form
}

// NewLoginView returns an unmounted sign-in screen.
func NewLoginView(d Deps) *LoginView {
	return &LoginView{
		Controller: Controller{Deps: d},
		Form:       NewForm("email", "password"),
	}
}

func validateLogin(fields map[string]string) map[string]string {
	errs := map[string]string{}
	required(errs, fields, "email", "Email is required")
	required(errs, fields, "password", "Password is required")
	return errs
}

// Submit validates the form and signs in. On success the session is
// replaced and the user lands on the home screen.
func (v *LoginView) Submit(ctx context.Context) error {
	req := mutation.Request{
		Resource: "auth",
		Op:       mutation.OpUpdate,
		Call: func(ctx context.Context) (any, error) {
			return v.API.Login(ctx, models.Credentials{
				Email:    v.Form.Get("email"),
				Password: v.Form.Get("password"),
			})
		},
	}

	result, err := v.submitForm(ctx, v.Form, validateLogin, req)
	if err != nil {
		return err
	}

	auth, ok := result.(*models.AuthResponse)
	if !ok {
		return ErrUnauthenticated
	}
	v.Session.SetAuth(auth.Token, auth.User)
	v.Nav.Navigate("/")
	return nil
}
