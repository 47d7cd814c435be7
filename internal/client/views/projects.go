package views

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/client/models"
	"github.com/dmitrijs2005/taskboard/internal/client/mutation"
	"github.com/dmitrijs2005/taskboard/internal/client/query"
)

// KeyProjects is the cache key for the project list.
var KeyProjects = query.NewKey("projects")

// ProjectListView renders the project list.
type ProjectListView struct {
	Controller
}

// NewProjectListView returns an unmounted project list screen.
func NewProjectListView(d Deps) *ProjectListView {
	return &ProjectListView{Controller: Controller{Deps: d}}
}

// Load returns the project list, fetching it if the cache has nothing
// fresh. Stale data from a failed refetch is still returned alongside
// the error.
func (v *ProjectListView) Load(ctx context.Context) ([]models.Project, error) {
	e, err := v.Controller.Load(ctx, KeyProjects, func(ctx context.Context) (any, error) {
		return v.API.ListProjects(ctx)
	}, query.Options{})
	projects, _ := query.Data[[]models.Project](e)
	return projects, err
}

// ProjectFormView is the new-project screen.
type ProjectFormView struct {
	Controller
	Form *Form
}

// NewProjectFormView returns an unmounted new-project screen.
func NewProjectFormView(d Deps) *ProjectFormView {
	return &ProjectFormView{
		Controller: Controller{Deps: d},
		Form:       NewForm("title"),
	}
}

func validateProject(fields map[string]string) map[string]string {
	errs := map[string]string{}
	required(errs, fields, "title", "Project title is required")
	return errs
}

// Submit creates the project. A confirmed create invalidates the
// project list so the list screen refetches on its next read.
func (v *ProjectFormView) Submit(ctx context.Context) (*models.Project, error) {
	if _, ok := v.Session.Token(); !ok {
		return nil, ErrUnauthenticated
	}

	title := v.Form.Get("title")
	req := mutation.Request{
		Resource: "project",
		Op:       mutation.OpCreate,
		Call: func(ctx context.Context) (any, error) {
			return v.API.CreateProject(ctx, title)
		},
		AffectedKeys: []query.Key{KeyProjects},
	}

	result, err := v.submitForm(ctx, v.Form, validateProject, req)
	if err != nil {
		return nil, err
	}
	project, _ := result.(*models.Project)
	return project, nil
}
