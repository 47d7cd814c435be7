package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/taskboard/internal/client/views"
)

// listProjects renders the project list screen. On a failed refetch the
// last known list is still shown, with the error above it.
func (a *App) listProjects(ctx context.Context) {

	view := views.NewProjectListView(a.deps)
	view.Mount()
	defer view.Unmount()

	projects, err := view.Load(ctx)
	if err != nil {
		fmt.Println("Error:", err.Error())
		if len(projects) == 0 {
			return
		}
		fmt.Println("Showing last known data:")
	}

	if len(projects) == 0 {
		fmt.Println("No projects yet. Create one with 'newproject'.")
		return
	}
	for _, p := range projects {
		fmt.Printf("  %s  %s\n", p.ID, p.Title)
	}
}

// newProject runs the new-project form.
func (a *App) newProject(ctx context.Context) {

	view := views.NewProjectFormView(a.deps)
	view.Mount()
	defer view.Unmount()

	title, err := GetSimpleText(a.reader, "Project title", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	view.Form.Set("title", title)

	project, err := view.Submit(ctx)
	if err != nil {
		fmt.Println("Could not create project:")
		printFormErrors(os.Stdout, view.Form.Errors())
		return
	}

	fmt.Printf("Created project %s (%s)\n", project.Title, project.ID)
}
