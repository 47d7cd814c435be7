package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/taskboard/internal/client/models"
	"github.com/dmitrijs2005/taskboard/internal/client/views"
)

// openTask renders the task detail screen: the task, its subtasks, and
// its activity feed.
func (a *App) openTask(ctx context.Context, taskID string) {

	view := views.NewTaskDetailView(a.deps, taskID)
	view.Mount()
	defer view.Unmount()

	task, err := view.Task(ctx)
	if err != nil {
		fmt.Println("Error:", err.Error())
		if task == nil {
			return
		}
		fmt.Println("Showing last known data:")
	}

	fmt.Printf("[%s] %s\n", task.Status, task.Title)
	if task.Description != "" {
		fmt.Println(task.Description)
	}
	if task.DueDate != nil {
		fmt.Println("Due:", task.DueDate.Format("2006-01-02"))
	}

	if subtasks, err := view.Subtasks(ctx); err == nil && len(subtasks) > 0 {
		fmt.Println("Subtasks:")
		for _, s := range subtasks {
			mark := " "
			if s.Done {
				mark = "x"
			}
			fmt.Printf("  [%s] %s\n", mark, s.Title)
		}
	}

	if activity, err := view.Activity(ctx); err == nil && len(activity) > 0 {
		fmt.Println("Activity:")
		for _, e := range activity {
			fmt.Printf("  %s %s %s\n", e.CreatedAt.Format("2006-01-02 15:04"), e.Actor, e.Action)
		}
	}
}

// commentTask runs the comment form on a task.
func (a *App) commentTask(ctx context.Context, taskID string) {

	view := views.NewTaskDetailView(a.deps, taskID)
	view.Mount()
	defer view.Unmount()

	body, err := GetSimpleText(a.reader, "Comment", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	view.CommentForm.Set("body", body)

	if _, err := view.Comment(ctx); err != nil {
		fmt.Println("Could not add comment:")
		printFormErrors(os.Stdout, view.CommentForm.Errors())
		return
	}
	fmt.Println("Comment added")
}

// completeTask marks a task done.
func (a *App) completeTask(ctx context.Context, taskID string) {

	view := views.NewTaskDetailView(a.deps, taskID)
	view.Mount()
	defer view.Unmount()

	task, err := view.Task(ctx)
	if err != nil || task == nil {
		fmt.Println("Could not load task")
		return
	}

	updated := *task
	updated.Status = models.TaskStatusDone
	if _, err := view.Update(ctx, &updated); err != nil {
		fmt.Println("Error:", err.Error())
		return
	}
	fmt.Println("Done!")
}

// deleteTask removes a task.
func (a *App) deleteTask(ctx context.Context, taskID string) {

	view := views.NewTaskDetailView(a.deps, taskID)
	view.Mount()
	defer view.Unmount()

	if err := view.Delete(ctx); err != nil {
		fmt.Println("Error:", err.Error())
		return
	}
	fmt.Println("Task deleted")
}
