package views

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/client/models"
	"github.com/dmitrijs2005/taskboard/internal/client/mutation"
	"github.com/dmitrijs2005/taskboard/internal/client/query"
)

// Task cache keys. Subtasks and activity share the task's key prefix so
// one invalidation of {"task", id} covers all three.
func keyTask(id string) query.Key         { return query.NewKey("task", id) }
func keyTaskSubtasks(id string) query.Key { return query.NewKey("task", id, "subtasks") }
func keyTaskActivity(id string) query.Key { return query.NewKey("task", id, "activity") }

// TaskDetailView renders one task with its subtasks, activity feed and
// a comment form.
type TaskDetailView struct {
	Controller
	TaskID      string
	CommentForm *Form
}

// NewTaskDetailView returns an unmounted detail screen for the task.
func NewTaskDetailView(d Deps, taskID string) *TaskDetailView {
	return &TaskDetailView{
		Controller:  Controller{Deps: d},
		TaskID:      taskID,
		CommentForm: NewForm("body"),
	}
}

// Task returns the task itself, fetching on a cache miss.
func (v *TaskDetailView) Task(ctx context.Context) (*models.Task, error) {
	e, err := v.Load(ctx, keyTask(v.TaskID), func(ctx context.Context) (any, error) {
		return v.API.GetTask(ctx, v.TaskID)
	}, query.Options{})
	task, _ := query.Data[*models.Task](e)
	return task, err
}

// Subtasks returns the task's checklist.
func (v *TaskDetailView) Subtasks(ctx context.Context) ([]models.Subtask, error) {
	e, err := v.Load(ctx, keyTaskSubtasks(v.TaskID), func(ctx context.Context) (any, error) {
		return v.API.ListSubtasks(ctx, v.TaskID)
	}, query.Options{})
	subtasks, _ := query.Data[[]models.Subtask](e)
	return subtasks, err
}

// Activity returns the task's activity feed.
func (v *TaskDetailView) Activity(ctx context.Context) ([]models.ActivityEntry, error) {
	e, err := v.Load(ctx, keyTaskActivity(v.TaskID), func(ctx context.Context) (any, error) {
		return v.API.ListActivity(ctx, v.TaskID)
	}, query.Options{})
	activity, _ := query.Data[[]models.ActivityEntry](e)
	return activity, err
}

// Update writes the task back and invalidates the task's own keys plus
// any task lists.
func (v *TaskDetailView) Update(ctx context.Context, t *models.Task) (*models.Task, error) {
	if _, ok := v.Session.Token(); !ok {
		return nil, ErrUnauthenticated
	}

	result, err := v.Exec.Execute(ctx, mutation.Request{
		Resource: "task",
		Op:       mutation.OpUpdate,
		TargetID: t.ID,
		Call: func(ctx context.Context) (any, error) {
			return v.API.UpdateTask(ctx, t)
		},
		AffectedKeys: []query.Key{keyTask(t.ID), query.NewKey("tasks")},
	})
	if err != nil {
		return nil, err
	}
	task, _ := result.(*models.Task)
	return task, nil
}

// Delete removes the task and navigates back to the project list.
func (v *TaskDetailView) Delete(ctx context.Context) error {
	if _, ok := v.Session.Token(); !ok {
		return ErrUnauthenticated
	}

	_, err := v.Exec.Execute(ctx, mutation.Request{
		Resource: "task",
		Op:       mutation.OpDelete,
		TargetID: v.TaskID,
		Call: func(ctx context.Context) (any, error) {
			return nil, v.API.DeleteTask(ctx, v.TaskID)
		},
		AffectedKeys: []query.Key{keyTask(v.TaskID), query.NewKey("tasks")},
	})
	if err != nil {
		return err
	}
	v.Nav.Navigate("/projects")
	return nil
}

func validateComment(fields map[string]string) map[string]string {
	errs := map[string]string{}
	required(errs, fields, "body", "Comment cannot be empty")
	return errs
}

// Comment posts the comment form. A confirmed comment invalidates the
// whole task prefix, so the activity feed refetches too.
func (v *TaskDetailView) Comment(ctx context.Context) (*models.Comment, error) {
	if _, ok := v.Session.Token(); !ok {
		return nil, ErrUnauthenticated
	}

	body := v.CommentForm.Get("body")
	req := mutation.Request{
		Resource: "comment",
		Op:       mutation.OpCreate,
		TargetID: v.TaskID,
		Call: func(ctx context.Context) (any, error) {
			return v.API.AddComment(ctx, v.TaskID, body)
		},
		AffectedKeys: []query.Key{keyTask(v.TaskID)},
	}

	result, err := v.submitForm(ctx, v.CommentForm, validateComment, req)
	if err != nil {
		return nil, err
	}
	comment, _ := result.(*models.Comment)
	return comment, nil
}
