// Package mirror pushes the local task list to a remote list.
//
// Tasks are matched by trimmed title. Each remote task matches at most one
// local task. Remote tasks are never deleted or reopened.
package mirror

import (
	"context"
	"fmt"
	"strings"

	"tasklist/internal/service"
	"tasklist/internal/task"
)

// Create is a task missing on the remote side.
type Create struct {
	Title     string
	Completed bool
}

// Complete is a remote open task whose local twin is completed.
type Complete struct {
	TaskID string
	Title  string
}

// Plan lists the remote changes needed to mirror the local list.
type Plan struct {
	Create   []Create
	Complete []Complete
	// Unchanged counts local tasks already mirrored.
	Unchanged int
}

// Empty reports whether the plan has nothing to do.
func (p Plan) Empty() bool {
	return len(p.Create) == 0 && len(p.Complete) == 0
}

// Result counts the changes Apply performed.
type Result struct {
	Created   int
	Completed int
}

// Build compares local against remote and returns the changes to make.
func Build(local []task.Task, remote []service.Task) Plan {
	byTitle := make(map[string][]service.Task)
	for _, r := range remote {
		title := strings.TrimSpace(r.Title)
		byTitle[title] = append(byTitle[title], r)
	}

	var plan Plan
	for _, t := range local {
		title := task.NormalizeText(t.Text)
		candidates := byTitle[title]
		if len(candidates) == 0 {
			plan.Create = append(plan.Create, Create{Title: title, Completed: t.Completed})
			continue
		}

		twin := candidates[0]
		byTitle[title] = candidates[1:]

		if t.Completed && !twin.Completed() {
			plan.Complete = append(plan.Complete, Complete{TaskID: twin.ID, Title: title})
			continue
		}
		plan.Unchanged++
	}
	return plan
}

// Apply performs plan against listID, stopping at the first failure.
// The returned Result counts what was done before the failure.
func Apply(ctx context.Context, svc service.Service, listID string, plan Plan) (Result, error) {
	var res Result
	for _, c := range plan.Create {
		if err := svc.CreateTask(ctx, listID, c.Title, c.Completed); err != nil {
			return res, fmt.Errorf("create %q: %w", c.Title, err)
		}
		res.Created++
	}
	for _, c := range plan.Complete {
		if err := svc.CompleteTask(ctx, listID, c.TaskID); err != nil {
			return res, fmt.Errorf("complete %q: %w", c.Title, err)
		}
		res.Completed++
	}
	return res, nil
}
