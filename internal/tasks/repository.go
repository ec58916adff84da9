// Package tasks owns the task collection and mirrors it to the document store.
package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/studyd/internal/model"
	"github.com/sandeepkv93/studyd/internal/storage"
)

type Draft struct {
	Text     string
	Deadline model.Date
	Priority model.Priority
	Category string
}

// Patch carries the fields to merge into a task; nil fields are left alone.
type Patch struct {
	Text     *string
	Deadline *model.Date
	Priority *model.Priority
	Category *string
	Notes    *string
	Tags     *[]string
}

type Repository struct {
	store storage.Store
	items []model.Task
	now   func() time.Time

	// stored is false until a task document has been loaded or written.
	stored  bool
	dropped int
}

// Open loads the task document. A missing document starts an empty list.
// Records that fail Validate or repeat an earlier id are dropped; Dropped
// reports how many.
func Open(ctx context.Context, store storage.Store, now func() time.Time) (*Repository, error) {
	if now == nil {
		now = time.Now
	}
	r := &Repository{store: store, now: now}
	var loaded []model.Task
	found, err := storage.Load(ctx, store, storage.KeyTasks, &loaded)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	r.stored = found
	r.items = make([]model.Task, 0, len(loaded))
	seen := make(map[model.TaskID]bool, len(loaded))
	for _, t := range loaded {
		if t.Validate() != nil || seen[t.ID] {
			r.dropped++
			continue
		}
		seen[t.ID] = true
		if t.Tags == nil {
			t.Tags = []string{}
		}
		r.items = append(r.items, t)
	}
	return r, nil
}

func (r *Repository) Dropped() int { return r.dropped }

func (r *Repository) Len() int { return len(r.items) }

// All returns the tasks in stored (insertion) order.
func (r *Repository) All() []model.Task {
	return cloneTasks(r.items)
}

func (r *Repository) Get(id model.TaskID) (model.Task, error) {
	idx := r.indexOf(id)
	if idx < 0 {
		return model.Task{}, model.ErrNotFound
	}
	return cloneTask(r.items[idx]), nil
}

// Add appends a new task. A *model.StorageError means the task was added but
// not persisted.
func (r *Repository) Add(ctx context.Context, d Draft) (model.Task, error) {
	text := strings.TrimSpace(d.Text)
	if text == "" {
		return model.Task{}, &model.ValidationError{Field: "text", Message: "please enter a task"}
	}
	now := r.now()
	category := strings.TrimSpace(d.Category)
	if category == "" {
		category = model.DefaultCategory
	}
	priority := d.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.IsValid() {
		return model.Task{}, &model.ValidationError{Field: "priority", Message: fmt.Sprintf("unknown priority %q", priority)}
	}
	task := model.Task{
		ID:        r.nextID(now),
		Text:      text,
		CreatedAt: now,
		Deadline:  d.Deadline,
		Priority:  priority,
		Category:  category,
		Tags:      []string{},
	}
	r.items = append(r.items, task)
	return cloneTask(task), r.persist(ctx)
}

// Toggle flips completion. Unknown ids are ignored.
func (r *Repository) Toggle(ctx context.Context, id model.TaskID) (model.Task, bool, error) {
	idx := r.indexOf(id)
	if idx < 0 {
		return model.Task{}, false, nil
	}
	task := &r.items[idx]
	task.Completed = !task.Completed
	if task.Completed {
		at := r.now()
		task.CompletedAt = &at
	} else {
		task.CompletedAt = nil
	}
	return cloneTask(*task), true, r.persist(ctx)
}

// Delete removes a task permanently. Unknown ids are ignored.
func (r *Repository) Delete(ctx context.Context, id model.TaskID) (bool, error) {
	idx := r.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	r.items = append(r.items[:idx], r.items[idx+1:]...)
	return true, r.persist(ctx)
}

// Edit merges p into the task. Unknown ids are ignored.
func (r *Repository) Edit(ctx context.Context, id model.TaskID, p Patch) (model.Task, bool, error) {
	idx := r.indexOf(id)
	if idx < 0 {
		return model.Task{}, false, nil
	}
	next := cloneTask(r.items[idx])
	if p.Text != nil {
		text := strings.TrimSpace(*p.Text)
		if text == "" {
			return model.Task{}, true, &model.ValidationError{Field: "text", Message: "task text cannot be empty"}
		}
		next.Text = text
	}
	if p.Deadline != nil {
		next.Deadline = *p.Deadline
	}
	if p.Priority != nil {
		if !p.Priority.IsValid() {
			return model.Task{}, true, &model.ValidationError{Field: "priority", Message: fmt.Sprintf("unknown priority %q", *p.Priority)}
		}
		next.Priority = *p.Priority
	}
	if p.Category != nil {
		next.Category = strings.TrimSpace(*p.Category)
	}
	if p.Notes != nil {
		next.Notes = *p.Notes
	}
	if p.Tags != nil {
		next.Tags = append([]string{}, (*p.Tags)...)
	}
	r.items[idx] = next
	return cloneTask(next), true, r.persist(ctx)
}

// Reset deletes every task.
func (r *Repository) Reset(ctx context.Context) error {
	r.items = make([]model.Task, 0)
	return r.persist(ctx)
}

// SeedWelcome inserts the starter tasks on first launch, when no task
// document has ever been stored. An emptied list stays empty.
func (r *Repository) SeedWelcome(ctx context.Context) (bool, error) {
	if r.stored || len(r.items) > 0 {
		return false, nil
	}
	now := r.now()
	r.items = []model.Task{
		{
			ID:        model.TaskID(now.Add(-100 * time.Second).UnixMilli()),
			Text:      "Welcome: Create your first task",
			CreatedAt: now,
			Priority:  model.PriorityMedium,
			Category:  "welcome",
			Notes:     "Use the Tasks view to add tasks",
			Tags:      []string{},
		},
		{
			ID:        model.TaskID(now.Add(-90 * time.Second).UnixMilli()),
			Text:      "Try the Focus Timer",
			CreatedAt: now,
			Priority:  model.PriorityLow,
			Category:  "focus",
			Tags:      []string{},
		},
	}
	return true, r.persist(ctx)
}

func (r *Repository) persist(ctx context.Context) error {
	r.stored = true
	if err := r.store.Set(ctx, storage.KeyTasks, r.items); err != nil {
		return &model.StorageError{Key: storage.KeyTasks, Err: err}
	}
	return nil
}

func (r *Repository) indexOf(id model.TaskID) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}

// nextID uses the creation time in milliseconds, bumped past any existing id
// so two tasks added within the same millisecond stay distinct.
func (r *Repository) nextID(now time.Time) model.TaskID {
	id := model.TaskID(now.UnixMilli())
	for _, t := range r.items {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}

func cloneTask(t model.Task) model.Task {
	out := t
	if t.Tags != nil {
		out.Tags = append([]string{}, t.Tags...)
	}
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		out.CompletedAt = &at
	}
	return out
}

func cloneTasks(in []model.Task) []model.Task {
	out := make([]model.Task, 0, len(in))
	for _, t := range in {
		out = append(out, cloneTask(t))
	}
	return out
}
