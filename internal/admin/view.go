// Package admin implements the lab administration view: an in-memory
// snapshot of the labs collection plus the create/edit dialog state,
// with every mutation persisted remotely and followed by a full refetch.
package admin

import (
	"context"
	"strconv"
	"strings"

	"lab-admin-backend/internal/model"
	"lab-admin-backend/internal/store"
)

// Service is the remote labs collection as seen by the view. The GORM
// store satisfies it directly; the HTTP client satisfies it from the
// other side of the wire.
type Service interface {
	ListLabs(ctx context.Context) ([]model.Lab, error)
	CreateLab(ctx context.Context, lab *model.Lab) error
	UpdateLab(ctx context.Context, id int64, update store.LabUpdate) error
	DeleteLab(ctx context.Context, id int64) error
}

// Notifier shows transient, non-blocking messages to the user.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Confirmer asks the user a blocking yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// defaultCapacity is used when the capacity field cannot be parsed as a
// positive integer.
const defaultCapacity = 30

// EmptyPlaceholder is the row text rendered when the collection is empty.
const EmptyPlaceholder = "No labs found"

// FormValues carries the raw string values of the lab dialog form.
// Checkbox-style fields follow form-encoding conventions: they are true
// only when set to "on".
type FormValues struct {
	Name         string
	Building     string
	Capacity     string
	HasProjector string
	HasAC        string
}

type dialogMode int

const (
	modeCreate dialogMode = iota
	modeEdit
)

// View holds the admin screen state. It is driven from a single logical
// thread of execution; completed requests mutate it in call order.
type View struct {
	svc       Service
	notifier  Notifier
	confirmer Confirmer

	labs       []model.Lab
	loading    bool
	dialogOpen bool
	mode       dialogMode
	editing    model.Lab // valid only in edit mode
}

// NewView creates the view in its pre-first-fetch state.
func NewView(svc Service, notifier Notifier, confirmer Confirmer) *View {
	return &View{
		svc:       svc,
		notifier:  notifier,
		confirmer: confirmer,
		labs:      []model.Lab{},
		loading:   true,
	}
}

// Labs returns the current snapshot of the collection.
func (v *View) Labs() []model.Lab { return v.labs }

// Loading reports whether the first fetch has yet to complete.
func (v *View) Loading() bool { return v.loading }

// DialogOpen reports whether the create/edit dialog is showing.
func (v *View) DialogOpen() bool { return v.dialogOpen }

// Editing returns the lab being edited and whether the dialog is in
// edit mode.
func (v *View) Editing() (model.Lab, bool) {
	if v.mode == modeEdit {
		return v.editing, true
	}
	return model.Lab{}, false
}

// FetchLabs replaces the snapshot with the store's current contents,
// ordered by building then name. On failure the snapshot is left as it
// was. The loading flag clears either way.
func (v *View) FetchLabs(ctx context.Context) {
	labs, err := v.svc.ListLabs(ctx)
	if err != nil {
		v.notifier.Error("Failed to load labs")
	} else {
		v.labs = labs
	}
	v.loading = false
}

// OpenCreate opens the dialog in create mode.
func (v *View) OpenCreate() {
	v.mode = modeCreate
	v.editing = model.Lab{}
	v.dialogOpen = true
}

// OpenEdit opens the dialog in edit mode, pre-populated with lab.
func (v *View) OpenEdit(lab model.Lab) {
	v.mode = modeEdit
	v.editing = lab
	v.dialogOpen = true
}

// CloseDialog closes the dialog and drops any edit state.
func (v *View) CloseDialog() {
	v.dialogOpen = false
	v.mode = modeCreate
	v.editing = model.Lab{}
}

// Submit persists the dialog form. In edit mode it updates the edited
// lab's record without touching its availability; in create mode it
// inserts a new, available lab. On failure the dialog stays open so the
// user can retry.
func (v *View) Submit(ctx context.Context, form FormValues) {
	name := form.Name
	building := form.Building
	capacity := parseCapacity(form.Capacity)
	hasProjector := checkboxOn(form.HasProjector)
	hasAC := checkboxOn(form.HasAC)

	var err error
	switch v.mode {
	case modeEdit:
		err = v.svc.UpdateLab(ctx, v.editing.ID, store.LabUpdate{
			Name:         &name,
			Building:     &building,
			Capacity:     &capacity,
			HasProjector: &hasProjector,
			HasAC:        &hasAC,
		})
	case modeCreate:
		err = v.svc.CreateLab(ctx, &model.Lab{
			Name:         name,
			Building:     building,
			Capacity:     capacity,
			HasProjector: hasProjector,
			HasAC:        hasAC,
			IsAvailable:  true,
		})
	}

	if err != nil {
		v.notifier.Error("Failed to save lab")
		return
	}

	v.notifier.Success("Lab saved")
	v.FetchLabs(ctx)
	v.CloseDialog()
}

// Delete removes a lab after interactive confirmation. Declining is a
// no-op with no store call.
func (v *View) Delete(ctx context.Context, id int64) {
	if !v.confirmer.Confirm("Are you sure you want to delete this lab?") {
		return
	}

	if err := v.svc.DeleteLab(ctx, id); err != nil {
		v.notifier.Error("Failed to delete lab")
		return
	}

	v.notifier.Success("Lab deleted")
	v.FetchLabs(ctx)
}

// ToggleAvailability flips a lab's availability flag. Success is
// surfaced only through the refetch, not a notification.
func (v *View) ToggleAvailability(ctx context.Context, id int64, current bool) {
	next := !current
	if err := v.svc.UpdateLab(ctx, id, store.LabUpdate{IsAvailable: &next}); err != nil {
		v.notifier.Error("Failed to update availability")
		return
	}

	v.FetchLabs(ctx)
}

// parseCapacity parses the capacity form field, falling back to the
// default for anything that is not a positive integer.
func parseCapacity(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return defaultCapacity
	}
	return n
}

func checkboxOn(s string) bool {
	return s == "on"
}
