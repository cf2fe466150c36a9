package admin

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lab-admin-backend/internal/model"
	"lab-admin-backend/internal/store"
)

type recordedUpdate struct {
	id     int64
	update store.LabUpdate
}

// fakeService is an in-memory stand-in for the labs collection.
type fakeService struct {
	labs   []model.Lab
	nextID int64

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	listCalls int
	inserted  []model.Lab
	updates   []recordedUpdate
	deleted   []int64
}

func (f *fakeService) ListLabs(ctx context.Context) ([]model.Lab, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Lab, len(f.labs))
	copy(out, f.labs)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Building != out[j].Building {
			return out[i].Building < out[j].Building
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (f *fakeService) CreateLab(ctx context.Context, lab *model.Lab) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	lab.ID = f.nextID
	f.labs = append(f.labs, *lab)
	f.inserted = append(f.inserted, *lab)
	return nil
}

func (f *fakeService) UpdateLab(ctx context.Context, id int64, update store.LabUpdate) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, recordedUpdate{id: id, update: update})
	for i := range f.labs {
		if f.labs[i].ID != id {
			continue
		}
		if update.Name != nil {
			f.labs[i].Name = *update.Name
		}
		if update.Building != nil {
			f.labs[i].Building = *update.Building
		}
		if update.Capacity != nil {
			f.labs[i].Capacity = *update.Capacity
		}
		if update.HasProjector != nil {
			f.labs[i].HasProjector = *update.HasProjector
		}
		if update.HasAC != nil {
			f.labs[i].HasAC = *update.HasAC
		}
		if update.IsAvailable != nil {
			f.labs[i].IsAvailable = *update.IsAvailable
		}
	}
	return nil
}

func (f *fakeService) DeleteLab(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	kept := f.labs[:0]
	for _, lab := range f.labs {
		if lab.ID != id {
			kept = append(kept, lab)
		}
	}
	f.labs = kept
	return nil
}

type fakeNotifier struct {
	successes []string
	errors    []string
}

func (n *fakeNotifier) Success(message string) { n.successes = append(n.successes, message) }
func (n *fakeNotifier) Error(message string)   { n.errors = append(n.errors, message) }

type fakeConfirmer struct {
	answer  bool
	prompts []string
}

func (c *fakeConfirmer) Confirm(prompt string) bool {
	c.prompts = append(c.prompts, prompt)
	return c.answer
}

func newTestView(svc *fakeService) (*View, *fakeNotifier, *fakeConfirmer) {
	notifier := &fakeNotifier{}
	confirmer := &fakeConfirmer{answer: true}
	return NewView(svc, notifier, confirmer), notifier, confirmer
}

func TestFetchLabsReplacesSnapshotOrdered(t *testing.T) {
	svc := &fakeService{
		labs: []model.Lab{
			{ID: 1, Name: "Lab B", Building: "West Hall"},
			{ID: 2, Name: "Lab Z", Building: "East Hall"},
			{ID: 3, Name: "Lab A", Building: "West Hall"},
		},
	}
	view, _, _ := newTestView(svc)
	assert.True(t, view.Loading())

	view.FetchLabs(context.Background())

	assert.False(t, view.Loading())
	labs := view.Labs()
	require.Len(t, labs, 3)
	assert.Equal(t, []int64{2, 3, 1}, []int64{labs[0].ID, labs[1].ID, labs[2].ID})
}

func TestFetchLabsFailureLeavesSnapshot(t *testing.T) {
	svc := &fakeService{labs: []model.Lab{{ID: 1, Name: "Lab A", Building: "Main"}}}
	view, notifier, _ := newTestView(svc)
	view.FetchLabs(context.Background())
	require.Len(t, view.Labs(), 1)

	svc.listErr = errors.New("store unavailable")
	view.loading = true
	view.FetchLabs(context.Background())

	assert.Len(t, view.Labs(), 1, "snapshot must survive a failed fetch")
	assert.False(t, view.Loading(), "loading clears even on failure")
	assert.Equal(t, []string{"Failed to load labs"}, notifier.errors)
}

func TestSubmitCreateAppliesFormDefaults(t *testing.T) {
	svc := &fakeService{}
	view, notifier, _ := newTestView(svc)
	view.OpenCreate()

	view.Submit(context.Background(), FormValues{
		Name:     "Physics Lab",
		Building: "Science Block",
		Capacity: "",
		HasAC:    "on",
	})

	require.Len(t, svc.inserted, 1)
	created := svc.inserted[0]
	assert.Equal(t, 30, created.Capacity, "blank capacity falls back to 30")
	assert.False(t, created.HasProjector)
	assert.True(t, created.HasAC)
	assert.True(t, created.IsAvailable, "new labs are always available")
	assert.False(t, view.DialogOpen())
	assert.Equal(t, []string{"Lab saved"}, notifier.successes)
}

func TestSubmitCreateParsesCapacity(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"45", 45},
		{" 12 ", 12},
		{"abc", 30},
		{"0", 30},
		{"-3", 30},
	}
	for _, tc := range cases {
		svc := &fakeService{}
		view, _, _ := newTestView(svc)
		view.OpenCreate()
		view.Submit(context.Background(), FormValues{Name: "L", Building: "B", Capacity: tc.input})
		require.Len(t, svc.inserted, 1)
		assert.Equalf(t, tc.want, svc.inserted[0].Capacity, "capacity input %q", tc.input)
	}
}

func TestSubmitEditTargetsEditedLab(t *testing.T) {
	existing := model.Lab{ID: 7, Name: "Old", Building: "Main", Capacity: 20, IsAvailable: false}
	svc := &fakeService{labs: []model.Lab{existing}, nextID: 7}
	view, _, _ := newTestView(svc)

	view.OpenEdit(existing)
	_, editing := view.Editing()
	assert.True(t, editing)

	view.Submit(context.Background(), FormValues{
		Name:         "Renamed",
		Building:     "Main",
		Capacity:     "25",
		HasProjector: "on",
	})

	assert.Empty(t, svc.inserted, "edit must not insert")
	require.Len(t, svc.updates, 1)
	upd := svc.updates[0]
	assert.Equal(t, int64(7), upd.id)
	assert.Nil(t, upd.update.IsAvailable, "edit must not touch availability")
	require.NotNil(t, upd.update.Name)
	assert.Equal(t, "Renamed", *upd.update.Name)

	assert.False(t, svc.labs[0].IsAvailable, "availability unchanged after edit")
	assert.False(t, view.DialogOpen())
	_, editing = view.Editing()
	assert.False(t, editing, "edit state cleared after submit")
}

func TestSubmitFailureKeepsDialogOpen(t *testing.T) {
	svc := &fakeService{
		labs:      []model.Lab{{ID: 1, Name: "Lab A", Building: "Main"}},
		createErr: errors.New("insert rejected"),
	}
	view, notifier, _ := newTestView(svc)
	view.FetchLabs(context.Background())
	listCallsBefore := svc.listCalls

	view.OpenCreate()
	view.Submit(context.Background(), FormValues{Name: "New", Building: "Annex"})

	assert.True(t, view.DialogOpen(), "dialog stays open so the user can retry")
	assert.Equal(t, []string{"Failed to save lab"}, notifier.errors)
	assert.Empty(t, notifier.successes)
	assert.Len(t, view.Labs(), 1, "snapshot unchanged after failed insert")
	assert.Equal(t, listCallsBefore, svc.listCalls, "no refetch after failed insert")
}

func TestDeleteDeclinedIsNoOp(t *testing.T) {
	svc := &fakeService{labs: []model.Lab{{ID: 1, Name: "Lab A", Building: "Main"}}}
	view, notifier, confirmer := newTestView(svc)
	view.FetchLabs(context.Background())
	confirmer.answer = false
	listCallsBefore := svc.listCalls

	view.Delete(context.Background(), 1)

	assert.Empty(t, svc.deleted, "declined confirmation must not reach the store")
	assert.Empty(t, notifier.successes)
	assert.Empty(t, notifier.errors)
	assert.Equal(t, listCallsBefore, svc.listCalls)
	assert.Len(t, view.Labs(), 1)
}

func TestDeleteConfirmedRemovesLab(t *testing.T) {
	svc := &fakeService{labs: []model.Lab{{ID: 1, Name: "Lab A", Building: "Main"}}}
	view, notifier, _ := newTestView(svc)
	view.FetchLabs(context.Background())

	view.Delete(context.Background(), 1)

	assert.Equal(t, []int64{1}, svc.deleted)
	assert.Equal(t, []string{"Lab deleted"}, notifier.successes)
	assert.Empty(t, view.Labs())
}

func TestDeleteFailureLeavesState(t *testing.T) {
	svc := &fakeService{
		labs:      []model.Lab{{ID: 1, Name: "Lab A", Building: "Main"}},
		deleteErr: errors.New("delete rejected"),
	}
	view, notifier, _ := newTestView(svc)
	view.FetchLabs(context.Background())

	view.Delete(context.Background(), 1)

	assert.Equal(t, []string{"Failed to delete lab"}, notifier.errors)
	assert.Len(t, view.Labs(), 1)
}

func TestToggleAvailabilityFlipsFlag(t *testing.T) {
	svc := &fakeService{labs: []model.Lab{{ID: 1, Name: "Lab A", Building: "Main", IsAvailable: true}}}
	view, notifier, _ := newTestView(svc)
	view.FetchLabs(context.Background())

	view.ToggleAvailability(context.Background(), 1, true)

	require.Len(t, svc.updates, 1)
	upd := svc.updates[0].update
	require.NotNil(t, upd.IsAvailable)
	assert.False(t, *upd.IsAvailable)
	assert.Nil(t, upd.Name, "toggle is a partial update")
	assert.False(t, view.Labs()[0].IsAvailable, "refetch reflects the flip")
	assert.Empty(t, notifier.successes, "no success notification for toggles")

	view.ToggleAvailability(context.Background(), 1, false)
	assert.True(t, view.Labs()[0].IsAvailable)
}

func TestToggleAvailabilityFailure(t *testing.T) {
	svc := &fakeService{
		labs:      []model.Lab{{ID: 1, Name: "Lab A", Building: "Main", IsAvailable: true}},
		updateErr: errors.New("update rejected"),
	}
	view, notifier, _ := newTestView(svc)
	view.FetchLabs(context.Background())
	listCallsBefore := svc.listCalls

	view.ToggleAvailability(context.Background(), 1, true)

	assert.Equal(t, []string{"Failed to update availability"}, notifier.errors)
	assert.Equal(t, listCallsBefore, svc.listCalls, "no refetch after failed toggle")
	assert.True(t, view.Labs()[0].IsAvailable)
}

func TestEmptyCollectionShowsPlaceholder(t *testing.T) {
	svc := &fakeService{}
	view, _, _ := newTestView(svc)

	view.FetchLabs(context.Background())

	assert.NotNil(t, view.Labs())
	assert.Empty(t, view.Labs())
	assert.Equal(t, "No labs found", EmptyPlaceholder)
}
