package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivraj416/egram/internal/content/model"
	"github.com/shivraj416/egram/socket"
	"github.com/shivraj416/egram/store"
)

// The hub is not running in these tests, so published events stay queued on
// its broadcast channel where assertions can drain them.
func newTestService() (*Service, *store.MemoryStore, *socket.Hub) {
	st := store.NewMemoryStore()
	hub := socket.NewHub()
	return New(st, hub), st, hub
}

func drainEvents(hub *socket.Hub) []socket.Event {
	var events []socket.Event
	for {
		select {
		case e := <-hub.Broadcast:
			events = append(events, e)
		default:
			return events
		}
	}
}

func TestCreateNoticeAppliesDefaultsAndBroadcasts(t *testing.T) {
	svc, st, hub := newTestService()

	notice, err := svc.CreateNotice(model.CreateNoticeRequest{
		Title:       "Water supply",
		Description: "Maintenance on Monday",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, notice.ID)
	assert.Equal(t, "General", notice.Category)

	doc, err := st.Load()
	require.NoError(t, err)
	require.Len(t, doc.Info, 1)
	assert.Equal(t, *notice, doc.Info[0])

	events := drainEvents(hub)
	require.Len(t, events, 1)
	assert.Equal(t, socket.KindInfo, events[0].Kind)
}

func TestCreateNoticeMissingFieldTouchesNothing(t *testing.T) {
	svc, st, hub := newTestService()

	_, err := svc.CreateNotice(model.CreateNoticeRequest{Title: "No description"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "description", verr.Field)

	doc, err := st.Load()
	require.NoError(t, err)
	assert.Empty(t, doc.Info)
	assert.Empty(t, drainEvents(hub), "no broadcast may fire on validation failure")
}

func TestCreateMemberRequiresEveryField(t *testing.T) {
	svc, _, hub := newTestService()

	cases := []model.CreateMemberRequest{
		{Role: "Sarpanch", Contact: "12345"},
		{Name: "Asha", Contact: "12345"},
		{Name: "Asha", Role: "Sarpanch"},
	}
	for _, req := range cases {
		_, err := svc.CreateMember(req)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	}
	assert.Empty(t, drainEvents(hub))
}

func TestCreateIDsAreUnique(t *testing.T) {
	svc, _, _ := newTestService()

	seen := make(map[string]bool)
	for i := 0; i < 25; i++ {
		m, err := svc.CreateMember(model.CreateMemberRequest{Name: "Asha", Role: "Member", Contact: "1"})
		require.NoError(t, err)
		assert.False(t, seen[m.ID], "duplicate id %s", m.ID)
		seen[m.ID] = true
	}
}

func TestCreateSchemeRejectsEndBeforeStart(t *testing.T) {
	svc, st, hub := newTestService()

	_, err := svc.CreateScheme(model.CreateSchemeRequest{
		Title:       "Irrigation subsidy",
		Description: "Pump sets",
		Start:       "2024-06-01",
		End:         "2024-01-01",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "end", verr.Field)

	doc, err := st.Load()
	require.NoError(t, err)
	assert.Empty(t, doc.Schemes)
	assert.Empty(t, drainEvents(hub))
}

func TestCreateSchemeRejectsBadDates(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateScheme(model.CreateSchemeRequest{
		Title:       "Irrigation subsidy",
		Description: "Pump sets",
		Start:       "June 1st",
		End:         "2024-12-01",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "start", verr.Field)
}

func TestSchemesActiveFiltersExpired(t *testing.T) {
	svc, _, _ := newTestService()

	past := time.Now().AddDate(-1, 0, 0).Format("2006-01-02")
	future := time.Now().AddDate(1, 0, 0).Format("2006-01-02")

	_, err := svc.CreateScheme(model.CreateSchemeRequest{
		Title: "Expired", Description: "d", Start: "2000-01-01", End: past,
	})
	require.NoError(t, err)
	_, err = svc.CreateScheme(model.CreateSchemeRequest{
		Title: "Running", Description: "d", Start: "2000-01-01", End: future,
	})
	require.NoError(t, err)

	all, err := svc.Schemes(false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.Schemes(true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Running", active[0].Title)
}

func TestDeleteIsIdempotent(t *testing.T) {
	svc, st, hub := newTestService()

	m, err := svc.CreateMember(model.CreateMemberRequest{Name: "Asha", Role: "Member", Contact: "1"})
	require.NoError(t, err)
	drainEvents(hub)

	require.NoError(t, svc.DeleteMember(m.ID))
	require.NoError(t, svc.DeleteMember(m.ID), "second delete must also succeed")
	require.NoError(t, svc.DeleteMember("999999"), "unknown id is a no-op")

	doc, err := st.Load()
	require.NoError(t, err)
	assert.Empty(t, doc.Members)

	// Each delete still notifies viewers so they refresh.
	assert.Len(t, drainEvents(hub), 3)
}

func TestDeletePreservesOrderOfRemaining(t *testing.T) {
	svc, st, _ := newTestService()

	var ids []string
	for _, name := range []string{"A", "B", "C"} {
		m, err := svc.CreateMember(model.CreateMemberRequest{Name: name, Role: "r", Contact: "c"})
		require.NoError(t, err)
		ids = append(ids, m.ID)
	}

	require.NoError(t, svc.DeleteMember(ids[1]))

	doc, err := st.Load()
	require.NoError(t, err)
	require.Len(t, doc.Members, 2)
	assert.Equal(t, "A", doc.Members[0].Name)
	assert.Equal(t, "C", doc.Members[1].Name)
}

func TestAddImageBuildsDataURI(t *testing.T) {
	svc, _, hub := newTestService()

	img, err := svc.AddImage([]byte{0x89, 'P', 'N', 'G'}, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "Uploaded Image", img.Alt)
	assert.Equal(t, "data:image/png;base64,iVBORw==", img.URL)

	events := drainEvents(hub)
	require.Len(t, events, 1)
	assert.Equal(t, socket.KindGallery, events[0].Kind)
}

func TestAddImageRejectsEmptyUpload(t *testing.T) {
	svc, _, hub := newTestService()

	_, err := svc.AddImage(nil, "image/png")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, drainEvents(hub))
}

func TestSubmitMessageStoresAndBroadcasts(t *testing.T) {
	svc, st, hub := newTestService()

	msg, err := svc.SubmitMessage(model.ContactRequest{
		Name: "Ravi", Email: "ravi@example.com", Message: "Streetlight broken",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)

	doc, err := st.Load()
	require.NoError(t, err)
	require.Len(t, doc.Messages, 1)
	assert.Equal(t, "Ravi", doc.Messages[0].Name)

	events := drainEvents(hub)
	require.Len(t, events, 1)
	assert.Equal(t, socket.KindContact, events[0].Kind)
	assert.Nil(t, events[0].Payload, "contact payloads are not pushed to viewers")
}

func TestSaveFailurePropagatesAndSkipsBroadcast(t *testing.T) {
	svc, st, hub := newTestService()
	st.SaveErr = assert.AnError

	_, err := svc.CreateMember(model.CreateMemberRequest{Name: "Asha", Role: "Member", Contact: "1"})
	require.Error(t, err)
	assert.Empty(t, drainEvents(hub), "failed save must not notify viewers")
}
