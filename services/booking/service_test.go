package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"nestview/models"
	"nestview/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// fakeSlotRepo is an in-memory SlotRepository. Book applies the same
// conditional-update contract as the Mongo implementation: the transition
// happens only if the stored status still reads available, atomically.
type fakeSlotRepo struct {
	mu    sync.Mutex
	slots map[string]*models.Slot
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[string]*models.Slot)}
}

func (r *fakeSlotRepo) Create(ctx context.Context, slot *models.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	cp := *slot
	r.slots[slot.ID] = &cp
	return nil
}

func (r *fakeSlotRepo) GetByID(ctx context.Context, id string) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *slot
	return &cp, nil
}

func (r *fakeSlotRepo) ListByProperty(ctx context.Context, propertyID string) ([]models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Slot{}
	for _, slot := range r.slots {
		if slot.PropertyID == propertyID {
			out = append(out, *slot)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) ListByAgent(ctx context.Context, agentID string, excludeStatus models.SlotStatus) ([]models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Slot{}
	for _, slot := range r.slots {
		if slot.AgentID == agentID && (excludeStatus == "" || slot.Status != excludeStatus) {
			out = append(out, *slot)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) ListByBuyer(ctx context.Context, buyerID string) ([]models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Slot{}
	for _, slot := range r.slots {
		if slot.BuyerID == buyerID {
			out = append(out, *slot)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) Book(ctx context.Context, slotID, buyerID string) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[slotID]
	if !ok || slot.Status != models.SlotAvailable {
		return nil, mongo.ErrNoDocuments
	}
	slot.Status = models.SlotPending
	slot.BuyerID = buyerID
	cp := *slot
	return &cp, nil
}

func (r *fakeSlotRepo) UpdateStatus(ctx context.Context, slotID string, status models.SlotStatus, clearBuyer bool) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[slotID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	slot.Status = status
	if clearBuyer {
		slot.BuyerID = ""
	}
	cp := *slot
	return &cp, nil
}

func (r *fakeSlotRepo) DeleteByProperty(ctx context.Context, propertyID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, slot := range r.slots {
		if slot.PropertyID == propertyID {
			delete(r.slots, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeSlotRepo) ListByAgentDetailed(ctx context.Context, agentID string, excludeStatus models.SlotStatus) ([]models.SlotDetail, error) {
	slots, _ := r.ListByAgent(ctx, agentID, excludeStatus)
	out := []models.SlotDetail{}
	for _, slot := range slots {
		out = append(out, models.SlotDetail{Slot: slot})
	}
	return out, nil
}

func (r *fakeSlotRepo) ListByBuyerDetailed(ctx context.Context, buyerID string) ([]models.SlotDetail, error) {
	slots, _ := r.ListByBuyer(ctx, buyerID)
	out := []models.SlotDetail{}
	for _, slot := range slots {
		out = append(out, models.SlotDetail{Slot: slot})
	}
	return out, nil
}

// fakePropertyRepo is an in-memory PropertyRepository.
type fakePropertyRepo struct {
	mu         sync.Mutex
	properties map[string]*models.Property
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{properties: make(map[string]*models.Property)}
}

func (r *fakePropertyRepo) Create(ctx context.Context, property *models.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if property.ID == "" {
		property.ID = uuid.New().String()
	}
	cp := *property
	r.properties[property.ID] = &cp
	return nil
}

func (r *fakePropertyRepo) GetByID(ctx context.Context, id string) (*models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	property, ok := r.properties[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *property
	return &cp, nil
}

func (r *fakePropertyRepo) ListAll(ctx context.Context) ([]models.PropertyWithAgent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.PropertyWithAgent{}
	for _, property := range r.properties {
		out = append(out, models.PropertyWithAgent{Property: *property})
	}
	return out, nil
}

func (r *fakePropertyRepo) ListByAgent(ctx context.Context, agentID string) ([]models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Property{}
	for _, property := range r.properties {
		if property.AgentID == agentID {
			out = append(out, *property)
		}
	}
	return out, nil
}

func (r *fakePropertyRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.properties[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.properties, id)
	return nil
}

// recordingPublisher captures published events instead of broadcasting them.
type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

type recordedEvent struct {
	name    string
	payload any
}

func (p *recordingPublisher) Publish(event string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{name: event, payload: payload})
}

func (p *recordingPublisher) recorded() []recordedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]recordedEvent(nil), p.events...)
}

func newTestService() (*DefaultBookingService, *fakeSlotRepo, *fakePropertyRepo, *recordingPublisher) {
	slots := newFakeSlotRepo()
	properties := newFakePropertyRepo()
	events := &recordingPublisher{}
	svc := &DefaultBookingService{
		SlotRepo:     slots,
		PropertyRepo: properties,
		Events:       events,
		Logger:       zap.NewNop(),
	}
	return svc, slots, properties, events
}

var (
	agentA = models.Identity{ID: "agent-a", Role: models.RoleAgent}
	agentZ = models.Identity{ID: "agent-z", Role: models.RoleAgent}
	buyerB = models.Identity{ID: "buyer-b", Role: models.RoleBuyer}
	buyerC = models.Identity{ID: "buyer-c", Role: models.RoleBuyer}
)

func seedProperty(t *testing.T, properties *fakePropertyRepo, agentID string) *models.Property {
	t.Helper()
	property := &models.Property{AgentID: agentID, Title: "Sea View Flat", Address: "1 Harbour Rd", Price: 450000}
	require.NoError(t, properties.Create(context.Background(), property))
	return property
}

func slotTimes() (time.Time, time.Time) {
	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	return start, start.Add(time.Hour)
}

func TestCreateSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("owning agent creates an available slot", func(t *testing.T) {
		svc, slots, properties, events := newTestService()
		property := seedProperty(t, properties, agentA.ID)
		start, end := slotTimes()

		slot, err := svc.CreateSlot(ctx, agentA, models.CreateSlotRequest{
			PropertyID: property.ID, StartTime: start, EndTime: end,
		})
		require.NoError(t, err)
		assert.Equal(t, models.SlotAvailable, slot.Status)
		assert.Equal(t, agentA.ID, slot.AgentID)
		assert.Empty(t, slot.BuyerID)

		// Round-trip: the slot is immediately visible under its property.
		listed, err := svc.PropertySlots(ctx, property.ID)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, models.SlotAvailable, listed[0].Status)
		assert.Empty(t, listed[0].BuyerID)

		recorded := events.recorded()
		require.Len(t, recorded, 1)
		assert.Equal(t, models.EventSlotsUpdated, recorded[0].name)
		assert.Equal(t, models.SlotsUpdatedEvent{PropertyID: property.ID}, recorded[0].payload)
		_ = slots
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		svc, _, properties, events := newTestService()
		property := seedProperty(t, properties, agentA.ID)
		start, end := slotTimes()

		_, err := svc.CreateSlot(ctx, agentZ, models.CreateSlotRequest{
			PropertyID: property.ID, StartTime: start, EndTime: end,
		})
		require.Error(t, err)
		assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
		assert.Empty(t, events.recorded())
	})

	t.Run("unknown property", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		start, end := slotTimes()
		_, err := svc.CreateSlot(ctx, agentA, models.CreateSlotRequest{
			PropertyID: "nope", StartTime: start, EndTime: end,
		})
		assert.True(t, utils.IsCode(err, utils.CodeNotFound))
	})

	t.Run("missing times", func(t *testing.T) {
		svc, _, properties, _ := newTestService()
		property := seedProperty(t, properties, agentA.ID)
		_, err := svc.CreateSlot(ctx, agentA, models.CreateSlotRequest{PropertyID: property.ID})
		assert.True(t, utils.IsCode(err, utils.CodeValidation))
	})

	t.Run("end not after start", func(t *testing.T) {
		svc, _, properties, _ := newTestService()
		property := seedProperty(t, properties, agentA.ID)
		start, _ := slotTimes()
		_, err := svc.CreateSlot(ctx, agentA, models.CreateSlotRequest{
			PropertyID: property.ID, StartTime: start, EndTime: start,
		})
		assert.True(t, utils.IsCode(err, utils.CodeValidation))
	})
}

func TestBookSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("buyer books an available slot", func(t *testing.T) {
		svc, _, properties, events := newTestService()
		property := seedProperty(t, properties, agentA.ID)
		start, end := slotTimes()
		slot, err := svc.CreateSlot(ctx, agentA, models.CreateSlotRequest{
			PropertyID: property.ID, StartTime: start, EndTime: end,
		})
		require.NoError(t, err)

		booked, err := svc.BookSlot(ctx, buyerB, slot.ID)
		require.NoError(t, err)
		assert.Equal(t, models.SlotPending, booked.Status)
		assert.Equal(t, buyerB.ID, booked.BuyerID)

		recorded := events.recorded()
		require.Len(t, recorded, 2)
		assert.Equal(t, models.EventSlotBooked, recorded[1].name)
		assert.Equal(t, models.SlotBookedEvent{
			SlotID:     slot.ID,
			Status:     models.SlotPending,
			PropertyID: property.ID,
			AgentID:    agentA.ID,
		}, recorded[1].payload)
	})

	t.Run("unknown slot", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		_, err := svc.BookSlot(ctx, buyerB, "nope")
		assert.True(t, utils.IsCode(err, utils.CodeNotFound))
	})

	t.Run("booking a non-available slot fails regardless of caller", func(t *testing.T) {
		svc, _, properties, _ := newTestService()
		property := seedProperty(t, properties, agentA.ID)
		start, end := slotTimes()
		slot, err := svc.CreateSlot(ctx, agentA, models.CreateSlotRequest{
			PropertyID: property.ID, StartTime: start, EndTime: end,
		})
		require.NoError(t, err)
		_, err = svc.BookSlot(ctx, buyerB, slot.ID)
		require.NoError(t, err)

		for _, caller := range []models.Identity{buyerB, buyerC} {
			_, err := svc.BookSlot(ctx, caller, slot.ID)
			require.Error(t, err)
			assert.True(t, utils.IsCode(err, utils.CodeInvalidState))
		}
	})

	t.Run("concurrent booking has exactly one winner", func(t *testing.T) {
		svc, _, properties, _ := newTestService()
		property := seedProperty(t, properties, agentA.ID)
		start, end := slotTimes()
		slot, err := svc.CreateSlot(ctx, agentA, models.CreateSlotRequest{
			PropertyID: property.ID, StartTime: start, EndTime: end,
		})
		require.NoError(t, err)

		const callers = 16
		var wg sync.WaitGroup
		errs := make([]error, callers)
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				buyer := models.Identity{ID: uuid.New().String(), Role: models.RoleBuyer}
				_, errs[i] = svc.BookSlot(ctx, buyer, slot.ID)
			}(i)
		}
		wg.Wait()

		wins := 0
		for _, err := range errs {
			if err == nil {
				wins++
			} else {
				assert.True(t, utils.IsCode(err, utils.CodeInvalidState), "unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, wins)
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	bookedSlot := func(t *testing.T, svc *DefaultBookingService, properties *fakePropertyRepo) *models.Slot {
		t.Helper()
		property := seedProperty(t, properties, agentA.ID)
		start, end := slotTimes()
		slot, err := svc.CreateSlot(ctx, agentA, models.CreateSlotRequest{
			PropertyID: property.ID, StartTime: start, EndTime: end,
		})
		require.NoError(t, err)
		booked, err := svc.BookSlot(ctx, buyerB, slot.ID)
		require.NoError(t, err)
		return booked
	}

	t.Run("approve keeps the buyer", func(t *testing.T) {
		svc, _, properties, events := newTestService()
		slot := bookedSlot(t, svc, properties)

		updated, err := svc.UpdateStatus(ctx, agentA, slot.ID, models.SlotConfirmed)
		require.NoError(t, err)
		assert.Equal(t, models.SlotConfirmed, updated.Status)
		assert.Equal(t, buyerB.ID, updated.BuyerID)

		recorded := events.recorded()
		last := recorded[len(recorded)-1]
		assert.Equal(t, models.EventSlotStatusChanged, last.name)
		assert.Equal(t, models.SlotStatusChangedEvent{
			SlotID:     slot.ID,
			Status:     models.SlotConfirmed,
			PropertyID: slot.PropertyID,
		}, last.payload)
	})

	t.Run("reject clears the buyer", func(t *testing.T) {
		svc, slots, properties, _ := newTestService()
		slot := bookedSlot(t, svc, properties)

		updated, err := svc.UpdateStatus(ctx, agentA, slot.ID, models.SlotRejected)
		require.NoError(t, err)
		assert.Equal(t, models.SlotRejected, updated.Status)
		assert.Empty(t, updated.BuyerID)

		// A subsequent fetch shows no buyer either.
		fetched, err := slots.GetByID(ctx, slot.ID)
		require.NoError(t, err)
		assert.Empty(t, fetched.BuyerID)
	})

	t.Run("only the owning agent may decide", func(t *testing.T) {
		svc, _, properties, _ := newTestService()
		slot := bookedSlot(t, svc, properties)

		_, err := svc.UpdateStatus(ctx, agentZ, slot.ID, models.SlotConfirmed)
		require.Error(t, err)
		assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
	})

	t.Run("target status must be confirmed or rejected", func(t *testing.T) {
		svc, _, properties, _ := newTestService()
		slot := bookedSlot(t, svc, properties)

		for _, status := range []models.SlotStatus{models.SlotAvailable, models.SlotPending, "done"} {
			_, err := svc.UpdateStatus(ctx, agentA, slot.ID, status)
			require.Error(t, err)
			assert.True(t, utils.IsCode(err, utils.CodeValidation))
		}
	})

	t.Run("unknown slot", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		_, err := svc.UpdateStatus(ctx, agentA, "nope", models.SlotConfirmed)
		assert.True(t, utils.IsCode(err, utils.CodeNotFound))
	})

	t.Run("re-deciding a terminal slot is permitted", func(t *testing.T) {
		svc, _, properties, _ := newTestService()
		slot := bookedSlot(t, svc, properties)

		_, err := svc.UpdateStatus(ctx, agentA, slot.ID, models.SlotConfirmed)
		require.NoError(t, err)
		updated, err := svc.UpdateStatus(ctx, agentA, slot.ID, models.SlotRejected)
		require.NoError(t, err)
		assert.Equal(t, models.SlotRejected, updated.Status)
		assert.Empty(t, updated.BuyerID)
	})
}

func TestLifecycleScenario(t *testing.T) {
	// Agent A lists a property, publishes a slot; buyer B books it; agent A
	// approves; buyer C can no longer book it.
	ctx := context.Background()
	svc, _, properties, _ := newTestService()
	property := seedProperty(t, properties, agentA.ID)
	start, end := slotTimes()

	slot, err := svc.CreateSlot(ctx, agentA, models.CreateSlotRequest{
		PropertyID: property.ID, StartTime: start, EndTime: end,
	})
	require.NoError(t, err)
	assert.Equal(t, models.SlotAvailable, slot.Status)

	booked, err := svc.BookSlot(ctx, buyerB, slot.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SlotPending, booked.Status)
	assert.Equal(t, buyerB.ID, booked.BuyerID)

	confirmed, err := svc.UpdateStatus(ctx, agentA, slot.ID, models.SlotConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.SlotConfirmed, confirmed.Status)

	_, err = svc.BookSlot(ctx, buyerC, slot.ID)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidState))
}

func TestScheduleAndBookingsQueries(t *testing.T) {
	ctx := context.Background()
	svc, _, properties, _ := newTestService()
	property := seedProperty(t, properties, agentA.ID)
	start, end := slotTimes()

	open, err := svc.CreateSlot(ctx, agentA, models.CreateSlotRequest{
		PropertyID: property.ID, StartTime: start, EndTime: end,
	})
	require.NoError(t, err)
	taken, err := svc.CreateSlot(ctx, agentA, models.CreateSlotRequest{
		PropertyID: property.ID, StartTime: start.Add(2 * time.Hour), EndTime: end.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	_, err = svc.BookSlot(ctx, buyerB, taken.ID)
	require.NoError(t, err)

	t.Run("schedule hides available slots", func(t *testing.T) {
		schedule, err := svc.MySchedule(ctx, agentA)
		require.NoError(t, err)
		require.Len(t, schedule, 1)
		assert.Equal(t, taken.ID, schedule[0].ID)
		for _, entry := range schedule {
			assert.NotEqual(t, models.SlotAvailable, entry.Status)
		}
		_ = open
	})

	t.Run("buyer sees only their own slots", func(t *testing.T) {
		bookings, err := svc.MyBookings(ctx, buyerB)
		require.NoError(t, err)
		require.Len(t, bookings, 1)
		assert.Equal(t, taken.ID, bookings[0].ID)

		none, err := svc.MyBookings(ctx, buyerC)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}
