package mongo

import (
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/omnicorp/fieldops-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Persist/reload round trips
// ---------------------------------------------------------------------------

func sampleUser(createdAt time.Time) *domain.User {
	return &domain.User{
		ID:         "usr_001",
		Name:       "Carlos Mendes",
		Email:      "carlos.mendes@omnicorp.com",
		Role:       domain.RoleWorker,
		AvatarURL:  "https://ui-avatars.com/api/?name=Carlos+Mendes&background=random",
		SecretHash: "$2a$10$N9qo8uLOickgx2ZMRZoMye",
		Department: "Manutenção",
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
}

func TestUserDoc_RoundTripKeepsFieldValues(t *testing.T) {
	now := time.Now().UTC()
	u := sampleUser(now)

	got := toDoc(u).toDomain()

	if !got.CreatedAt.Equal(u.CreatedAt) {
		t.Errorf("CreatedAt changed: stored %v, reloaded %v", u.CreatedAt, got.CreatedAt)
	}
	if !got.UpdatedAt.Equal(u.UpdatedAt) {
		t.Errorf("UpdatedAt changed: stored %v, reloaded %v", u.UpdatedAt, got.UpdatedAt)
	}
	if !reflect.DeepEqual(got, u) {
		t.Errorf("round trip changed fields:\ngot  %+v\nwant %+v", got, u)
	}
}

func TestUserDoc_BSONRoundTripKeepsFieldValues(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	u := sampleUser(now)

	raw, err := bson.Marshal(toDoc(u))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var mu mongoUser
	if err := bson.Unmarshal(raw, &mu); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := mu.toDomain()
	if !got.CreatedAt.Equal(u.CreatedAt) {
		t.Errorf("CreatedAt changed: stored %v, reloaded %v", u.CreatedAt, got.CreatedAt)
	}
	if !got.UpdatedAt.Equal(u.UpdatedAt) {
		t.Errorf("UpdatedAt changed: stored %v, reloaded %v", u.UpdatedAt, got.UpdatedAt)
	}
	got.CreatedAt, got.UpdatedAt = u.CreatedAt, u.UpdatedAt
	if !reflect.DeepEqual(got, u) {
		t.Errorf("round trip changed fields:\ngot  %+v\nwant %+v", got, u)
	}
}

func TestWorkOrder_BSONRoundTripKeepsFieldValues(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	completedAt := now.Add(2 * time.Hour)
	o := &domain.WorkOrder{
		ID:              "OS-2026-1234",
		Title:           "Manutenção preventiva - Torre B",
		Description:     "Inspecionar painel elétrico",
		Location:        domain.Location{Lat: -23.55, Lng: -46.63, Address: "Av. Paulista 1000"},
		Priority:        domain.PriorityHigh,
		Status:          domain.StatusCompleted,
		AssignedToID:    "usr_001",
		CreatedAt:       now,
		DueDate:         now.Add(24 * time.Hour),
		CompletedAt:     &completedAt,
		ReferenceImages: []string{"ref-1.jpg"},
		EvidenceImages:  []string{"evidence-1.jpg"},
		AIAnalysisLog:   "Conformidade verificada",
		SLAHours:        24,
		Value:           1500,
		TechnicalNotes:  "Desligar o circuito antes da inspeção",
		RequiredNorms:   []string{"NR-10"},
		Version:         2,
	}

	raw, err := bson.Marshal(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got domain.WorkOrder
	if err := bson.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !got.CreatedAt.Equal(o.CreatedAt) {
		t.Errorf("CreatedAt changed: stored %v, reloaded %v", o.CreatedAt, got.CreatedAt)
	}
	if !got.DueDate.Equal(o.DueDate) {
		t.Errorf("DueDate changed: stored %v, reloaded %v", o.DueDate, got.DueDate)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(*o.CompletedAt) {
		t.Fatalf("CompletedAt changed: stored %v, reloaded %v", o.CompletedAt, got.CompletedAt)
	}
	got.CreatedAt, got.DueDate, got.CompletedAt = o.CreatedAt, o.DueDate, o.CompletedAt
	if !reflect.DeepEqual(&got, o) {
		t.Errorf("round trip changed fields:\ngot  %+v\nwant %+v", got, *o)
	}
}
