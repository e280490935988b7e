package games

import "testing"

func strptr(s string) *string { return &s }

func TestParticipantCountPrefersRoster(t *testing.T) {
	rec := Record{
		Participants:       []Participant{{ID: "u1"}, {ID: "u2"}},
		ParticipantUserIDs: []string{"u1", "u2", "u3", "u4"},
	}
	if got := rec.ParticipantCount(); got != 2 {
		t.Fatalf("expected roster count 2, got %d", got)
	}
}

func TestParticipantCountFallsBackToIDs(t *testing.T) {
	rec := Record{ParticipantUserIDs: []string{"u1", "u2", "u3"}}
	if got := rec.ParticipantCount(); got != 3 {
		t.Fatalf("expected id count 3, got %d", got)
	}
}

func TestHasParticipantChecksBothShapes(t *testing.T) {
	rec := Record{
		Participants:       []Participant{{ID: "u1", Name: strptr("Ada")}},
		ParticipantUserIDs: []string{"u9"},
	}
	if !rec.HasParticipant("u1") {
		t.Fatal("expected roster member to be found")
	}
	if !rec.HasParticipant("u9") {
		t.Fatal("expected id-list member to be found")
	}
	if rec.HasParticipant("u2") {
		t.Fatal("did not expect unknown id to match")
	}
	if rec.HasParticipant("") {
		t.Fatal("empty id must never match")
	}
}
