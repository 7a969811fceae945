package records

import (
	"testing"

	"github.com/ericcurtin/BansheeRun/internal/activity"
)

func TestRegistryUpdateStrictlyFaster(t *testing.T) {
	r := NewRegistry()

	first := PersonalBest{Type: activity.TypeRun, DistanceM: 5000, TimeMs: 1_500_000, ActivityID: "a-1"}
	if !r.Update(first) {
		t.Fatalf("first record should be stored")
	}

	tie := PersonalBest{Type: activity.TypeRun, DistanceM: 5000, TimeMs: 1_500_000, ActivityID: "a-2"}
	if r.Update(tie) {
		t.Fatalf("tie must not replace")
	}
	slower := PersonalBest{Type: activity.TypeRun, DistanceM: 5000, TimeMs: 1_600_000, ActivityID: "a-3"}
	if r.Update(slower) {
		t.Fatalf("slower must not replace")
	}
	if pb, _ := r.Get(activity.TypeRun, 5000); pb.ActivityID != "a-1" {
		t.Fatalf("existing record mutated: %+v", pb)
	}

	faster := PersonalBest{Type: activity.TypeRun, DistanceM: 5000, TimeMs: 1_400_000, ActivityID: "a-4"}
	if !r.Update(faster) {
		t.Fatalf("faster should replace")
	}
	if pb, _ := r.Get(activity.TypeRun, 5000); pb.TimeMs != 1_400_000 {
		t.Fatalf("unexpected time: %d", pb.TimeMs)
	}
}

func TestRegistryKeysByTypeAndDistance(t *testing.T) {
	r := NewRegistry()
	r.Update(PersonalBest{Type: activity.TypeRun, DistanceM: 5000, TimeMs: 1_500_000})
	r.Update(PersonalBest{Type: activity.TypeCycle, DistanceM: 5000, TimeMs: 600_000})
	r.Update(PersonalBest{Type: activity.TypeRun, DistanceM: 10_000, TimeMs: 3_100_000})

	if got := len(r.ForType(activity.TypeRun)); got != 2 {
		t.Fatalf("expected 2 run PBs, got %d", got)
	}
	if got := len(r.All()); got != 3 {
		t.Fatalf("expected 3 PBs total, got %d", got)
	}

	run := r.ForType(activity.TypeRun)
	if run[0].DistanceM != 5000 || run[1].DistanceM != 10_000 {
		t.Fatalf("expected sorted distances: %+v", run)
	}

	// Sub-meter variance lands on the same key.
	if !r.Update(PersonalBest{Type: activity.TypeRun, DistanceM: 5000.2, TimeMs: 1_000_000}) {
		t.Fatalf("near-identical distance should update existing key")
	}
	if got := len(r.ForType(activity.TypeRun)); got != 2 {
		t.Fatalf("rounding should not add a new key, got %d PBs", got)
	}
}

func TestRegistryRemoveForActivity(t *testing.T) {
	r := NewRegistry()
	r.Update(PersonalBest{Type: activity.TypeRun, DistanceM: 1000, TimeMs: 240_000, ActivityID: "a-1"})
	r.Update(PersonalBest{Type: activity.TypeRun, DistanceM: 5000, TimeMs: 1_500_000, ActivityID: "a-2"})

	removed := r.RemoveForActivity("a-1")
	if len(removed) != 1 || removed[0].DistanceM != 1000 {
		t.Fatalf("unexpected removal: %+v", removed)
	}
	if _, ok := r.Get(activity.TypeRun, 1000); ok {
		t.Fatalf("removed PB still present")
	}
	if _, ok := r.Get(activity.TypeRun, 5000); !ok {
		t.Fatalf("unrelated PB removed")
	}
}

func TestApplyReportsNewlyAchieved(t *testing.T) {
	r := NewRegistry()

	slow := activity.New("a-1", "Easy", activity.TypeRun, uniformTrack(25, 50, 6000), 100)
	achieved := Apply(r, slow)
	if len(achieved) != 1 || achieved[0].DistanceM != 1000 {
		t.Fatalf("unexpected first apply: %+v", achieved)
	}
	if achieved[0].PaceMinPerKm <= 0 {
		t.Fatalf("expected derived pace")
	}

	// Same effort again: nothing new.
	if again := Apply(r, slow); len(again) != 0 {
		t.Fatalf("identical run must not re-achieve: %+v", again)
	}

	fast := activity.New("a-2", "Tempo", activity.TypeRun, uniformTrack(25, 50, 4000), 200)
	achieved = Apply(r, fast)
	if len(achieved) != 1 {
		t.Fatalf("faster run should achieve: %+v", achieved)
	}
	pb, _ := r.Get(activity.TypeRun, 1000)
	if pb.ActivityID != "a-2" {
		t.Fatalf("registry kept the slower run: %+v", pb)
	}
}
