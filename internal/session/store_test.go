package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"clipstudio/internal/api"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenAt(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSnapshotRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	speed := 1.1
	snap := &Snapshot{
		Stage: 3,
		Settings: ContentSettings{
			Topic:          "deep sea creatures",
			StoryType:      "curiosidade",
			ScriptProvider: "claude",
			Script:         "Did you know the anglerfish...",
			Scenes:         []api.Scene{{Narration: "Did you know...", ImagePrompt: "anglerfish"}},
			VoiceProvider:  "elevenlabs",
			VoiceProfile:   "Rachel",
			SpeechSpeed:    &speed,
			AudioRef:       "/media/audio/a.mp3",
			Images:         []string{"/media/images/1.png", "/media/images/2.png"},
			ImageCacheHash: "abc123",
			Platforms:      []string{"tiktok", "youtube"},
		},
	}
	snap.Completed[0] = true
	snap.Completed[1] = true

	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if snap.ID == "" {
		t.Fatal("Save did not assign an ID")
	}

	loaded, err := store.Get(ctx, snap.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("Get returned nil for saved session")
	}
	if loaded.Stage != 3 {
		t.Errorf("Stage = %d, want 3", loaded.Stage)
	}
	if !loaded.Completed[0] || !loaded.Completed[1] || loaded.Completed[2] {
		t.Errorf("Completed = %v", loaded.Completed)
	}
	if loaded.Settings.Script != snap.Settings.Script {
		t.Errorf("Script = %q", loaded.Settings.Script)
	}
	if len(loaded.Settings.Images) != 2 || loaded.Settings.Images[0] != "/media/images/1.png" {
		t.Errorf("Images = %v", loaded.Settings.Images)
	}
	if loaded.Settings.SpeechSpeed == nil || *loaded.Settings.SpeechSpeed != 1.1 {
		t.Errorf("SpeechSpeed = %v", loaded.Settings.SpeechSpeed)
	}
	if len(loaded.Settings.Scenes) != 1 || loaded.Settings.Scenes[0].ImagePrompt != "anglerfish" {
		t.Errorf("Scenes = %+v", loaded.Settings.Scenes)
	}
	// Transient zero-value fields stay absent after the round trip.
	if loaded.Settings.RenderJobID != "" || loaded.Settings.PreviewRef != "" {
		t.Errorf("unset fields came back populated: %+v", loaded.Settings)
	}
}

func TestSaveUpdatesExisting(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	snap := &Snapshot{Settings: ContentSettings{Topic: "first"}}
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	firstUpdated := snap.UpdatedAt

	time.Sleep(2 * time.Millisecond)
	snap.Settings = ContentSettings{Topic: "second"}
	snap.Stage = 2
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("sessions = %d, want 1 after upsert", len(all))
	}
	if all[0].Settings.Topic != "second" || all[0].Stage != 2 {
		t.Errorf("loaded = %+v", all[0])
	}
	if !all[0].UpdatedAt.After(firstUpdated) {
		t.Errorf("UpdatedAt not refreshed: %s vs %s", all[0].UpdatedAt, firstUpdated)
	}
}

func TestLatestOrdersByUpdate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	older := &Snapshot{Settings: ContentSettings{Topic: "older"}}
	if err := store.Save(ctx, older); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	newer := &Snapshot{Settings: ContentSettings{Topic: "newer"}}
	if err := store.Save(ctx, newer); err != nil {
		t.Fatal(err)
	}

	latest, err := store.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if latest == nil || latest.Settings.Topic != "newer" {
		t.Errorf("Latest = %+v, want newer session", latest)
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	store := openTestStore(t)
	snap, err := store.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if snap != nil {
		t.Errorf("Get = %+v, want nil", snap)
	}
}

func TestDeleteMissingReturnsNotFound(t *testing.T) {
	store := openTestStore(t)
	err := store.Delete(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete error = %v, want ErrNotFound", err)
	}
}

func TestClear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := store.Save(ctx, &Snapshot{}); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	all, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Errorf("sessions after clear = %d", len(all))
	}
}

func TestOpenAtRefusesSecondProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	first, err := OpenAt(path)
	if err != nil {
		t.Fatalf("first OpenAt failed: %v", err)
	}
	defer first.Close()

	_, err = OpenAt(path)
	if !errors.Is(err, ErrStoreLocked) {
		t.Fatalf("second OpenAt error = %v, want ErrStoreLocked", err)
	}
}

func TestReopenPreservesData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	ctx := context.Background()

	store, err := OpenAt(path)
	if err != nil {
		t.Fatal(err)
	}
	snap := &Snapshot{Settings: ContentSettings{Topic: "persisted"}}
	if err := store.Save(ctx, snap); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenAt(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	loaded, err := reopened.Get(ctx, snap.ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded == nil || loaded.Settings.Topic != "persisted" {
		t.Errorf("loaded = %+v", loaded)
	}
}
