package store

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	mdwerror "github.com/msto63/radscene/foundation/core/error"
	"github.com/msto63/radscene/foundation/rad/parser"
	"github.com/msto63/radscene/pkg/core/version"
)

const scene = `void plastic red 0 0 5 0.7 0.05 0.05 0 0
red polygon floor 0 0 12 0 0 0 4 0 0 4 3 0 0 3 0
red polygon wall 0 0 7 0 0 0 0 0 3 4
void plastic blue 0 0 5 0.1 0.1 0.7 0 0
void light lamp 0 0 3 100 100 100
`

func newTestStore(t *testing.T) *SQLiteSceneStore {
	t.Helper()
	s, err := NewSQLiteSceneStore(SQLiteSceneConfig{Path: filepath.Join(t.TempDir(), "nested", "scenes.db")})
	if err != nil {
		t.Fatalf("NewSQLiteSceneStore() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndLoadRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	prims := parser.ParseAll(scene)

	run, err := s.SaveRun(ctx, []string{"room.rad", "lights.rad"}, prims)
	if err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}
	if run.ID == "" || run.RecordCount != 5 {
		t.Errorf("run = %+v", run)
	}

	loaded, err := s.LoadRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("LoadRun() error = %v", err)
	}
	if !reflect.DeepEqual(loaded, prims) {
		t.Errorf("LoadRun() differs from saved records:\n%v\n%v", loaded, prims)
	}

	got, err := s.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if !reflect.DeepEqual(got.Sources, []string{"room.rad", "lights.rad"}) {
		t.Errorf("Sources = %v", got.Sources)
	}
}

func TestSaveRun_Empty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.SaveRun(ctx, nil, nil)
	if err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}
	loaded, err := s.LoadRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("LoadRun() error = %v", err)
	}
	if loaded == nil || len(loaded) != 0 {
		t.Errorf("LoadRun() = %v, want empty slice", loaded)
	}
}

func TestLoadRun_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.LoadRun(context.Background(), "does-not-exist")
	if !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("LoadRun() error = %v, want NOT_FOUND", err)
	}
	_, err = s.GetRun(context.Background(), "does-not-exist")
	if !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("GetRun() error = %v, want NOT_FOUND", err)
	}
}

func TestListRuns_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		run, err := s.SaveRun(ctx, []string{"scene.rad"}, parser.ParseAll(scene))
		if err != nil {
			t.Fatalf("SaveRun() error = %v", err)
		}
		ids = append(ids, run.ID)
		time.Sleep(2 * time.Millisecond)
	}

	runs, err := s.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("ListRuns() returned %d runs, want 3", len(runs))
	}
	if runs[0].ID != ids[2] || runs[2].ID != ids[0] {
		t.Errorf("order = %s %s %s, want newest first", runs[0].ID, runs[1].ID, runs[2].ID)
	}

	limited, err := s.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns(2) error = %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("ListRuns(2) returned %d runs", len(limited))
	}
}

func TestDeleteRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.SaveRun(ctx, []string{"a.rad"}, parser.ParseAll(scene))
	if err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}
	if err := s.DeleteRun(ctx, run.ID); err != nil {
		t.Fatalf("DeleteRun() error = %v", err)
	}

	if _, err := s.LoadRun(ctx, run.ID); !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("LoadRun() after delete error = %v", err)
	}
	stats, err := s.TypeStats(ctx, run.ID)
	if err != nil || len(stats) != 0 {
		t.Errorf("TypeStats() after delete = %v, %v", stats, err)
	}
	if err := s.DeleteRun(ctx, run.ID); !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("second DeleteRun() error = %v, want NOT_FOUND", err)
	}
}

func TestTypeStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.SaveRun(ctx, nil, parser.ParseAll(scene))
	if err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}

	stats, err := s.TypeStats(ctx, run.ID)
	if err != nil {
		t.Fatalf("TypeStats() error = %v", err)
	}
	want := []TypeCount{{"plastic", 2}, {"polygon", 2}, {"light", 1}}
	if !reflect.DeepEqual(stats, want) {
		t.Errorf("TypeStats() = %v, want %v", stats, want)
	}
}

func TestPrune(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.SaveRun(ctx, nil, parser.ParseAll(scene)); err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}

	n, err := s.Prune(ctx, time.Hour)
	if err != nil || n != 0 {
		t.Errorf("Prune(1h) = %d, %v; want 0", n, err)
	}

	n, err = s.Prune(ctx, -time.Hour)
	if err != nil || n != 1 {
		t.Errorf("Prune(-1h) = %d, %v; want 1", n, err)
	}

	runs, _ := s.ListRuns(ctx, 0)
	if len(runs) != 0 {
		t.Errorf("runs left after prune: %d", len(runs))
	}
	if err := s.Vacuum(ctx); err != nil {
		t.Errorf("Vacuum() error = %v", err)
	}
}

func TestSchemaVersion(t *testing.T) {
	s := newTestStore(t)

	v, err := s.SchemaVersion(context.Background())
	if err != nil {
		t.Fatalf("SchemaVersion() error = %v", err)
	}
	if v != version.StoreSchema {
		t.Errorf("SchemaVersion() = %d, want %d", v, version.StoreSchema)
	}
}
