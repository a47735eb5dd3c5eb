package checkpoint

import (
	"path/filepath"
	"testing"
	"time"

	bolt "go.etcd.io/bbolt"
)

func openTestDB(tst *testing.T) *bolt.DB {
	path := filepath.Join(tst.TempDir(), "checkpoint.db")
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		tst.Fatal("Error opening database:", err)
	}
	tst.Cleanup(func() { db.Close() })
	return db
}

func TestSaveLoad(tst *testing.T) {
	db := openTestDB(tst)
	ckp := NewCheckpointIO(db, []byte("run"), 0)

	data := &CheckpointData{
		Positions: [][]float64{{1, 2, 3}, {4, 5, 6}},
		LogProb:   []float64{-1.5, -2.5},
		Iter:      42,
		Final:     false,
	}
	if err := ckp.Save(data); err != nil {
		tst.Fatal("Error saving checkpoint:", err)
	}

	loaded, err := ckp.Load()
	if err != nil {
		tst.Fatal("Error loading checkpoint:", err)
	}
	if loaded == nil {
		tst.Fatal("No checkpoint found after save")
	}
	if loaded.Iter != 42 || loaded.Final {
		tst.Errorf("Wrong checkpoint state: %+v", loaded)
	}
	if len(loaded.Positions) != 2 || loaded.Positions[1][2] != 6 {
		tst.Errorf("Wrong positions: %v", loaded.Positions)
	}
	if len(loaded.LogProb) != 2 || loaded.LogProb[0] != -1.5 {
		tst.Errorf("Wrong log-probabilities: %v", loaded.LogProb)
	}
}

func TestLoadMissing(tst *testing.T) {
	db := openTestDB(tst)
	ckp := NewCheckpointIO(db, []byte("missing"), 0)
	data, err := ckp.Load()
	if err != nil {
		tst.Fatal("Error loading checkpoint:", err)
	}
	if data != nil {
		tst.Errorf("Unexpected checkpoint: %+v", data)
	}
}

func TestNilDB(tst *testing.T) {
	ckp := NewCheckpointIO(nil, []byte("run"), 0)
	if err := ckp.Save(&CheckpointData{Iter: 1}); err != nil {
		tst.Error("Error saving to nil database:", err)
	}
	data, err := ckp.Load()
	if err != nil || data != nil {
		tst.Errorf("Unexpected load from nil database: %v, %v", data, err)
	}
}

func TestOverwrite(tst *testing.T) {
	db := openTestDB(tst)
	ckp := NewCheckpointIO(db, []byte("run"), 0)

	if err := ckp.Save(&CheckpointData{Positions: [][]float64{{1}}, LogProb: []float64{-1}, Iter: 10}); err != nil {
		tst.Fatal("Error saving checkpoint:", err)
	}
	if err := ckp.Save(&CheckpointData{Positions: [][]float64{{2}}, LogProb: []float64{-2}, Iter: 20, Final: true}); err != nil {
		tst.Fatal("Error saving checkpoint:", err)
	}

	loaded, err := ckp.Load()
	if err != nil || loaded == nil {
		tst.Fatal("Error loading checkpoint:", err)
	}
	if loaded.Iter != 20 || !loaded.Final || loaded.Positions[0][0] != 2 {
		tst.Errorf("Wrong checkpoint after overwrite: %+v", loaded)
	}
}

func TestOld(tst *testing.T) {
	ckp := NewCheckpointIO(nil, []byte("run"), 3600)
	if !ckp.Old() {
		tst.Error("Fresh CheckpointIO should report an old checkpoint")
	}
	ckp.SetNow()
	if ckp.Old() {
		tst.Error("Checkpoint should not be old right after SetNow")
	}

	short := NewCheckpointIO(nil, []byte("run"), 0)
	short.SetNow()
	time.Sleep(time.Millisecond)
	if !short.Old() {
		tst.Error("Checkpoint with zero period should become old immediately")
	}
}
