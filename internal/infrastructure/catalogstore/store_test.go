package catalogstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/FireCircuit-Intelligence/internal/config"
	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/monitoring/logging"
	apperrors "github.com/turtacn/FireCircuit-Intelligence/pkg/errors"
)

func catalogJSON(version, sku string) string {
	return fmt.Sprintf(`{
  "version": %q,
  "deviceFamilies": {
    "TEST APPLIANCES": {
      "deviceTypes": {
        "HORN_STROBE": {
          "mountings": {
            "WALL": {
              "environments": {
                "STANDARD": {
                  "ratings": {
                    "75": {
                      "sku": %q,
                      "description": "Test Wall Horn Strobe",
                      "current": 0.2,
                      "unitLoads": 1,
                      "ttapCompatible": true,
                      "mounting": "WALL",
                      "environmentalRating": "STANDARD",
                      "ulListed": true
                    }
                  }
                }
              }
            }
          }
        }
      }
    }
  },
  "familyMapping": {
    "mappings": {
      "TEST DEVICES": {"family": "TEST APPLIANCES"}
    }
  }
}`, version, sku)
}

func writeCatalogDir(t *testing.T, version string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{NotificationFile, InitiatingFile} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name),
			[]byte(catalogJSON(version, "TST-1")), 0o644))
	}
	return dir
}

func newStore(t *testing.T, cfg config.CatalogConfig) *Store {
	t.Helper()
	s, err := New(cfg, logging.NewNopLogger(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNew_EmptyPathServesBuiltin(t *testing.T) {
	s := newStore(t, config.CatalogConfig{})
	snap := s.Current()

	assert.Equal(t, "builtin", snap.Source)
	assert.Positive(t, snap.Notification.Len())
	assert.Positive(t, snap.Initiating.Len())
}

func TestNew_LoadsFromDirectory(t *testing.T) {
	dir := writeCatalogDir(t, "2026.1")
	s := newStore(t, config.CatalogConfig{Path: dir})
	snap := s.Current()

	assert.Equal(t, dir, snap.Source)
	assert.Equal(t, "2026.1", snap.Notification.Version())
	assert.Equal(t, 1, snap.Notification.Len())

	entry, ok := snap.Notification.DirectMatch("TST-1")
	require.True(t, ok)
	assert.Equal(t, 0.2, entry.Record.Amps)
}

func TestNew_MissingFilesFallBackToBuiltin(t *testing.T) {
	s := newStore(t, config.CatalogConfig{Path: t.TempDir()})
	snap := s.Current()

	assert.Equal(t, "builtin", snap.Source)
	assert.Positive(t, snap.Notification.Len())
}

func TestReload_SwapsSnapshot(t *testing.T) {
	dir := writeCatalogDir(t, "2026.1")
	s := newStore(t, config.CatalogConfig{Path: dir})

	for _, name := range []string{NotificationFile, InitiatingFile} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name),
			[]byte(catalogJSON("2026.2", "TST-2")), 0o644))
	}
	require.NoError(t, s.Reload(context.Background()))

	snap := s.Current()
	assert.Equal(t, "2026.2", snap.Notification.Version())
	_, ok := snap.Notification.DirectMatch("TST-2")
	assert.True(t, ok)
}

func TestReload_FailureKeepsPreviousSnapshot(t *testing.T) {
	dir := writeCatalogDir(t, "2026.1")
	s := newStore(t, config.CatalogConfig{Path: dir})

	require.NoError(t, os.WriteFile(filepath.Join(dir, NotificationFile),
		[]byte("{not json"), 0o644))
	err := s.Reload(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeCatalogParseFailed))

	assert.Equal(t, "2026.1", s.Current().Notification.Version())
}

func TestReload_RejectsVersionlessCatalog(t *testing.T) {
	dir := writeCatalogDir(t, "2026.1")
	s := newStore(t, config.CatalogConfig{Path: dir})

	require.NoError(t, os.WriteFile(filepath.Join(dir, NotificationFile),
		[]byte(`{"deviceFamilies": {}}`), 0o644))
	err := s.Reload(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeCatalogVersionEmpty))
}

func TestIndexes_ReturnsBothClasses(t *testing.T) {
	s := newStore(t, config.CatalogConfig{})
	notification, initiating := s.Indexes()
	require.NotNil(t, notification)
	require.NotNil(t, initiating)
	assert.NotEqual(t, notification.Class(), initiating.Class())
}

func TestOnReload_CallbackSeesNewSnapshot(t *testing.T) {
	dir := writeCatalogDir(t, "2026.1")
	s := newStore(t, config.CatalogConfig{Path: dir})

	var seen []*Snapshot
	s.OnReload(func(snap *Snapshot) { seen = append(seen, snap) })

	for _, name := range []string{NotificationFile, InitiatingFile} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name),
			[]byte(catalogJSON("2026.2", "TST-2")), 0o644))
	}
	require.NoError(t, s.Reload(context.Background()))

	require.Len(t, seen, 1)
	assert.Equal(t, "2026.2", seen[0].Notification.Version())
	assert.Same(t, s.Current(), seen[0])
}

func TestOnReload_NotInvokedOnFailure(t *testing.T) {
	dir := writeCatalogDir(t, "2026.1")
	s := newStore(t, config.CatalogConfig{Path: dir})

	calls := 0
	s.OnReload(func(*Snapshot) { calls++ })

	require.NoError(t, os.WriteFile(filepath.Join(dir, NotificationFile),
		[]byte("{broken"), 0o644))
	require.Error(t, s.Reload(context.Background()))
	assert.Zero(t, calls)
}
