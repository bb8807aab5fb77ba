package ecs

import (
	"reflect"
	"slices"
	"strings"
)

// WorldStats is a snapshot of storage and resource occupancy.
type WorldStats struct {
	Frame           uint64
	EntityCount     int
	ComponentCount  int
	PendingCommands int
	Tables          []TableStats
	ResourceTypes   []reflect.Type
}

// TableStats describes one component table.
type TableStats struct {
	Type  reflect.Type
	Count int
}

// CollectStats gathers a WorldStats snapshot. Tables are sorted by type name.
func (w *World) CollectStats() *WorldStats {
	stats := &WorldStats{
		Frame:           w.frame,
		EntityCount:     w.storage.Len(),
		PendingCommands: w.commands.Len(),
		ResourceTypes:   w.resources.Types(),
	}

	stats.Tables = w.storage.Tables()
	for _, table := range stats.Tables {
		stats.ComponentCount += table.Count
	}
	return stats
}

// Tables describes every component table created so far, sorted by type name.
func (s *Storage) Tables() []TableStats {
	tables := make([]TableStats, 0, len(s.order))
	for _, table := range s.order {
		tables = append(tables, TableStats{Type: table.Type(), Count: table.Len()})
	}
	slices.SortFunc(tables, func(a, b TableStats) int {
		return strings.Compare(a.Type.String(), b.Type.String())
	})
	return tables
}
