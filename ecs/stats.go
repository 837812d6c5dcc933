package ecs

import "sort"

// StorageStats is a point-in-time summary of a Storage.
type StorageStats struct {
	TotalEntityCount int
	TableCount       int
	SingletonCount   int
	TableBreakdown   []TableStats
	SingletonTypes   []string
}

// TableStats describes one component table.
type TableStats struct {
	ComponentType string
	Rows          int
	Capacity      int
}

// CollectStats gathers entity, table and singleton counts.
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		TotalEntityCount: s.Len(),
		TableCount:       len(s.tableOrder),
		SingletonCount:   len(s.singletons),
		TableBreakdown:   make([]TableStats, 0, len(s.tableOrder)),
		SingletonTypes:   make([]string, 0, len(s.singletons)),
	}

	for _, table := range s.tableOrder {
		stats.TableBreakdown = append(stats.TableBreakdown, TableStats{
			ComponentType: table.Type().String(),
			Rows:          table.Len(),
			Capacity:      table.Capacity(),
		})
	}

	for t := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	sort.Strings(stats.SingletonTypes)

	return stats
}
