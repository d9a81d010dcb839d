package core

import (
	"github.com/huangsam/gitactivity/internal/contract"
	"github.com/huangsam/gitactivity/schema"
)

// VisibleStats drops paths whose total changes exceed --max-changes.
// Order is preserved; with no threshold every path is kept.
func VisibleStats(stats []schema.PathStats, cfg *contract.Config) []schema.PathStats {
	visible := make([]schema.PathStats, 0, len(stats))
	for _, s := range stats {
		if cfg.HasMaxChanges() && s.Total() > cfg.MaxChanges {
			continue
		}
		visible = append(visible, s)
	}
	return visible
}
