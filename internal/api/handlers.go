package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huangsam/shiftgrid/core"
	"github.com/huangsam/shiftgrid/internal/contract"
	"github.com/huangsam/shiftgrid/schema"
)

// rangeQuery holds the query parameters shared by every v1 route.
type rangeQuery struct {
	Range     string `form:"range"`
	Pivot     string `form:"pivot"`
	Selection string `form:"selection"`
	Site      string `form:"site"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=10000"`
}

type handler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// configFor clones the base config and applies the query's range parameters.
func (h *handler) configFor(c *gin.Context) (*contract.Config, bool) {
	var q rangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		fail(c, http.StatusBadRequest, fmt.Sprintf("invalid query parameters: %v", err))
		return nil, false
	}

	cfg := h.baseCfg.Clone()
	if err := contract.RevalidateRange(cfg, q.Range, q.Pivot, q.Selection, q.Site); err != nil {
		fail(c, http.StatusBadRequest, fmt.Sprintf("invalid range parameters: %v", err))
		return nil, false
	}
	if q.Limit > 0 {
		cfg.ResultLimit = q.Limit
	}
	return cfg, true
}

// analyze runs the shared analysis for the request.
func (h *handler) analyze(c *gin.Context) (*schema.AnalysisOutput, bool) {
	cfg, ok := h.configFor(c)
	if !ok {
		return nil, false
	}
	output, err := core.GetAnalysisResults(core.WithSuppressHeader(c.Request.Context()), cfg, h.mgr)
	if err != nil {
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, fmt.Sprintf("analysis failed: %v", err))
		return nil, false
	}
	return output, true
}

func (h *handler) getRanges(c *gin.Context) {
	cfg, ok := h.configFor(c)
	if !ok {
		return
	}
	opts, selected := core.GetRangeOptions(cfg)
	success(c, gin.H{
		"type":     opts.Type,
		"selected": selected.Label,
		"options":  opts.Options,
	})
}

func (h *handler) getDays(c *gin.Context) {
	cfg, ok := h.configFor(c)
	if !ok {
		return
	}
	success(c, core.GetDays(cfg))
}

func (h *handler) getStreaks(c *gin.Context) {
	output, ok := h.analyze(c)
	if !ok {
		return
	}
	success(c, gin.H{
		"range":     output.Selected,
		"summaries": output.Summaries,
		"streaks":   output.Streaks.Keyed(),
	})
}

func (h *handler) getWindows(c *gin.Context) {
	output, ok := h.analyze(c)
	if !ok {
		return
	}
	success(c, gin.H{
		"range":  output.Selected,
		"days":   schema.CellDays(output.Days),
		"status": output.Status.Keyed(),
	})
}

func (h *handler) getGrid(c *gin.Context) {
	output, ok := h.analyze(c)
	if !ok {
		return
	}
	success(c, gin.H{
		"range": output.Selected,
		"days":  output.Days,
		"rows":  output.Grid,
	})
}
