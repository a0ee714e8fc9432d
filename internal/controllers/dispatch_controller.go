package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"senior_dispatch/internal/config"
	"senior_dispatch/internal/dispatch"
	"senior_dispatch/internal/logger"
	"senior_dispatch/internal/repository"
)

// MaxRangeDays bounds range and stats queries.
const MaxRangeDays = 366

// prepare loads the calendar and the snapshot covering [start, end] and
// returns an engine ready to resolve them.
func prepare(ctx context.Context, start, end time.Time) (_ *dispatch.Engine, _ dispatch.Snapshot, err error) {
	defer logger.Time(ctx, "dispatch.prepare")(&err)

	calendar, err := loadCalendar(ctx)
	if err != nil {
		return nil, dispatch.Snapshot{}, err
	}
	snap, err := repository.LoadSnapshot(ctx, config.DB, start, end)
	if err != nil {
		return nil, dispatch.Snapshot{}, err
	}
	return dispatch.NewEngine(calendar, dispatch.WithWorkers(config.DispatchWorkers())), snap, nil
}

// rangeParams reads ?start&end. end before start is allowed and yields an
// empty result; spans longer than MaxRangeDays are rejected.
func rangeParams(c *gin.Context) (time.Time, time.Time, bool) {
	start, err := dispatch.ParseDate(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must be YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	end, err := dispatch.ParseDate(c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	if days := int(end.Sub(start).Hours()/24) + 1; days > MaxRangeDays {
		c.JSON(http.StatusBadRequest, gin.H{"error": "range must not exceed " + strconv.Itoa(MaxRangeDays) + " days"})
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// splitList splits a comma separated query value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GetDailyDispatch resolves every route for /day/:date.
func GetDailyDispatch(c *gin.Context) {
	date, err := dispatch.ParseDate(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	ctx := c.Request.Context()
	engine, snap, err := prepare(ctx, date, date)
	if err != nil {
		respondError(c, "GetDailyDispatch", err)
		return
	}
	c.JSON(http.StatusOK, engine.ResolveDay(date, snap))
}

// GetRangeDispatch resolves ?start..?end, optionally filtered by a comma
// separated status and route_id list.
func GetRangeDispatch(c *gin.Context) {
	start, end, ok := rangeParams(c)
	if !ok {
		return
	}

	var opts dispatch.FilterOptions
	for _, s := range splitList(c.Query("status")) {
		st := dispatch.Status(s)
		if !st.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status " + s})
			return
		}
		opts.Statuses = append(opts.Statuses, st)
	}
	opts.RouteIDs = splitList(c.Query("route_id"))

	ctx := c.Request.Context()
	engine, snap, err := prepare(ctx, start, end)
	if err != nil {
		respondError(c, "GetRangeDispatch", err)
		return
	}

	days := engine.ResolveRange(start, end, snap)
	if len(opts.Statuses) > 0 || len(opts.RouteIDs) > 0 {
		days = dispatch.Filter(days, opts)
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// GetMonthSummary returns per-day counts for /month/:year/:month.
func GetMonthSummary(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1900 || year > 2200 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
		return
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	ctx := c.Request.Context()
	engine, snap, err := prepare(ctx, first, last)
	if err != nil {
		respondError(c, "GetMonthSummary", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": month,
		"days":  engine.SummarizeMonth(year, time.Month(month), snap),
	})
}

// GetRangeStats aggregates ?start..?end into per-route and per-substitute counts.
func GetRangeStats(c *gin.Context) {
	start, end, ok := rangeParams(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	engine, snap, err := prepare(ctx, start, end)
	if err != nil {
		respondError(c, "GetRangeStats", err)
		return
	}
	c.JSON(http.StatusOK, dispatch.Summarize(engine.ResolveRange(start, end, snap)))
}

// Health reports whether the database answers.
func Health(c *gin.Context) {
	sqlDB, err := config.DB.DB()
	if err == nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		respondError(c, "Health", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
