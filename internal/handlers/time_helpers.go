package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/campus-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/campus-scheduler/internal/httperr"
	"github.com/BruksfildServices01/campus-scheduler/internal/timezone"
)

// queryDate parses an optional YYYY-MM-DD query value in the campus timezone.
func queryDate(c *gin.Context, name string, loc *time.Location) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	d, err := timezone.ParseDate(raw, loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", name+" must use YYYY-MM-DD.")
		return nil, false
	}
	return &d, true
}

func queryUint(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		httperr.BadRequest(c, "invalid_"+name, name+" must be a positive integer.")
		return nil, false
	}
	v := uint(n)
	return &v, true
}

// listFilter reads ?status=PENDING,CONFIRMED&from=&to= into a filter.
// to is inclusive.
func listFilter(c *gin.Context, loc *time.Location) (domain.ListFilter, bool) {
	var f domain.ListFilter

	if raw := c.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			st, ok := domain.ParseStatus(s)
			if !ok {
				httperr.BadRequest(c, "invalid_status", "Unknown status "+strings.TrimSpace(s)+".")
				return f, false
			}
			f.Statuses = append(f.Statuses, st)
		}
	}

	from, ok := queryDate(c, "from", loc)
	if !ok {
		return f, false
	}
	to, ok := queryDate(c, "to", loc)
	if !ok {
		return f, false
	}
	if to != nil {
		end := to.AddDate(0, 0, 1)
		to = &end
	}

	f.From = from
	f.To = to
	return f, true
}
