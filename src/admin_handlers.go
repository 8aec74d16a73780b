package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"hbs/src/lib"
	"hbs/src/types"
	"hbs/src/utils"

	"github.com/gin-gonic/gin"
)

const dashboardCacheKey = "admin:dashboard"
const dashboardCacheTTL = 30 * time.Second

// cachedDashboard serves the dashboard from redis when fresh. Staleness up to
// the TTL is an accepted property of the reporting view.
func cachedDashboard(c context.Context) (*utils.DashboardPayload, error) {
	rd := lib.GetRedisClient()
	if rd != nil {
		if val := rd.Get(c, dashboardCacheKey).Val(); val != "" {
			var payload utils.DashboardPayload
			if err := json.Unmarshal([]byte(val), &payload); err == nil {
				return &payload, nil
			}
		}
	}
	payload, err := utils.Dashboard(c)
	if err != nil {
		return nil, err
	}
	if rd != nil {
		if raw, err := json.Marshal(payload); err == nil {
			rd.SetEx(c, dashboardCacheKey, string(raw), dashboardCacheTTL)
		}
	}
	return payload, nil
}

func adminReportHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/dashboard", func(ctx *gin.Context) {
			c, cancel := requestContext(ctx)
			defer cancel()
			payload, err := cachedDashboard(c)
			if err != nil {
				ctx.JSON(utils.HTTPStatus(err), gin.H{"success": false, "message": utils.ErrorMessage(err)})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"success":        true,
				"stats":          payload.Stats,
				"recentBookings": payload.RecentBookings,
				"recentFeedback": payload.RecentFeedback,
			})
		}).
		GET("/reports", func(ctx *gin.Context) {
			var query types.ReportsQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			c, cancel := requestContext(ctx)
			defer cancel()
			reports, err := utils.BuildReports(c, query.Period)
			if err != nil {
				ctx.JSON(utils.HTTPStatus(err), gin.H{"success": false, "message": utils.ErrorMessage(err)})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "period": query.Period, "reports": reports})
		}).
		GET("/revenue-services", func(ctx *gin.Context) {
			c, cancel := requestContext(ctx)
			defer cancel()
			services, summary, err := utils.RevenueServices(c)
			if err != nil {
				ctx.JSON(utils.HTTPStatus(err), gin.H{"success": false, "message": utils.ErrorMessage(err)})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "revenueServices": services, "summary": summary})
		})
	return g
}
