package main

import (
	"math"
	"net/http"

	"hbs/src/types"
	"hbs/src/utils"

	"github.com/gin-gonic/gin"
)

func publicFeedbackHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/feedback", func(ctx *gin.Context) {
			var query types.PaginationQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			c, cancel := requestContext(ctx)
			defer cancel()
			feedbacks, total, err := utils.ListApprovedFeedback(c, query.Page, query.Limit)
			if err != nil {
				ctx.JSON(utils.HTTPStatus(err), gin.H{"success": false, "message": utils.ErrorMessage(err)})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"success":   true,
				"feedbacks": feedbacks,
				"pagination": gin.H{
					"page":  query.Page,
					"limit": query.Limit,
					"total": total,
					"pages": int(math.Ceil(float64(total) / float64(query.Limit))),
				},
			})
		}).
		GET("/feedback/stats", func(ctx *gin.Context) {
			c, cancel := requestContext(ctx)
			defer cancel()
			stats, err := utils.GetFeedbackStats(c)
			if err != nil {
				ctx.JSON(utils.HTTPStatus(err), gin.H{"success": false, "message": utils.ErrorMessage(err)})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
		})
	return g
}

func feedbackHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/feedback", func(ctx *gin.Context) {
			var body types.SubmitFeedbackRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			c, cancel := requestContext(ctx)
			defer cancel()
			feedback, err := utils.SubmitFeedback(c, userId, &body)
			if err != nil {
				ctx.JSON(utils.HTTPStatus(err), gin.H{"success": false, "message": utils.ErrorMessage(err)})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{
				"success":  true,
				"message":  "Thank you for your feedback!",
				"feedback": feedback,
			})
		}).
		GET("/feedback/my", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			c, cancel := requestContext(ctx)
			defer cancel()
			feedbacks, err := utils.ListUserFeedback(c, userId)
			if err != nil {
				ctx.JSON(utils.HTTPStatus(err), gin.H{"success": false, "message": utils.ErrorMessage(err)})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "feedbacks": feedbacks, "count": len(feedbacks)})
		}).
		PUT("/feedback/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			var body types.UpdateFeedbackRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			c, cancel := requestContext(ctx)
			defer cancel()
			feedback, err := utils.UpdateFeedback(c, params.ID, userId, &body)
			if err != nil {
				ctx.JSON(utils.HTTPStatus(err), gin.H{"success": false, "message": utils.ErrorMessage(err)})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Feedback updated successfully", "feedback": feedback})
		}).
		DELETE("/feedback/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			c, cancel := requestContext(ctx)
			defer cancel()
			if err := utils.DeleteFeedback(c, params.ID, userId); err != nil {
				ctx.JSON(utils.HTTPStatus(err), gin.H{"success": false, "message": utils.ErrorMessage(err)})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Feedback deleted successfully"})
		})
	return g
}

func adminFeedbackHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/feedback", func(ctx *gin.Context) {
			c, cancel := requestContext(ctx)
			defer cancel()
			feedbacks, err := utils.ListAllFeedback(c)
			if err != nil {
				ctx.JSON(utils.HTTPStatus(err), gin.H{"success": false, "message": utils.ErrorMessage(err)})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "feedbacks": feedbacks, "count": len(feedbacks)})
		}).
		PUT("/feedback/:id/reply", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			var body types.FeedbackReplyRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			responderId := ctx.GetUint("id")
			c, cancel := requestContext(ctx)
			defer cancel()
			feedback, err := utils.ReplyFeedback(c, params.ID, responderId, body.AdminReply)
			if err != nil {
				ctx.JSON(utils.HTTPStatus(err), gin.H{"success": false, "message": utils.ErrorMessage(err)})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Reply added successfully", "feedback": feedback})
		}).
		PUT("/feedback/:id/status", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			var body types.UpdateFeedbackStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			c, cancel := requestContext(ctx)
			defer cancel()
			feedback, err := utils.SetFeedbackStatus(c, params.ID, body.Status)
			if err != nil {
				ctx.JSON(utils.HTTPStatus(err), gin.H{"success": false, "message": utils.ErrorMessage(err)})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"success":  true,
				"message":  "Feedback status updated successfully",
				"feedback": gin.H{"id": feedback.ID, "status": feedback.Status},
			})
		})
	return g
}
