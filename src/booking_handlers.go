package main

import (
	"net/http"

	"hbs/src/types"
	"hbs/src/utils"

	"github.com/gin-gonic/gin"
)

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/bookings", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			c, cancel := requestContext(ctx)
			defer cancel()
			booking, err := utils.CreateBooking(c, userId, &body)
			if err != nil {
				ctx.JSON(utils.HTTPStatus(err), gin.H{"success": false, "message": utils.ErrorMessage(err)})
				return
			}
			go utils.SendBookingConfirmation(booking)
			ctx.JSON(http.StatusCreated, gin.H{
				"success": true,
				"message": "Booking created successfully",
				"booking": booking,
			})
		}).
		GET("/bookings/my", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			c, cancel := requestContext(ctx)
			defer cancel()
			bookings, err := utils.ListUserBookings(c, userId)
			if err != nil {
				ctx.JSON(utils.HTTPStatus(err), gin.H{"success": false, "message": utils.ErrorMessage(err)})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings, "count": len(bookings)})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			role := ctx.GetString("role")
			c, cancel := requestContext(ctx)
			defer cancel()
			booking, err := utils.GetBooking(c, params.ID, userId, role)
			if err != nil {
				ctx.JSON(utils.HTTPStatus(err), gin.H{"success": false, "message": utils.ErrorMessage(err)})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "booking": booking})
		}).
		PUT("/bookings/:id/cancel", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			role := ctx.GetString("role")
			c, cancel := requestContext(ctx)
			defer cancel()
			booking, err := utils.CancelBooking(c, params.ID, userId, role)
			if err != nil {
				ctx.JSON(utils.HTTPStatus(err), gin.H{"success": false, "message": utils.ErrorMessage(err)})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"success": true,
				"message": "Booking cancelled successfully",
				"booking": gin.H{"id": booking.ID, "status": booking.Status},
			})
		})
	return g
}

func adminBookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/bookings", func(ctx *gin.Context) {
			c, cancel := requestContext(ctx)
			defer cancel()
			bookings, err := utils.ListAllBookings(c)
			if err != nil {
				ctx.JSON(utils.HTTPStatus(err), gin.H{"success": false, "message": utils.ErrorMessage(err)})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings, "count": len(bookings)})
		}).
		PUT("/bookings/:id/status", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			var body types.UpdateBookingStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			c, cancel := requestContext(ctx)
			defer cancel()
			booking, err := utils.TransitionBookingStatus(c, params.ID, body.Status)
			if err != nil {
				ctx.JSON(utils.HTTPStatus(err), gin.H{"success": false, "message": utils.ErrorMessage(err)})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "booking": booking, "message": "Booking updated successfully"})
		})
	return g
}
