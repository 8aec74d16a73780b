package main

import (
	"net/http"

	"hbs/src/types"
	"hbs/src/utils"

	"github.com/gin-gonic/gin"
)

func roomHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/rooms", func(ctx *gin.Context) {
			c, cancel := requestContext(ctx)
			defer cancel()
			rooms, err := utils.ListRooms(c)
			if err != nil {
				ctx.JSON(utils.HTTPStatus(err), gin.H{"success": false, "message": utils.ErrorMessage(err)})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "rooms": rooms, "count": len(rooms)})
		}).
		GET("/rooms/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			c, cancel := requestContext(ctx)
			defer cancel()
			room, err := utils.GetRoom(c, params.ID)
			if err != nil {
				ctx.JSON(utils.HTTPStatus(err), gin.H{"success": false, "message": utils.ErrorMessage(err)})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "room": room})
		})
	return g
}

func adminRoomHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/rooms", func(ctx *gin.Context) {
			c, cancel := requestContext(ctx)
			defer cancel()
			rooms, err := utils.ListRooms(c)
			if err != nil {
				ctx.JSON(utils.HTTPStatus(err), gin.H{"success": false, "message": utils.ErrorMessage(err)})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "rooms": rooms, "count": len(rooms)})
		}).
		POST("/rooms", func(ctx *gin.Context) {
			var body types.CreateRoomRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			c, cancel := requestContext(ctx)
			defer cancel()
			room, err := utils.CreateRoom(c, &body)
			if err != nil {
				ctx.JSON(utils.HTTPStatus(err), gin.H{"success": false, "message": utils.ErrorMessage(err)})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"success": true, "room": room, "message": "Room created successfully"})
		}).
		PUT("/rooms/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			var body types.UpdateRoomRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			c, cancel := requestContext(ctx)
			defer cancel()
			room, err := utils.UpdateRoom(c, params.ID, &body)
			if err != nil {
				ctx.JSON(utils.HTTPStatus(err), gin.H{"success": false, "message": utils.ErrorMessage(err)})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "room": room, "message": "Room updated successfully"})
		}).
		DELETE("/rooms/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			c, cancel := requestContext(ctx)
			defer cancel()
			if err := utils.DeleteRoom(c, params.ID); err != nil {
				ctx.JSON(utils.HTTPStatus(err), gin.H{"success": false, "message": utils.ErrorMessage(err)})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Room deleted successfully"})
		})
	return g
}
