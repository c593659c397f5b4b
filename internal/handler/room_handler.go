// Package handler 提供 HTTP 请求处理器
// 本文件处理房间相关的 API 请求
package handler

import (
	"huoban_chat_server/internal/dto/request"
	"huoban_chat_server/internal/infrastructure/middleware"
	"huoban_chat_server/internal/service"

	"github.com/gin-gonic/gin"
)

// RoomHandler 房间请求处理器
type RoomHandler struct {
	svc service.RoomService
}

// NewRoomHandler 创建房间处理器
func NewRoomHandler(svc service.RoomService) *RoomHandler {
	return &RoomHandler{svc: svc}
}

// Create 创建房间
// POST /api/rooms
func (h *RoomHandler) Create(c *gin.Context) {
	var req request.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	resp, err := h.svc.CreateRoom(c.Request.Context(), c.GetString(middleware.CtxUserID), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, resp)
}

// ListPublic 公开房间列表
// GET /api/rooms/public
func (h *RoomHandler) ListPublic(c *gin.Context) {
	resp, err := h.svc.GetPublicRooms(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, resp)
}

// ListPrivate 私密房间列表（拥有的 + 加入的）
// GET /api/rooms/private
func (h *RoomHandler) ListPrivate(c *gin.Context) {
	resp, err := h.svc.GetPrivateRooms(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, resp)
}

// Join 通过访问码加入私密房间
// POST /api/rooms/join
func (h *RoomHandler) Join(c *gin.Context) {
	var req request.JoinPrivateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	resp, err := h.svc.JoinPrivateRoom(c.Request.Context(), c.GetString(middleware.CtxUserID), req.AccessCode)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, resp)
}

// Leave 退出私密房间
// POST /api/rooms/:slug/leave
func (h *RoomHandler) Leave(c *gin.Context) {
	err := h.svc.LeaveRoom(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("slug"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// Delete 删除房间
// DELETE /api/rooms/:slug
func (h *RoomHandler) Delete(c *gin.Context) {
	err := h.svc.DeleteRoom(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("slug"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// SetType 切换房间类型
// PUT /api/rooms/:slug/type
func (h *RoomHandler) SetType(c *gin.Context) {
	var req request.SetRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	resp, err := h.svc.SetRoomType(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("slug"), req.RoomType)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, resp)
}
