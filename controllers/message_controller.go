package controllers

import (
	"log"
	"strconv"
	"strings"

	"homestay/dto"
	"homestay/models"
	"homestay/response"
	"homestay/services"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

type MessageController struct {
	Melody *melody.Melody
}

func NewMessageController(m *melody.Melody) MessageController {
	return MessageController{Melody: m}
}

func convertToMessageResponse(message models.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:              message.ID,
		SenderID:        message.SenderID,
		ReceiverID:      message.ReceiverID,
		AccommodationID: message.AccommodationID,
		Content:         message.Content,
		IsRead:          message.IsRead,
		CreatedAt:       message.CreatedAt,
		Sender: dto.UserInfo{
			ID:     message.Sender.ID,
			Name:   message.Sender.Name,
			Avatar: message.Sender.Avatar,
		},
	}
}

func (mc MessageController) SendMessage(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Unauthorized(c)
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	currentUserID, _, err := services.GetUserIDFromToken(tokenString)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	var request dto.SendMessageRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if request.ReceiverID == currentUserID {
		response.BadRequest(c, "Không thể gửi tin nhắn cho chính mình")
		return
	}

	message, err := services.SaveMessage(currentUserID, request.ReceiverID, request.AccommodationID, request.Content)
	if err != nil {
		response.ServerError(c)
		return
	}

	messageResponse := convertToMessageResponse(message)

	// Đẩy realtime cho người nhận, lỗi ws không chặn response
	if err := services.SendToUser(mc.Melody, request.ReceiverID, messageResponse); err != nil {
		log.Printf("Không thể đẩy tin nhắn realtime: %v", err)
	}

	response.Success(c, messageResponse)
}

func (mc MessageController) GetConversation(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Unauthorized(c)
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	currentUserID, _, err := services.GetUserIDFromToken(tokenString)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	partnerIDStr := c.Param("partnerId")
	partnerID, err := strconv.Atoi(partnerIDStr)
	if err != nil {
		response.BadRequest(c, "ID người nhận không hợp lệ")
		return
	}

	page := 0
	limit := 20
	if pageStr := c.Query("page"); pageStr != "" {
		page, _ = strconv.Atoi(pageStr)
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, _ = strconv.Atoi(limitStr)
	}

	messages, total, err := services.GetConversation(currentUserID, uint(partnerID), page, limit)
	if err != nil {
		response.ServerError(c)
		return
	}

	if err := services.MarkConversationRead(currentUserID, uint(partnerID)); err != nil {
		log.Printf("Lỗi khi đánh dấu đã đọc: %v", err)
	}

	messageResponses := make([]dto.MessageResponse, 0, len(messages))
	for _, message := range messages {
		messageResponses = append(messageResponses, convertToMessageResponse(message))
	}

	response.SuccessWithPagination(c, messageResponses, page, limit, int(total))
}

func (mc MessageController) GetConversations(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Unauthorized(c)
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	currentUserID, _, err := services.GetUserIDFromToken(tokenString)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	conversations, err := services.GetConversations(currentUserID)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, conversations)
}
