package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/it-Portal2/hotel-sultan-palace-sub006/utils"
)

type EmailController struct{}

func NewEmailController() *EmailController {
	return &EmailController{}
}

// SendReply dispatches a transactional reply email. The response shape
// {success, error?} is fixed; the admin frontend depends on it.
func (ec *EmailController) SendReply(c *gin.Context) {
	var req struct {
		To            string `json:"to" binding:"required,email"`
		Subject       string `json:"subject" binding:"required"`
		Message       string `json:"message" binding:"required"`
		ReferenceID   string `json:"referenceId"`
		Type          string `json:"type"`
		RecipientName string `json:"recipientName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	greeting := "Dear guest,"
	if req.RecipientName != "" {
		greeting = fmt.Sprintf("Dear %s,", req.RecipientName)
	}
	reference := ""
	if req.ReferenceID != "" {
		reference = fmt.Sprintf("<p>Reference: %s</p>", req.ReferenceID)
	}
	body := fmt.Sprintf("<p>%s</p><p>%s</p>%s<p>Hotel Sultan Palace</p>",
		greeting, req.Message, reference)

	if err := utils.SendMail(req.To, req.Subject, body); err != nil {
		utils.ErrorLogger.Printf("Failed to send %s email to %s: %v", req.Type, req.To, err)
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
