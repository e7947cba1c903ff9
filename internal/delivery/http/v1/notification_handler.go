package v1

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"artesano-backend/internal/domain"
	"artesano-backend/pkg/utils"
)

type NotificationHandler struct {
	notificationUC domain.NotificationUsecase
}

func NewNotificationHandler(uc domain.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{
		notificationUC: uc,
	}
}

// SendEmail handles POST /api/v1/notifications/email.
//
// Status mapping: missing fields and unknown type tags are 400; a template
// that resolves empty is a 500 with a generic message (the reason is logged,
// not exposed); a transport failure is a 500 carrying the underlying message.
func (h *NotificationHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req domain.NotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Recipient == "" || req.Type == "" {
		utils.WriteMessage(w, http.StatusBadRequest, "Fields destinatario and type are required")
		return
	}

	result, err := h.notificationUC.SendEmail(r.Context(), req)
	if err != nil {
		h.writeSendError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Email sent successfully",
		"infoId":  result.MessageID,
	})
}

func (h *NotificationHandler) writeSendError(w http.ResponseWriter, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		utils.WriteMessage(w, http.StatusBadRequest, vErr.Error())
		return
	}

	if errors.Is(err, domain.ErrUnknownEmailType) {
		utils.WriteMessage(w, http.StatusBadRequest, "Unknown email type")
		return
	}

	var tErr *domain.TransportError
	if errors.As(err, &tErr) {
		utils.WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"message": "Failed to send email",
			"error":   tErr.Unwrap().Error(),
		})
		return
	}

	// Template resolution problems stay generic toward the client
	utils.WriteMessage(w, http.StatusInternalServerError, "invalid email type or content not found")
}
