package notification

import (
	"fmt"

	"github.com/olahol/melody"
)

// Service đẩy thông báo realtime tới client
type Service interface {
	SendMessage(message string) error
}

// MelodyService phát thông báo qua các phiên WebSocket đang mở
type MelodyService struct {
	sessions *melody.Melody
}

var _ Service = (*MelodyService)(nil)

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{sessions: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.sessions == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.sessions.Broadcast([]byte(message))
}

// MessageBuilder dựng nội dung thông báo trạng thái đặt phòng
type MessageBuilder struct {
	reservationID uint
	status        string
}

func NewMessageBuilder(reservationID uint, status string) *MessageBuilder {
	return &MessageBuilder{reservationID: reservationID, status: status}
}

func (b *MessageBuilder) Build() string {
	return fmt.Sprintf("🔔 Đặt phòng RES%d chuyển sang trạng thái %s.", b.reservationID, b.status)
}
