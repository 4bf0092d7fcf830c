package services

import (
	"encoding/json"
	"log"

	"github.com/olahol/melody"
)

const (
	wsUserKey     = "userID"
	wsObserverKey = "observer"
)

// RegisterWebSocketHandlers gắn session websocket với user đang đăng nhập.
// Client kết nối tới /ws?token=<access token>; tin nhắn mới được đẩy tới
// đúng session của người nhận, và mỗi session trở thành một observer
// nhận thông báo của user đó.
func RegisterWebSocketHandlers(m *melody.Melody, reservationService *ReservationService) {
	m.HandleConnect(func(s *melody.Session) {
		token := s.Request.URL.Query().Get("token")
		if token == "" {
			return
		}

		userID, _, err := GetUserIDFromToken(token)
		if err != nil {
			log.Printf("Websocket từ chối token không hợp lệ: %v", err)
			_ = s.Close()
			return
		}

		s.Set(wsUserKey, userID)

		observer := NewMelodyObserver(s, userID)
		s.Set(wsObserverKey, observer)
		reservationService.RegisterObserver(observer, userID)
	})

	m.HandleDisconnect(func(s *melody.Session) {
		value, exists := s.Get(wsObserverKey)
		if !exists {
			return
		}
		observer, ok := value.(*MelodyObserver)
		if !ok {
			return
		}
		reservationService.RemoveObserver(observer, observer.userID)
	})
}

// SendToUser đẩy một payload JSON tới mọi session của user nhận
func SendToUser(m *melody.Melody, userID uint, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return m.BroadcastFilter(data, func(s *melody.Session) bool {
		value, exists := s.Get(wsUserKey)
		if !exists {
			return false
		}
		id, ok := value.(uint)
		return ok && id == userID
	})
}
