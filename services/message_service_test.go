package services

import (
	"testing"

	"homestay/config"
	"homestay/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupMessageDB(t *testing.T) (*gorm.DB, models.User, models.User) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Message{}))
	config.DB = db

	alice := models.User{Name: "Alice", Email: "alice@example.com", PhoneNumber: "0912345671"}
	bob := models.User{Name: "Bob", Email: "bob@example.com", PhoneNumber: "0912345672"}
	require.NoError(t, db.Create(&alice).Error)
	require.NoError(t, db.Create(&bob).Error)
	return db, alice, bob
}

func TestSaveMessageLoadsSender(t *testing.T) {
	_, alice, bob := setupMessageDB(t)

	message, err := SaveMessage(alice.ID, bob.ID, nil, "Phòng còn trống cuối tuần này không?")
	require.NoError(t, err)
	assert.NotZero(t, message.ID)
	assert.Equal(t, "Alice", message.Sender.Name)
	assert.False(t, message.IsRead)
}

func TestGetConversationBothDirections(t *testing.T) {
	_, alice, bob := setupMessageDB(t)

	_, err := SaveMessage(alice.ID, bob.ID, nil, "Chào anh")
	require.NoError(t, err)
	_, err = SaveMessage(bob.ID, alice.ID, nil, "Chào chị, phòng còn trống")
	require.NoError(t, err)
	_, err = SaveMessage(alice.ID, bob.ID, nil, "Em đặt 2 đêm nhé")
	require.NoError(t, err)

	messages, total, err := GetConversation(alice.ID, bob.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, messages, 3)
	// Cũ trước mới sau
	assert.Equal(t, "Chào anh", messages[0].Content)
	assert.Equal(t, "Em đặt 2 đêm nhé", messages[2].Content)
}

func TestMarkConversationRead(t *testing.T) {
	db, alice, bob := setupMessageDB(t)

	_, err := SaveMessage(bob.ID, alice.ID, nil, "Tin chưa đọc")
	require.NoError(t, err)

	require.NoError(t, MarkConversationRead(alice.ID, bob.ID))

	var unread int64
	require.NoError(t, db.Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = ?", alice.ID, false).
		Count(&unread).Error)
	assert.Zero(t, unread)
}

func TestGetConversationsDedupesAndCountsUnread(t *testing.T) {
	db, alice, bob := setupMessageDB(t)

	carol := models.User{Name: "Carol", Email: "carol@example.com", PhoneNumber: "0912345673"}
	require.NoError(t, db.Create(&carol).Error)

	_, err := SaveMessage(bob.ID, alice.ID, nil, "Tin 1")
	require.NoError(t, err)
	_, err = SaveMessage(bob.ID, alice.ID, nil, "Tin 2")
	require.NoError(t, err)
	_, err = SaveMessage(alice.ID, carol.ID, nil, "Gửi Carol")
	require.NoError(t, err)

	conversations, err := GetConversations(alice.ID)
	require.NoError(t, err)
	require.Len(t, conversations, 2)

	byPartner := map[uint]int64{}
	for _, conversation := range conversations {
		byPartner[conversation.PartnerID] = conversation.UnreadCount
	}
	assert.Equal(t, int64(2), byPartner[bob.ID])
	assert.Equal(t, int64(0), byPartner[carol.ID])
}
