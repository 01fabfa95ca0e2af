//go:generate go run go.uber.org/mock/mockgen -source=receipt.go -destination=../mocks/mock_receipt_repository.go -package=mocks
package repositories

import (
	"campus-chat/domain/chat"
	"campus-chat/errors"
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IReceiptRepository interface {
	CreateReceipt(receipt chat.ReadReceipt) error
	GetReceipt(messageID uuid.UUID, userID string) (chat.ReadReceipt, error)
	ListReceipts(messageID uuid.UUID) ([]chat.ReadReceipt, error)
	CountReceipts(messageID uuid.UUID) (int, error)
}

type ReceiptRepository struct {
	db *badger.DB
}

func NewReceiptRepository(db *badger.DB) ReceiptRepository {
	return ReceiptRepository{db: db}
}

type DiskReceipt struct {
	MessageID uuid.UUID `json:"message_id"`
	Room      string    `json:"room"`
	UserID    string    `json:"user_id"`
	ReadAt    int64     `json:"read_at"`
}

func receiptPrefix(messageID uuid.UUID) string {
	return "receipt:" + messageID.String() + ":"
}

func receiptKey(messageID uuid.UUID, userID string) string {
	return receiptPrefix(messageID) + userID
}

func (r ReceiptRepository) CreateReceipt(receipt chat.ReadReceipt) error {
	key := receiptKey(receipt.MessageID, receipt.UserID)
	return insertUnique(r.db, key, errors.ErrDuplicateReceipt, func(txn *badger.Txn) error {
		return setJSON(txn, key, DiskReceipt{
			MessageID: receipt.MessageID,
			Room:      string(receipt.Room),
			UserID:    receipt.UserID,
			ReadAt:    receipt.ReadAt.UnixNano(),
		})
	})
}

func (r ReceiptRepository) GetReceipt(messageID uuid.UUID, userID string) (chat.ReadReceipt, error) {
	var disk DiskReceipt
	err := r.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, receiptKey(messageID, userID), &disk, errors.ErrReceiptNotFound)
	})
	if err != nil {
		return chat.ReadReceipt{}, err
	}
	return toReceipt(disk), nil
}

func (r ReceiptRepository) ListReceipts(messageID uuid.UUID) ([]chat.ReadReceipt, error) {
	var receipts []chat.ReadReceipt
	err := r.db.View(func(txn *badger.Txn) error {
		return scanPrefix(txn, receiptPrefix(messageID), func(_, val []byte) error {
			var disk DiskReceipt
			if err := json.Unmarshal(val, &disk); err != nil {
				return err
			}
			receipts = append(receipts, toReceipt(disk))
			return nil
		})
	})
	return receipts, err
}

func (r ReceiptRepository) CountReceipts(messageID uuid.UUID) (int, error) {
	var count int
	err := r.db.View(func(txn *badger.Txn) error {
		count = countPrefix(txn, receiptPrefix(messageID))
		return nil
	})
	return count, err
}

func toReceipt(disk DiskReceipt) chat.ReadReceipt {
	return chat.ReadReceipt{
		MessageID: disk.MessageID,
		Room:      chat.RoomID(disk.Room),
		UserID:    disk.UserID,
		ReadAt:    time.Unix(0, disk.ReadAt).UTC(),
	}
}
