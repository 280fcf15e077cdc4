package service

import (
	"context"
	"fmt"
	"sort"

	"oneaccord/common"
	"oneaccord/models"

	"github.com/google/uuid"
)

// transferHistoryLimit bounds how far back the inbox derivation looks
const transferHistoryLimit = 500

type conversationService struct {
	uowFactory  UnitOfWorkFactory
	demoThreads []*models.Conversation
}

// NewConversationService creates a new conversation service. demoThreads
// are synthetic sample conversations merged into every inbox; pass nil to
// disable them.
func NewConversationService(uowFactory UnitOfWorkFactory, demoThreads []*models.Conversation) ConversationService {
	return &conversationService{
		uowFactory:  uowFactory,
		demoThreads: demoThreads,
	}
}

// GetConversations derives the per-partner inbox view from the user's
// transfer history. The view is recomputed from scratch on every read;
// nothing about it is persisted.
func (s *conversationService) GetConversations(ctx context.Context, userID uuid.UUID) ([]*models.Conversation, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	transfers, err := uow.TransferRepository().GetByUser(ctx, userID, transferHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transfers: %w", err)
	}

	conversations := AggregateConversations(userID, transfers, s.demoThreads)
	return conversations, nil
}

// AggregateConversations groups a user's transfers into per-partner
// threads. Pure function of its inputs, exported for reuse and testing.
func AggregateConversations(userID uuid.UUID, transfers []*models.Transfer, demoThreads []*models.Conversation) []*models.Conversation {
	byPartner := make(map[string]*models.Conversation)
	var order []string

	for _, t := range transfers {
		partnerID := t.PartnerID(userID)
		if partnerID == nil {
			// External deposit/withdrawal, no human partner
			continue
		}
		key := partnerID.String()

		conv, ok := byPartner[key]
		if !ok {
			conv = &models.Conversation{
				PartnerID:  key,
				Preview:    previewFor(t),
				LastAt:     t.CreatedAt,
				LastAmount: t.Amount,
			}
			if profile := t.Partner(userID); profile != nil {
				conv.Partner = *profile
			}
			byPartner[key] = conv
			order = append(order, key)
		} else if t.CreatedAt.After(conv.LastAt) {
			conv.Preview = previewFor(t)
			conv.LastAt = t.CreatedAt
			conv.LastAmount = t.Amount
		}

		conv.Transfers = append(conv.Transfers, t)

		if t.IsPendingFor(userID) {
			conv.PendingCount++
			// Running sum, not replacement
			conv.PendingAmount = conv.PendingAmount.Add(t.Amount)
		}
	}

	conversations := make([]*models.Conversation, 0, len(order)+len(demoThreads))
	for _, key := range order {
		conversations = append(conversations, byPartner[key])
	}

	// Merge in sample threads that are not already present
	for _, demo := range demoThreads {
		if _, ok := byPartner[demo.PartnerID]; ok {
			continue
		}
		conversations = append(conversations, demo)
	}

	sort.SliceStable(conversations, func(i, j int) bool {
		return conversations[i].LastAt.After(conversations[j].LastAt)
	})

	return conversations
}

// previewFor builds the one-line inbox preview for a transfer: a fixed
// indicator for GIF messages, the plain text otherwise, or the formatted
// amount when there is no text at all.
func previewFor(t *models.Transfer) string {
	content := models.ParseMessageBody(t.Purpose)
	if content.HasGIF() {
		return models.GIFPreviewText
	}
	if content.Text != "" {
		return content.Text
	}
	return common.FormatUSDC(t.Amount)
}
