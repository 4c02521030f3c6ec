package services

import (
	"context"
	"errors"
	"fmt"

	"anonrelay_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ReplyIndexService is the durable mapping from an outbound relay message to
// the participant whose text it carried. Records are upserted the moment a
// relay send succeeds and are never deleted, so a reply can be routed long
// after the in-memory session binding is gone.
type ReplyIndexService struct {
	Dynamo *DynamoService
}

// RecordReply upserts the record for one outbound relay message. A later
// write for the same message id replaces the earlier one.
func (s *ReplyIndexService) RecordReply(ctx context.Context, messageID models.MessageID, sender models.Handle) error {
	record := models.ReplyRecord{
		MessageID:      messageID,
		OriginalSender: sender,
	}
	if err := s.Dynamo.PutItem(ctx, models.ReplyMapTable, record); err != nil {
		return fmt.Errorf("failed to record reply mapping for message '%s': %w", messageID, err)
	}
	return nil
}

// LookupSender resolves an outbound relay message id back to its original
// sender. Returns ErrItemNotFound when the id predates the index; any other
// error means the store is unavailable, not that the record is missing.
func (s *ReplyIndexService) LookupSender(ctx context.Context, messageID models.MessageID) (models.Handle, error) {
	key := map[string]types.AttributeValue{
		"messageId": &types.AttributeValueMemberS{Value: string(messageID)},
	}

	item, err := s.Dynamo.GetItem(ctx, models.ReplyMapTable, key)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("failed to look up sender for message '%s': %w", messageID, err)
	}

	var record models.ReplyRecord
	if err := attributevalue.UnmarshalMap(item, &record); err != nil {
		return 0, fmt.Errorf("failed to parse reply record for message '%s': %w", messageID, err)
	}

	return record.OriginalSender, nil
}
