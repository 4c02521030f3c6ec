package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"anonrelay_server/models"
)

// Transport is the boundary with the message delivery layer. Send returns
// the id the transport assigned to the newly created outbound message, or a
// *DeliveryError when the target is unreachable.
type Transport interface {
	SelfIdentifier(ctx context.Context) (string, error)
	Send(ctx context.Context, to models.Handle, body string) (models.MessageID, error)
}

// ReplyIndex is the durable outbound-message → original-sender mapping.
// LookupSender returns ErrItemNotFound for unknown ids; other errors mean
// the store is unavailable.
type ReplyIndex interface {
	RecordReply(ctx context.Context, messageID models.MessageID, sender models.Handle) error
	LookupSender(ctx context.Context, messageID models.MessageID) (models.Handle, error)
}

// UserRegistry is the durable set of every handle that has ever interacted.
type UserRegistry interface {
	RecordUser(ctx context.Context, handle models.Handle) error
	ListUsers(ctx context.Context) ([]models.Handle, error)
}

// RelayService classifies each inbound event and routes it: command, fresh
// connection request, message from a bound sender, reply to a past relay
// message, or unroutable — in that strict order. An active binding always
// wins over stale reply metadata on the same event.
type RelayService struct {
	Transport   Transport
	Replies     ReplyIndex
	Users       UserRegistry
	Sessions    *SessionService
	Links       *LinkService
	Broadcaster *BroadcastService
}

// HandleInbound processes one inbound transport event. All routing outcomes,
// including failures, are reported back to the caller as notices; the
// returned error is an operator signal (store trouble), never a user-facing
// condition.
func (s *RelayService) HandleInbound(ctx context.Context, ev models.InboundEvent) error {
	// Everyone who interacts ends up in the broadcast registry.
	if err := s.Users.RecordUser(ctx, ev.Sender); err != nil {
		log.Printf("⚠️ Failed to register user %d: %v", ev.Sender, err)
	}

	text := strings.TrimSpace(ev.Text)

	switch {
	case text == models.CmdLink || text == models.BtnGetLink:
		return s.sendOwnLink(ctx, ev.Sender)
	case text == models.CmdHelp || text == models.BtnHelp:
		s.notify(ctx, ev.Sender, models.NoticeHelp)
		return nil
	case text == models.CmdStop:
		s.Sessions.Unbind(ev.Sender)
		s.notify(ctx, ev.Sender, models.NoticeStopped)
		return nil
	case text == models.CmdBroadcast || strings.HasPrefix(text, models.CmdBroadcast+" "):
		body := strings.TrimSpace(strings.TrimPrefix(text, models.CmdBroadcast))
		return s.handleBroadcast(ctx, ev.Sender, body)
	}

	// 1. Connection request: the sender followed someone's link.
	if ev.HasStartParam {
		return s.handleConnect(ctx, ev.Sender, ev.StartParam)
	}

	// 2. Bound sender: forward to the live counterpart.
	if counterpart, ok := s.Sessions.Counterpart(ev.Sender); ok {
		return s.relay(ctx, ev.Sender, counterpart, models.RelayPrefix+ev.Text, models.NoticeSent)
	}

	// 3. Reply to a past relay message: heal a binding from the durable index.
	if ev.ReplyTo != nil && ev.ReplyTo.AuthorIsSelf {
		return s.handleReply(ctx, ev)
	}

	// 4. Unroutable.
	s.notify(ctx, ev.Sender, models.NoticeWelcome)
	return nil
}

func (s *RelayService) handleConnect(ctx context.Context, sender models.Handle, param string) error {
	target, ok := s.Links.ResolveLink(param)
	if !ok {
		// Plain "/start" with no usable parameter. Normal, not a fault.
		s.notify(ctx, sender, models.NoticeWelcome)
		return nil
	}

	if err := s.Sessions.Bind(sender, target); err != nil {
		if errors.Is(err, ErrSelfBinding) {
			s.notify(ctx, sender, models.NoticeSelfLink)
			return nil
		}
		return fmt.Errorf("failed to bind %d to %d: %w", sender, target, err)
	}

	log.Printf("🔗 User %d connected to %d", sender, target)
	s.notify(ctx, sender, models.NoticeConnected)
	return nil
}

func (s *RelayService) handleReply(ctx context.Context, ev models.InboundEvent) error {
	original, err := s.Replies.LookupSender(ctx, ev.ReplyTo.MessageID)
	switch {
	case errors.Is(err, ErrItemNotFound):
		s.notify(ctx, ev.Sender, models.NoticeTooOld)
		return nil
	case err != nil:
		log.Printf("❌ Reply index unavailable: %v", err)
		s.notify(ctx, ev.Sender, models.NoticeStoreTrouble)
		return fmt.Errorf("reply lookup for message '%s': %w", ev.ReplyTo.MessageID, err)
	}

	// Heal: the original sender's next message routes straight back without
	// another index lookup. Committed even if the delivery below fails.
	if err := s.Sessions.Bind(original, ev.Sender); err != nil {
		log.Printf("⚠️ Skipping heal for %d → %d: %v", original, ev.Sender, err)
	}

	return s.relay(ctx, ev.Sender, original, models.ReplyPrefix+ev.Text, models.NoticeReplySent)
}

// relay delivers body to target on behalf of from, records the reply mapping
// for the outbound message, and acks the originator. A delivery failure is
// reported to the originator and leaves all state untouched.
func (s *RelayService) relay(ctx context.Context, from, to models.Handle, body, ack string) error {
	outboundID, err := s.Transport.Send(ctx, to, body)
	if err != nil {
		log.Printf("❌ Delivery to %d failed: %v", to, err)
		s.notify(ctx, from, models.NoticeUnavailable)
		return nil
	}

	// The index is keyed by the outbound message the counterpart will reply
	// to, not by the inbound one.
	if err := s.Replies.RecordReply(ctx, outboundID, from); err != nil {
		log.Printf("❌ Failed to record reply mapping for message '%s': %v", outboundID, err)
		s.notify(ctx, from, models.NoticeStoreTrouble)
		return fmt.Errorf("record reply for message '%s': %w", outboundID, err)
	}

	s.notify(ctx, from, ack)
	return nil
}

func (s *RelayService) handleBroadcast(ctx context.Context, from models.Handle, text string) error {
	_, err := s.Broadcaster.Broadcast(ctx, from, text)
	switch {
	case errors.Is(err, ErrUnauthorized):
		// Silent: non-admins must not learn the command exists.
		return nil
	case errors.Is(err, ErrEmptyBroadcast):
		s.notify(ctx, from, models.NoticeBroadcastUsage)
		return nil
	case err != nil:
		s.notify(ctx, from, models.NoticeStoreTrouble)
		return fmt.Errorf("broadcast: %w", err)
	}
	return nil
}

func (s *RelayService) sendOwnLink(ctx context.Context, sender models.Handle) error {
	link, err := s.Links.IssueLink(ctx, sender)
	if err != nil {
		s.notify(ctx, sender, models.NoticeStoreTrouble)
		return fmt.Errorf("issue link for %d: %w", sender, err)
	}
	s.notify(ctx, sender, "🔗 Your link:\n"+link)
	return nil
}

// notify sends a best-effort notice back to a participant. Notices never
// create reply records, and a failed notice only gets logged — the inbound
// event it belongs to has already been handled.
func (s *RelayService) notify(ctx context.Context, to models.Handle, text string) {
	if _, err := s.Transport.Send(ctx, to, text); err != nil {
		log.Printf("⚠️ Failed to notify %d: %v", to, err)
	}
}
