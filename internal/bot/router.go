package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

const (
	historyLimit    = 10
	callTimeout     = 10 * time.Second
	unmappedReply   = "Selection received. Type 'hi' to see the main menu again."
	templateName    = "hello_world"
	templateLang    = "en_US"
	thumbsUpEmoji   = "👍"
	mediaSentFormat = "Here is the %s you asked for."
)

// TurnRouter consumes one inbound turn at a time: it persists the turn,
// consults the composer, optionally delegates to the reply provider, delivers
// the outbound message(s), and records every bot turn. It holds no state
// across invocations.
type TurnRouter struct {
	store    Store
	outbound Outbound
	provider ReplyProvider
}

func NewTurnRouter(store Store, outbound Outbound, provider ReplyProvider) (*TurnRouter, error) {
	if store == nil {
		return nil, errors.New("bot: store must not be nil")
	}
	if outbound == nil {
		return nil, errors.New("bot: outbound channel must not be nil")
	}
	if provider == nil {
		return nil, errors.New("bot: reply provider must not be nil")
	}
	return &TurnRouter{store: store, outbound: outbound, provider: provider}, nil
}

// HandleTurn never propagates store/outbound failures: the webhook must be
// acknowledged no matter what, so everything is logged and swallowed here.
func (s *TurnRouter) HandleTurn(ctx context.Context, turn *Turn) error {
	if turn == nil {
		return errors.New("bot: turn must not be nil")
	}
	log.Printf("[svc] user=%s kind=%s text=%q selection=%q",
		turn.UserID, turn.Kind, turn.Text, turn.SelectionID)

	turn.Sender = SenderUser
	s.append(ctx, turn)

	d := Decide(*turn)
	switch d.Kind {
	case DecideShowMenu:
		s.send(ctx, "buttons", func(ctx context.Context) error {
			return s.outbound.SendButtons(ctx, turn.UserID, mainMenuPrompt())
		})
		s.recordBot(ctx, turn.UserID, mainMenuBody)

	case DecideAcknowledge:
		if turn.MessageID != "" {
			s.send(ctx, "reaction", func(ctx context.Context) error {
				return s.outbound.SendReaction(ctx, turn.UserID, turn.MessageID, thumbsUpEmoji)
			})
		}
		s.send(ctx, "text", func(ctx context.Context) error {
			return s.outbound.SendText(ctx, turn.UserID, d.Text)
		})
		s.recordBot(ctx, turn.UserID, d.Text)

	case DecideShowMedia:
		s.send(ctx, string(d.Media), func(ctx context.Context) error {
			return s.outbound.SendMedia(ctx, turn.UserID, d.Media, demoMediaURLs[d.Media])
		})
		s.recordBot(ctx, turn.UserID, fmt.Sprintf(mediaSentFormat, d.Media))

	case DecideShowTemplate:
		s.send(ctx, "template", func(ctx context.Context) error {
			return s.outbound.SendTemplate(ctx, turn.UserID, templateName, templateLang)
		})
		s.recordBot(ctx, turn.UserID, "Sent template "+templateName+".")

	case DecideNavigate:
		s.navigate(ctx, turn.UserID, d.SelectionID)

	case DecideDelegate:
		hctx, cancel := context.WithTimeout(ctx, callTimeout)
		history, err := s.store.ListByUser(hctx, turn.UserID, historyLimit)
		cancel()
		if err != nil {
			log.Printf("[svc] history load failed for user=%s: %v", turn.UserID, err)
			history = nil
		}
		cctx, cancel := context.WithTimeout(ctx, callTimeout)
		reply := s.provider.Compose(cctx, turn.UserID, turn.Text, history)
		cancel()
		s.send(ctx, "text", func(ctx context.Context) error {
			return s.outbound.SendText(ctx, turn.UserID, reply)
		})
		s.recordBot(ctx, turn.UserID, reply)
	}

	return nil
}

// navigate maps a button/list selection to its fixed outbound action(s).
// Unmapped ids get a generic acknowledgement rather than an error.
func (s *TurnRouter) navigate(ctx context.Context, userID, selectionID string) {
	switch selectionID {
	case "order_food":
		s.send(ctx, "list", func(ctx context.Context) error {
			return s.outbound.SendList(ctx, userID, foodListPrompt())
		})
		s.recordBot(ctx, userID, foodListBody)

	case "book_table":
		s.send(ctx, "text", func(ctx context.Context) error {
			return s.outbound.SendText(ctx, userID, bookTableReply)
		})
		s.recordBot(ctx, userID, bookTableReply)

	case "view_menu":
		s.send(ctx, "document", func(ctx context.Context) error {
			return s.outbound.SendMedia(ctx, userID, MediaDocument, menuDocumentURL)
		})
		s.recordBot(ctx, userID, "Sent the menu document.")

	case "contact_us":
		s.send(ctx, "location", func(ctx context.Context) error {
			return s.outbound.SendLocation(ctx, userID, restaurantLocation())
		})
		s.recordBot(ctx, userID, "Sent our location.")
		s.send(ctx, "contact", func(ctx context.Context) error {
			return s.outbound.SendContact(ctx, userID, restaurantContact())
		})
		s.recordBot(ctx, userID, "Sent our contact card.")

	case "offers":
		s.send(ctx, "image", func(ctx context.Context) error {
			return s.outbound.SendMedia(ctx, userID, MediaImage, offersImageURL)
		})
		s.recordBot(ctx, userID, "Sent this week's offers.")

	default:
		reply := unmappedReply
		if title, ok := foodCategories[selectionID]; ok {
			reply = "You selected " + title + ". (Demo order placed)"
		}
		s.send(ctx, "text", func(ctx context.Context) error {
			return s.outbound.SendText(ctx, userID, reply)
		})
		s.recordBot(ctx, userID, reply)
	}
}

// AdminReply delivers an operator-authored message and records it with
// sender=admin. Unlike HandleTurn, a delivery failure is surfaced so the
// dashboard can report it.
func (s *TurnRouter) AdminReply(ctx context.Context, userID, text string) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	if err := s.outbound.SendText(ctx, userID, text); err != nil {
		return fmt.Errorf("bot: admin send: %w", err)
	}
	s.append(ctx, &Turn{
		UserID: userID,
		Sender: SenderAdmin,
		Kind:   KindText,
		Text:   text,
	})
	return nil
}

func (s *TurnRouter) send(ctx context.Context, what string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		log.Printf("[svc] send %s failed: %v", what, err)
	}
}

func (s *TurnRouter) append(ctx context.Context, turn *Turn) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	if err := s.store.Append(ctx, turn); err != nil {
		log.Printf("[svc] append failed for user=%s: %v", turn.UserID, err)
	}
}

func (s *TurnRouter) recordBot(ctx context.Context, userID, text string) {
	s.append(ctx, &Turn{
		UserID: userID,
		Sender: SenderBot,
		Kind:   KindText,
		Text:   text,
	})
}
