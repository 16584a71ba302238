package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/tycho-games/magnate/internal/broadcast"
	"github.com/tycho-games/magnate/internal/errors"
	"github.com/tycho-games/magnate/internal/game/domain"
	"github.com/tycho-games/magnate/internal/game/engine"
	"github.com/tycho-games/magnate/internal/id"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// action is one inbound websocket frame. The acting player is bound to
// the connection at upgrade time, never taken from the frame.
type action struct {
	Action     string     `json:"action"`
	Buy        bool       `json:"buy"`
	Index      int        `json:"index"`
	Amount     int        `json:"amount"`
	CosmeticID string     `json:"cosmeticId"`
	Trade      *tradeBody `json:"trade,omitempty"`
}

type tradeBody struct {
	RecipientID     string `json:"recipientId"`
	OfferedSpaces   []int  `json:"offeredSpaces"`
	RequestedSpaces []int  `json:"requestedSpaces"`
	OfferedCoins    int    `json:"offeredCoins"`
	RequestedCoins  int    `json:"requestedCoins"`
}

// handleSocket attaches a websocket to a session. The client receives a
// full snapshot on attach and a patch after every committed action.
// Connections without a playerId are registered as spectators.
func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	rm, ok := s.room(sessionID)
	if !ok {
		respondError(w, errors.New(errors.CodeNotFound, "session not found"))
		return
	}

	playerID := r.URL.Query().Get("playerId")
	spectator := playerID == ""
	if !spectator {
		var known bool
		rm.engine.View(func(session *domain.Session) {
			_, known = session.PlayerByID(playerID)
		})
		if !known {
			respondError(w, errors.New(errors.CodePlayerNotFound, fmt.Sprintf("player %s not found", playerID)))
			return
		}
	}

	if spectator {
		spectatorID, err := id.NewID()
		if err == nil {
			rm.engine.AddSpectator(r.Context(), spectatorID)
			defer rm.engine.RemoveSpectator(r.Context(), spectatorID)
		}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	client := s.hub.Register(sessionID, conn)
	defer s.hub.Unregister(sessionID, client)

	if err := rm.sendSnapshot(client); err != nil {
		return
	}

	for {
		var act action
		if err := conn.ReadJSON(&act); err != nil {
			return
		}
		if spectator {
			_ = client.Send(broadcast.ErrorEnvelope(
				string(errors.CodePlayerNotFound), "spectators cannot act"))
			continue
		}
		if err := s.dispatch(r.Context(), rm.engine, playerID, act); err != nil {
			_ = client.Send(broadcast.ErrorEnvelope(string(errors.CodeOf(err)), err.Error()))
		}
	}
}

// dispatch routes one inbound frame to the engine operation it names.
func (s *Server) dispatch(ctx context.Context, eng *engine.Engine, playerID string, act action) error {
	switch act.Action {
	case "startGame":
		return eng.Start(ctx, playerID)
	case "rollDice":
		return eng.RollDice(ctx, playerID)
	case "decidePurchase":
		return eng.DecidePurchase(ctx, playerID, act.Buy)
	case "endTurn":
		return eng.EndTurn(ctx, playerID)
	case "mortgage":
		return eng.Mortgage(ctx, playerID, act.Index)
	case "unmortgage":
		return eng.Unmortgage(ctx, playerID, act.Index)
	case "build":
		return eng.Build(ctx, playerID, act.Index)
	case "sellBuilding":
		return eng.SellBuilding(ctx, playerID, act.Index)
	case "proposeTrade":
		return eng.ProposeTrade(ctx, playerID, tradeTerms(act.Trade))
	case "counterTrade":
		return eng.CounterTrade(ctx, playerID, tradeTerms(act.Trade))
	case "acceptTrade":
		return eng.AcceptTrade(ctx, playerID)
	case "declineTrade":
		return eng.DeclineTrade(ctx, playerID)
	case "bid":
		return eng.Bid(ctx, playerID, act.Amount)
	case "passAuction":
		return eng.PassAuction(ctx, playerID)
	case "requestTurnExtension":
		return eng.RequestTurnExtension(ctx, playerID)
	case "useJailFreeCard":
		return eng.UseJailFreeCard(ctx, playerID)
	case "payJailFine":
		return eng.PayJailFine(ctx, playerID)
	case "payDebt":
		return eng.PayDebt(ctx, playerID)
	case "buyCosmetic":
		return eng.BuyCosmetic(ctx, playerID, act.CosmeticID)
	default:
		return errors.New(errors.CodeUnknownAction, fmt.Sprintf("unknown action %q", act.Action))
	}
}

func tradeTerms(body *tradeBody) engine.TradeTerms {
	if body == nil {
		return engine.TradeTerms{}
	}
	return engine.TradeTerms{
		RecipientID:     body.RecipientID,
		OfferedSpaces:   body.OfferedSpaces,
		RequestedSpaces: body.RequestedSpaces,
		OfferedCoins:    body.OfferedCoins,
		RequestedCoins:  body.RequestedCoins,
	}
}
