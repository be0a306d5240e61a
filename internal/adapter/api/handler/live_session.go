package handler

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"tripspot/internal/adapter/api/presenter"
	"tripspot/internal/infrastructure/notify"
	ws "tripspot/internal/infrastructure/websocket"
	"tripspot/internal/search"
	"tripspot/internal/usecase"
	"tripspot/pkg/logger"
)

const msgWishlistUnavailable = "찜 목록을 불러오는데 실패했습니다."

type frameSink interface {
	Push(message []byte) bool
}

// userFanout delivers a frame to every live session of a user.
type userFanout interface {
	SendToUser(userID string, message []byte) int
}

// liveSession binds one connection to its own search controller and
// wishlist synchronizer. It is also the notifier for everything it runs.
type liveSession struct {
	id         string
	sink       frameSink
	fanout     userFanout
	log        zerolog.Logger
	controller *search.Controller
	wishlist   *usecase.WishlistSynchronizer

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	lastSeq uint64
	wg      sync.WaitGroup
}

func newLiveSession(parent context.Context, id string, sink frameSink, fanout userFanout, controller *search.Controller, wishlist *usecase.WishlistSynchronizer) *liveSession {
	s := &liveSession{
		id:     id,
		sink:   sink,
		fanout: fanout,
		log: logger.With(map[string]interface{}{
			"session": id,
			"uid":     wishlist.UID(),
		}),
		controller: controller,
		wishlist:   wishlist,
	}
	s.ctx, s.cancel = context.WithCancel(notify.WithNotifier(parent, s))
	controller.OnChange(s.pushListing)
	return s
}

// start begins following the wishlist.
func (s *liveSession) start() error {
	return s.wishlist.Start(s.ctx, func(ids []string) {
		s.push(ws.MessageTypeWishlist, ws.WishlistData{IDs: ids})
	})
}

// close stops in-flight work and waits for it to finish.
func (s *liveSession) close() {
	s.cancel()
	s.controller.Close()
	s.wg.Wait()
	s.wishlist.Wait()
}

func (s *liveSession) Notify(n notify.Notice) {
	s.push(ws.MessageTypeNotice, n)
}

// handle dispatches one inbound frame. Searches and toggles run in the
// background so a newer search can supersede an older one.
func (s *liveSession) handle(raw []byte) {
	msg, err := ws.Decode(raw)
	if err != nil {
		s.pushError("Invalid message format")
		return
	}

	switch msg.Type {
	case ws.MessageTypePing:
		s.push(ws.MessageTypePong, map[string]string{"status": "alive"})

	case ws.MessageTypeSearch:
		var data ws.SearchData
		if err := msg.DecodeData(&data); err != nil {
			s.pushError("Invalid search message")
			return
		}
		s.background(func() {
			if _, err := s.controller.SyncQuery(s.ctx, data.Query); err != nil && err != search.ErrSuperseded {
				s.pushError("Invalid search query")
			}
		})

	case ws.MessageTypePage:
		var data ws.PageData
		if err := msg.DecodeData(&data); err != nil {
			s.pushError("Invalid page message")
			return
		}
		s.controller.SetPage(data.Page)

	case ws.MessageTypeRetry:
		s.background(func() {
			s.controller.Retry(s.ctx)
		})

	case ws.MessageTypeToggle:
		var data ws.ToggleData
		if err := msg.DecodeData(&data); err != nil || data.PlaceID == "" {
			s.pushError("Invalid toggle message")
			return
		}
		if !s.wishlist.Ready() {
			s.pushError(msgWishlistUnavailable)
			return
		}
		s.background(func() {
			s.toggle(data)
		})

	default:
		s.log.Debug().Str("type", msg.Type).Msg("Unknown message type")
		s.pushError("Unknown message type")
	}
}

// toggle applies a like change. A change is fanned out to every session of
// the user; a no-op answer only goes back to this one.
func (s *liveSession) toggle(data ws.ToggleData) {
	changed, err := s.wishlist.Toggle(s.ctx, data.PlaceID, data.Liked)
	if err != nil {
		s.log.Warn().Err(err).Str("placeId", data.PlaceID).Msg("Toggle failed")
		notify.Failure(s.ctx, "찜하기에 실패했습니다.", err)
		return
	}

	frame, err := ws.Encode(ws.MessageTypeToggled, ws.ToggledData{
		PlaceID: data.PlaceID,
		Liked:   s.wishlist.Liked(data.PlaceID),
		Changed: changed,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to encode toggled frame")
		return
	}
	if changed && s.fanout.SendToUser(s.wishlist.UID(), frame) > 0 {
		return
	}
	s.sink.Push(frame)
}

func (s *liveSession) background(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn()
	}()
}

// pushListing drops snapshots older than one already sent.
func (s *liveSession) pushListing(snap search.Snapshot) {
	s.mu.Lock()
	if snap.Seq < s.lastSeq {
		s.mu.Unlock()
		return
	}
	s.lastSeq = snap.Seq
	s.mu.Unlock()

	s.push(ws.MessageTypeListing, presenter.NewListing(snap, searchPath, s.wishlist.Liked))
}

func (s *liveSession) pushError(message string) {
	s.push(ws.MessageTypeError, ws.ErrorData{Message: message})
}

func (s *liveSession) push(msgType string, data interface{}) {
	frame, err := ws.Encode(msgType, data)
	if err != nil {
		s.log.Error().Err(err).Str("type", msgType).Msg("Failed to encode frame")
		return
	}
	s.sink.Push(frame)
}
