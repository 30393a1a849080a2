// Package wsstatus implements the optional status-push stream
// (GET /orders/{id}/stream) that complements polling by pushing the
// terminal state within one 200ms poll of the worker recording it. It is a plain
// connection registry keyed by order_id, with none of the reconnection,
// backpressure, or connection-scaling machinery a larger real-time fan-out
// would need — a client that misses the push still has polling as the
// source of truth.
package wsstatus

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"flashsale/internal/flashsale/domain/model"
	"flashsale/internal/flashsale/infra/statusstore"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Registry tracks one connection per order_id awaiting a terminal push.
type Registry struct {
	mu    sync.Mutex
	conns map[uuid.UUID]*websocket.Conn
	store *statusstore.Store
	log   *zap.Logger
}

func NewRegistry(store *statusstore.Store, log *zap.Logger) *Registry {
	return &Registry{conns: make(map[uuid.UUID]*websocket.Conn), store: store, log: log}
}

// Serve upgrades the connection and blocks, polling the Status Store at a
// short interval until a terminal state appears or the client disconnects,
// then pushes the result once and closes. This is a best-effort
// enrichment over the in-process store, not a second source of truth.
func (reg *Registry) Serve(w http.ResponseWriter, r *http.Request, orderID uuid.UUID) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		reg.log.Warn("websocket upgrade failed", zap.Error(err), zap.String("order_id", orderID.String()))
		return
	}
	defer conn.Close()

	reg.register(orderID, conn)
	defer reg.unregister(orderID)

	// The client sends nothing; a failed read means it has gone away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-gone:
			return
		case <-ticker.C:
		}
		state, ok := reg.store.Get(orderID)
		if !ok {
			continue
		}
		if state.IsTerminal() {
			_ = conn.WriteJSON(terminalPayload(state))
			return
		}
	}
}

func terminalPayload(state model.OrderProcessingState) map[string]interface{} {
	if state.Phase == model.PhaseCompleted {
		return map[string]interface{}{"status": "completed", "order_id": state.Order.ID.String()}
	}
	return map[string]interface{}{"status": "failed", "message": state.Reason}
}

func (reg *Registry) register(id uuid.UUID, conn *websocket.Conn) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.conns[id] = conn
}

func (reg *Registry) unregister(id uuid.UUID) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.conns, id)
}
