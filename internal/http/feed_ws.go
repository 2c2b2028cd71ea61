package httpx

import (
	"net/http"

	"github.com/vanessaike/social-feed-graphql-api/internal/service/auth"
	"github.com/vanessaike/social-feed-graphql-api/internal/ws"
)

// handleFeedWS upgrades authenticated subscribers onto the live feed stream.
// Browsers cannot set headers on websocket dials, so a token query parameter
// is accepted as a fallback to the Authorization header.
func (r *Router) handleFeedWS(w http.ResponseWriter, req *http.Request) {
	if r.hub == nil {
		writeError(w, http.StatusNotFound, "live feed disabled")
		return
	}
	if _, ok := auth.IdentityFromContext(req.Context()); !ok {
		token := req.URL.Query().Get("token")
		if token == "" {
			writeError(w, http.StatusUnauthorized, "Not authenticated.")
			return
		}
		if _, err := r.auth.Identify(token); err != nil {
			r.logger.Debug("feed token rejected", "error", err)
			writeError(w, http.StatusUnauthorized, "Not authenticated.")
			return
		}
	}

	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	client := ws.NewClient(conn, r.logger)
	r.hub.Register(client)
	defer func() {
		r.hub.Unregister(client)
		client.Close()
	}()

	// Drain control frames until the peer disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
