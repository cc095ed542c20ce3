// File: server.go
// Title: Remote Store Server
// Description: Serves a local graph store to remote shells over a
//              websocket. Each connection owns at most one open
//              transaction; a dropped connection rolls it back.
// Version: v0.1.0
// Created: 2025-02-10
//
// Change History:
// - 2025-02-10 v0.1.0: Initial store server

package remote

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	gdsherror "github.com/msto63/gdsh/foundation/core/error"
	gdshlog "github.com/msto63/gdsh/foundation/core/log"
	"github.com/msto63/gdsh/foundation/shell/graph"
)

// Server exposes a graph store over websockets
type Server struct {
	store    graph.TraversalStore
	logger   *gdshlog.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a server over a local store
func NewServer(store graph.TraversalStore, logger *gdshlog.Logger) *Server {
	if logger == nil {
		logger = gdshlog.GetDefault()
	}
	return &Server{
		store:  store,
		logger: logger.WithName("remote.server"),
	}
}

// Handler returns the HTTP handler to mount at Path
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(Path, s.serveConn)
	return mux
}

func (s *Server) serveConn(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WarnWithErr("websocket upgrade failed", err)
		return
	}
	defer conn.Close()

	logger := s.logger.WithField("remote", conn.RemoteAddr().String())
	logger.Info("shell connected")

	session := &connSession{store: s.store}
	defer session.abort(logger)

	for {
		var req request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.WarnWithErr("connection lost", err)
			} else {
				logger.Info("shell disconnected")
			}
			return
		}

		resp := session.dispatch(&req)
		if err := conn.WriteJSON(resp); err != nil {
			logger.WarnWithErr("write failed", err)
			return
		}
	}
}

// connSession is the per-connection server state
type connSession struct {
	store graph.TraversalStore
	tx    graph.Transaction
}

// abort rolls back a transaction left open by a vanished client
func (c *connSession) abort(logger *gdshlog.Logger) {
	if c.tx == nil {
		return
	}
	if err := c.tx.Finish(); err != nil {
		logger.WarnWithErr("rolling back abandoned transaction", err)
	}
	c.tx = nil
}

func (c *connSession) dispatch(req *request) *response {
	result, err := c.handle(req)
	if err != nil {
		return &response{
			ID:        req.ID,
			Error:     err.Error(),
			ErrorCode: string(gdsherror.GetCode(err)),
		}
	}

	resp := &response{ID: req.ID, OK: true}
	if result != nil {
		raw, err := json.Marshal(result)
		if err != nil {
			return &response{
				ID:        req.ID,
				Error:     "encoding result: " + err.Error(),
				ErrorCode: string(gdsherror.CodeInternal),
			}
		}
		resp.Result = raw
	}
	return resp
}

func (c *connSession) handle(req *request) (interface{}, error) {
	switch req.Op {
	case opBegin:
		if c.tx != nil {
			return nil, gdsherror.New("transaction already open on this connection").
				WithCode(gdsherror.CodeInternal)
		}
		tx, err := c.store.BeginTx()
		if err != nil {
			return nil, err
		}
		c.tx = tx
		return nil, nil

	case opFinish:
		if c.tx == nil {
			return nil, gdsherror.New("no open transaction").
				WithCode(gdsherror.CodeInternal)
		}
		var params finishParams
		if err := unmarshalParams(req.Params, &params); err != nil {
			return nil, err
		}
		tx := c.tx
		c.tx = nil
		if params.Success {
			tx.MarkSuccessful()
		}
		return nil, tx.Finish()

	case opNodeByID:
		var params nodeParams
		if err := unmarshalParams(req.Params, &params); err != nil {
			return nil, err
		}
		node, err := c.store.NodeByID(params.ID)
		if err != nil {
			return nil, err
		}
		return encodeNode(node)

	case opReferenceNode:
		node, err := c.store.ReferenceNode()
		if err != nil {
			return nil, err
		}
		return encodeNode(node)

	case opRelationships:
		var params relationshipsParams
		if err := unmarshalParams(req.Params, &params); err != nil {
			return nil, err
		}
		dir := graph.Outgoing
		if params.Direction == graph.Incoming.String() {
			dir = graph.Incoming
		}
		rels, err := c.store.Relationships(params.ID, dir)
		if err != nil {
			return nil, err
		}
		wire := make([]*wireRelationship, 0, len(rels))
		for _, rel := range rels {
			wire = append(wire, encodeRelationship(rel))
		}
		return wire, nil

	case opCreateNode:
		node, err := c.store.CreateNode()
		if err != nil {
			return nil, err
		}
		return encodeNode(node)

	case opCreateRelationship:
		var params createRelationshipParams
		if err := unmarshalParams(req.Params, &params); err != nil {
			return nil, err
		}
		rel, err := c.store.CreateRelationship(params.StartID, params.EndID, graph.Type(params.Type))
		if err != nil {
			return nil, err
		}
		return encodeRelationship(rel), nil

	case opSetProperty:
		var params propertyParams
		if err := unmarshalParams(req.Params, &params); err != nil {
			return nil, err
		}
		value, err := params.Value.decode()
		if err != nil {
			return nil, err
		}
		return nil, c.store.SetProperty(params.ID, params.Key, value)

	case opRemoveProperty:
		var params propertyParams
		if err := unmarshalParams(req.Params, &params); err != nil {
			return nil, err
		}
		return nil, c.store.RemoveProperty(params.ID, params.Key)

	default:
		return nil, gdsherror.Newf("unknown operation %q", req.Op).
			WithCode(gdsherror.CodeInvalidArgument)
	}
}

func unmarshalParams(raw json.RawMessage, into interface{}) error {
	if err := json.Unmarshal(raw, into); err != nil {
		return gdsherror.Wrap(err, "decoding request parameters").
			WithCode(gdsherror.CodeInvalidArgument)
	}
	return nil
}
