// File: client.go
// Title: Remote Store Client
// Description: A graph store backed by a store server over a
//              websocket. Server-reported failures come back as the
//              shell's own error kind with their original code;
//              failures of the connection itself surface as transport
//              errors so the executor can tell the two apart.
// Version: v0.1.0
// Created: 2025-02-10
//
// Change History:
// - 2025-02-10 v0.1.0: Initial store client

package remote

import (
	"encoding/json"
	"net/url"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	gdsherror "github.com/msto63/gdsh/foundation/core/error"
	"github.com/msto63/gdsh/foundation/shell/graph"
)

// Client is a graph.TraversalStore over a websocket connection
type Client struct {
	conn *websocket.Conn

	// the websocket connection is not safe for concurrent use
	mutex  sync.Mutex
	closed bool
}

// Dial connects to a store server at host:port
func Dial(addr string) (*Client, error) {
	u := url.URL{Scheme: "ws", Host: addr, Path: Path}
	return DialURL(u.String())
}

// DialURL connects to a store server at a full websocket URL
func DialURL(rawURL string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(rawURL, nil)
	if err != nil {
		return nil, &graph.TransportError{Op: "dial", Err: err}
	}
	return &Client{conn: conn}, nil
}

// call performs one request/response round trip
func (c *Client) call(op string, params interface{}, result interface{}) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return gdsherror.New("client is closed").WithCode(gdsherror.CodeDatabase)
	}

	req := request{ID: uuid.NewString(), Op: op}
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return gdsherror.Wrap(err, "encoding request").
				WithCode(gdsherror.CodeInternal)
		}
		req.Params = raw
	}

	if err := c.conn.WriteJSON(&req); err != nil {
		return &graph.TransportError{Op: op, Err: err}
	}

	var resp response
	if err := c.conn.ReadJSON(&resp); err != nil {
		return &graph.TransportError{Op: op, Err: err}
	}

	if !resp.OK {
		code := gdsherror.Code(resp.ErrorCode)
		if !code.IsValid() {
			code = gdsherror.CodeUnknown
		}
		return gdsherror.New(resp.Error).WithCode(code)
	}

	if result != nil && resp.Result != nil {
		if err := json.Unmarshal(resp.Result, result); err != nil {
			return &graph.TransportError{Op: op, Err: err}
		}
	}
	return nil
}

// clientTx is the client side of a server-held transaction
type clientTx struct {
	client   *Client
	success  bool
	finished bool
}

// MarkSuccessful implements graph.Transaction
func (t *clientTx) MarkSuccessful() {
	t.success = true
}

// Finish implements graph.Transaction
func (t *clientTx) Finish() error {
	if t.finished {
		return gdsherror.New("transaction already finished").
			WithCode(gdsherror.CodeInternal)
	}
	t.finished = true
	return t.client.call(opFinish, finishParams{Success: t.success}, nil)
}

// BeginTx implements graph.Store
func (c *Client) BeginTx() (graph.Transaction, error) {
	if err := c.call(opBegin, nil, nil); err != nil {
		return nil, err
	}
	return &clientTx{client: c}, nil
}

// NodeByID implements graph.Store
func (c *Client) NodeByID(id int64) (*graph.Node, error) {
	var wire wireNode
	if err := c.call(opNodeByID, nodeParams{ID: id}, &wire); err != nil {
		return nil, err
	}
	return wire.decode()
}

// ReferenceNode implements graph.Store
func (c *Client) ReferenceNode() (*graph.Node, error) {
	var wire wireNode
	if err := c.call(opReferenceNode, nil, &wire); err != nil {
		return nil, err
	}
	return wire.decode()
}

// Relationships implements graph.TraversalStore
func (c *Client) Relationships(nodeID int64, dir graph.Direction) ([]*graph.Relationship, error) {
	var wire []*wireRelationship
	params := relationshipsParams{ID: nodeID, Direction: dir.String()}
	if err := c.call(opRelationships, params, &wire); err != nil {
		return nil, err
	}
	rels := make([]*graph.Relationship, 0, len(wire))
	for _, wr := range wire {
		rels = append(rels, wr.decode())
	}
	return rels, nil
}

// CreateNode implements graph.TraversalStore
func (c *Client) CreateNode() (*graph.Node, error) {
	var wire wireNode
	if err := c.call(opCreateNode, nil, &wire); err != nil {
		return nil, err
	}
	return wire.decode()
}

// CreateRelationship implements graph.TraversalStore
func (c *Client) CreateRelationship(startID, endID int64, t graph.RelType) (*graph.Relationship, error) {
	var wire wireRelationship
	params := createRelationshipParams{StartID: startID, EndID: endID, Type: t.Name()}
	if err := c.call(opCreateRelationship, params, &wire); err != nil {
		return nil, err
	}
	return wire.decode(), nil
}

// SetProperty implements graph.TraversalStore
func (c *Client) SetProperty(nodeID int64, key string, value interface{}) error {
	wv, err := encodeValue(value)
	if err != nil {
		return err
	}
	return c.call(opSetProperty, propertyParams{ID: nodeID, Key: key, Value: wv}, nil)
}

// RemoveProperty implements graph.TraversalStore
func (c *Client) RemoveProperty(nodeID int64, key string) error {
	return c.call(opRemoveProperty, propertyParams{ID: nodeID, Key: key}, nil)
}

// Close implements graph.Store
func (c *Client) Close() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.conn.Close()
}
