// File: protocol.go
// Title: Remote Store Wire Protocol
// Description: The JSON frames exchanged between a remote shell and a
//              store server over a websocket, plus the typed property
//              value codec that keeps int64 properties from collapsing
//              into JSON floats on the way through.
// Version: v0.1.0
// Created: 2025-02-10
//
// Change History:
// - 2025-02-10 v0.1.0: Initial wire protocol

package remote

import (
	"encoding/json"
	"strconv"

	gdsherror "github.com/msto63/gdsh/foundation/core/error"
	"github.com/msto63/gdsh/foundation/shell/graph"
)

// Path is the websocket endpoint the store server listens on
const Path = "/ws"

// Operation names
const (
	opBegin              = "begin"
	opFinish             = "finish"
	opNodeByID           = "node"
	opReferenceNode      = "reference"
	opRelationships      = "relationships"
	opCreateNode         = "create-node"
	opCreateRelationship = "create-relationship"
	opSetProperty        = "set-property"
	opRemoveProperty     = "remove-property"
)

// request is one client frame
type request struct {
	ID     string          `json:"id"`
	Op     string          `json:"op"`
	Params json.RawMessage `json:"params,omitempty"`
}

// response is one server frame. A failed operation carries the error
// code of the shell error kind so the client can rebuild it.
type response struct {
	ID        string          `json:"id"`
	OK        bool            `json:"ok"`
	Error     string          `json:"error,omitempty"`
	ErrorCode string          `json:"errorCode,omitempty"`
	Result    json.RawMessage `json:"result,omitempty"`
}

type finishParams struct {
	Success bool `json:"success"`
}

type nodeParams struct {
	ID int64 `json:"id"`
}

type relationshipsParams struct {
	ID        int64  `json:"id"`
	Direction string `json:"direction"`
}

type createRelationshipParams struct {
	StartID int64  `json:"startId"`
	EndID   int64  `json:"endId"`
	Type    string `json:"type"`
}

type propertyParams struct {
	ID    int64     `json:"id"`
	Key   string    `json:"key"`
	Value wireValue `json:"value,omitempty"`
}

type wireNode struct {
	ID         int64                `json:"id"`
	Properties map[string]wireValue `json:"properties,omitempty"`
}

type wireRelationship struct {
	ID      int64  `json:"id"`
	Type    string `json:"type"`
	StartID int64  `json:"startId"`
	EndID   int64  `json:"endId"`
}

// wireValue carries one typed property value
type wireValue struct {
	Kind string `json:"t"`
	Raw  string `json:"v"`
}

func encodeValue(value interface{}) (wireValue, error) {
	switch v := value.(type) {
	case string:
		return wireValue{Kind: "string", Raw: v}, nil
	case int64:
		return wireValue{Kind: "int", Raw: strconv.FormatInt(v, 10)}, nil
	case int:
		return wireValue{Kind: "int", Raw: strconv.FormatInt(int64(v), 10)}, nil
	case float64:
		return wireValue{Kind: "float", Raw: strconv.FormatFloat(v, 'g', -1, 64)}, nil
	case bool:
		return wireValue{Kind: "bool", Raw: strconv.FormatBool(v)}, nil
	default:
		return wireValue{}, gdsherror.Newf("unsupported property type %T", value).
			WithCode(gdsherror.CodeInvalidArgument)
	}
}

func (w wireValue) decode() (interface{}, error) {
	switch w.Kind {
	case "string":
		return w.Raw, nil
	case "int":
		v, err := strconv.ParseInt(w.Raw, 10, 64)
		if err != nil {
			return nil, gdsherror.Wrap(err, "decoding int value").
				WithCode(gdsherror.CodeInternal)
		}
		return v, nil
	case "float":
		v, err := strconv.ParseFloat(w.Raw, 64)
		if err != nil {
			return nil, gdsherror.Wrap(err, "decoding float value").
				WithCode(gdsherror.CodeInternal)
		}
		return v, nil
	case "bool":
		v, err := strconv.ParseBool(w.Raw)
		if err != nil {
			return nil, gdsherror.Wrap(err, "decoding bool value").
				WithCode(gdsherror.CodeInternal)
		}
		return v, nil
	default:
		return nil, gdsherror.Newf("unknown value type %q", w.Kind).
			WithCode(gdsherror.CodeInternal)
	}
}

func encodeNode(node *graph.Node) (*wireNode, error) {
	wn := &wireNode{ID: node.ID, Properties: make(map[string]wireValue, len(node.Properties))}
	for key, value := range node.Properties {
		wv, err := encodeValue(value)
		if err != nil {
			return nil, err
		}
		wn.Properties[key] = wv
	}
	return wn, nil
}

func (w *wireNode) decode() (*graph.Node, error) {
	node := &graph.Node{ID: w.ID, Properties: make(map[string]interface{}, len(w.Properties))}
	for key, wv := range w.Properties {
		value, err := wv.decode()
		if err != nil {
			return nil, err
		}
		node.Properties[key] = value
	}
	return node, nil
}

func encodeRelationship(rel *graph.Relationship) *wireRelationship {
	return &wireRelationship{
		ID:      rel.ID,
		Type:    rel.Type.Name(),
		StartID: rel.StartID,
		EndID:   rel.EndID,
	}
}

func (w *wireRelationship) decode() *graph.Relationship {
	return &graph.Relationship{
		ID:      w.ID,
		Type:    graph.Type(w.Type),
		StartID: w.StartID,
		EndID:   w.EndID,
	}
}
